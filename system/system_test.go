package system

import (
	"bytes"
	"testing"

	"nesforge/ines"
)

// buildRom assembles a minimal single-program iNES image: prg is placed
// at the start of a 32KiB PRG ROM (mapped to $8000..$FFFF), the reset
// vector is patched to point at it, and any extra CPU-address-keyed
// bytes in patches (e.g. an NMI handler, the NMI vector itself) are
// poked in directly -- ROM content has to be set up front since the
// cartridge only accepts the one sanctioned reset-vector write at
// runtime (spec §4.1).
func buildRom(t *testing.T, prg []byte, patches map[uint16]uint8) *ines.Rom {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 16)
	copy(header, ines.Magic)
	header[4] = 2 // 2x16KiB PRG
	header[5] = 1 // 1x8KiB CHR
	buf.Write(header)

	prgData := make([]byte, 0x8000)
	copy(prgData, prg)
	prgData[0x7FFC] = 0x00 // reset vector -> $8000
	prgData[0x7FFD] = 0x80
	for addr, val := range patches {
		prgData[addr-0x8000] = val
	}
	buf.Write(prgData)
	buf.Write(make([]byte, 0x2000))

	rom, err := ines.Load(&buf)
	if err != nil {
		t.Fatalf("ines.Load: %v", err)
	}
	return rom
}

func newTestSystem(t *testing.T, prg []byte, patches map[uint16]uint8) *System {
	t.Helper()
	s, err := NewFromRom(buildRom(t, prg, patches))
	if err != nil {
		t.Fatalf("NewFromRom: %v", err)
	}
	s.Reset(false)
	return s
}

// TestOAMDMASuspendsCPUForExactCycleCount covers spec §8 scenario 3: a
// program that triggers OAM DMA must consume exactly 513 or 514 extra
// bus cycles (depending on start parity) before the following
// instruction executes, and OAM must end up holding the source page.
func TestOAMDMASuspendsCPUForExactCycleCount(t *testing.T) {
	s := newTestSystem(t, []byte{
		0xA9, 0x07, // LDA #$07
		0x8D, 0x14, 0x40, // STA $4014
		0xEA, // NOP
	}, nil)

	for i := 0; i < 256; i++ {
		s.Bus.Write(0x0700+uint16(i), uint8(i^0x5A))
	}

	s.stepOnce(nil) // LDA #$07
	s.stepOnce(nil) // STA $4014 -- triggers DMA

	if !s.Bus.InDMA() {
		t.Fatal("expected OAM DMA to be in progress right after the STA")
	}

	cycles := 0
	for s.Bus.InDMA() {
		s.stepOnce(nil)
		cycles++
		if cycles > 1000 {
			t.Fatal("OAM DMA never completed")
		}
	}
	if cycles != 513 && cycles != 514 {
		t.Fatalf("DMA cycle count = %d, want 513 or 514", cycles)
	}

	for i := 0; i < 256; i++ {
		want := uint8(i ^ 0x5A)
		if got := s.PPU.OAM[i]; got != want {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, got, want)
		}
	}

	pcBefore := s.CPU.PC
	s.stepOnce(nil) // NOP, now that DMA has released the bus
	if s.CPU.PC != pcBefore+1 {
		t.Fatalf("PC after NOP = %#04x, want %#04x", s.CPU.PC, pcBefore+1)
	}
}

// TestNMIFiresOnPositiveVblankEdge covers spec §8 invariant 9 end to end:
// the CPU services an NMI exactly when the PPU sets vblank with
// generate_nmi already enabled. Reset leaves I set, so the program clears
// it with CLI first; servicing the NMI sets it again (as does the handler
// at $9000), so the test can detect the interrupt was actually taken
// without depending on exact PPU-cycle alignment against the CPU's
// batched step. The APU frame IRQ is inhibited through $4017, so only the
// NMI can set I here.
func TestNMIFiresOnPositiveVblankEdge(t *testing.T) {
	handler := map[uint16]uint8{
		0x9000: 0x78,       // SEI
		0x9001: 0x4C,       // JMP $9000
		0x9002: 0x00, 0x9003: 0x90,
		0xFFFA: 0x00, 0xFFFB: 0x90, // NMI vector -> $9000
	}
	s := newTestSystem(t, []byte{
		0x58,             // CLI
		0xEA,             // NOP
		0x4C, 0x01, 0x80, // JMP $8001 -- spin forever with I clear
	}, handler)

	// enable NMI generation on PPUCTRL before any vblank edge
	s.Bus.Write(0x2000, 0x80)
	// inhibit the APU frame IRQ, which would otherwise also set I
	s.Bus.Write(0x4017, 0x40)

	took := false
	for i := 0; i < 400000 && !took; i++ {
		s.stepOnce(nil)
		took = s.CPU.P.I()
	}
	if !took {
		t.Fatal("CPU never took the NMI within one frame's worth of stepping")
	}
}

// TestJAMHaltsCPUButNotSystem checks that a JAM opcode halts the CPU
// without marking the System itself as halted.
func TestJAMHaltsCPUButNotSystem(t *testing.T) {
	s := newTestSystem(t, []byte{0x02}, nil) // JAM at the reset vector
	s.stepOnce(nil)
	if !s.CPU.Halted() {
		t.Fatal("expected CPU to report halted after JAM")
	}
	// the sequencer itself only sets System.Halted on a panic (unknown
	// opcode); JAM is a clean per-spec halt the CPU absorbs on its own,
	// so System.Halted should remain false and stepping further is safe.
	if s.Halted {
		t.Fatal("JAM is a clean CPU halt, not a sequencer-fatal condition")
	}
}

// TestStepFrameAdvancesExactlyOneFrame exercises the System-level
// process interface named in spec §6.
func TestStepFrameAdvancesExactlyOneFrame(t *testing.T) {
	s := newTestSystem(t, []byte{0xEA}, nil)
	before := s.PPU.Frame()
	s.StepFrame()
	if s.PPU.Frame() != before+1 {
		t.Fatalf("Frame() = %d, want %d after StepFrame", s.PPU.Frame(), before+1)
	}
}

// TestStrobeLatchesOnlyPort0 covers spec §9's open question: only
// controller 0 is latched on a $4016 write in this implementation, so
// pad1 (never strobed) reports no buttons pressed in bit 0 of its reads.
func TestStrobeLatchesOnlyPort0(t *testing.T) {
	s := newTestSystem(t, []byte{0xEA}, nil)
	s.SetController(0, 0x80) // A pressed
	s.SetController(1, 0x40) // B pressed, but pad1 is never strobed

	s.Bus.Write(0x4016, 0x01)
	s.Bus.Write(0x4016, 0x00)
	if got := s.Bus.Read(0x4016) & 1; got != 1 {
		t.Fatalf("pad0 bit0 = %d, want 1 (A pressed)", got)
	}
	if got := s.Bus.Read(0x4017) & 1; got != 0 {
		t.Fatalf("pad1 bit0 = %d, want 0 (never strobed, per the approximated latch)", got)
	}
}
