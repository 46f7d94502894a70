package cpu6502

import "testing"

// flatBus is a 64KiB RAM backing used only by these unit tests; the real
// bus wiring lives in the bus package.
type flatBus struct {
	mem [65536]byte
}

func (b *flatBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func newTestCPU(program ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x8000:], program)
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU(0xEA)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU(0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x7F)
	cycles := c.Step()
	if cycles != 2 || c.A != 0 || !c.P.Z() || c.P.N() {
		t.Fatalf("LDA #$00: A=%#x Z=%v N=%v cycles=%d", c.A, c.P.Z(), c.P.N(), cycles)
	}
	c.Step()
	if c.A != 0x80 || c.P.Z() || !c.P.N() {
		t.Fatalf("LDA #$80: A=%#x Z=%v N=%v", c.A, c.P.Z(), c.P.N())
	}
	c.Step()
	if c.A != 0x7F || c.P.Z() || c.P.N() {
		t.Fatalf("LDA #$7F: A=%#x Z=%v N=%v", c.A, c.P.Z(), c.P.N())
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0xBD, 0xFF, 0x20) // LDA $20FF,X
	c.X = 0x01                             // crosses into $2100
	bus.mem[0x2100] = 0x42
	cycles := c.Step()
	if cycles != 5 {
		t.Fatalf("cycles = %d, want 5 (4 base + 1 page-cross)", cycles)
	}
	if c.A != 0x42 {
		t.Fatalf("A = %#x, want 0x42", c.A)
	}
}

func TestBranchTakenAddsCycles(t *testing.T) {
	c, _ := newTestCPU(0xF0, 0x02) // BEQ +2
	c.P.setZ(true)
	cycles := c.Step()
	if cycles != 3 {
		t.Fatalf("cycles = %d, want 3 (2 base + 1 taken)", cycles)
	}
	if c.PC != 0x8004 {
		t.Fatalf("PC = %#04x, want 0x8004", c.PC)
	}
}

func TestJSRandRTSRoundTrip(t *testing.T) {
	c, _ := newTestCPU(
		0x20, 0x05, 0x80, // JSR $8005
		0xEA,             // NOP (skipped)
		0x00,             // padding
		0x60,             // RTS at $8005
	)
	c.Step() // JSR
	if c.PC != 0x8005 {
		t.Fatalf("PC after JSR = %#04x, want 0x8005", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, _ := newTestCPU(0x69, 0x10) // ADC #$10
	c.A = 0x7F                    // 0x7F + 0x10 overflows into negative
	c.Step()
	if c.A != 0x8F {
		t.Fatalf("A = %#x, want 0x8F", c.A)
	}
	if !c.P.V() {
		t.Fatal("expected overflow flag set")
	}
	if c.P.C() {
		t.Fatal("did not expect carry")
	}
}

func TestSLOComposesASLAndORA(t *testing.T) {
	c, bus := newTestCPU(0x07, 0x10) // SLO $10
	bus.mem[0x0010] = 0x81           // shifts to 0x02, carry set
	c.A = 0x04
	c.Step()
	if bus.mem[0x0010] != 0x02 {
		t.Fatalf("memory = %#x, want 0x02", bus.mem[0x0010])
	}
	if c.A != 0x06 { // 0x04 | 0x02
		t.Fatalf("A = %#x, want 0x06", c.A)
	}
	if !c.P.C() {
		t.Fatal("expected carry set from the ASL half")
	}
}

func TestIllegalSBCAt0xEBMatchesOfficial(t *testing.T) {
	c, _ := newTestCPU(0xEB, 0x01) // illegal SBC #$01
	c.A = 0x05
	c.P.setC(true) // no borrow
	c.Step()
	if c.A != 0x04 {
		t.Fatalf("A = %#x, want 0x04", c.A)
	}
}

func TestJAMHalts(t *testing.T) {
	c, _ := newTestCPU(0x02)
	c.Step()
	if !c.Halted() {
		t.Fatal("expected CPU to halt on JAM")
	}
	before := c.PC
	c.Step()
	if c.PC != before {
		t.Fatal("halted CPU should not advance PC")
	}
}

func TestNMIServicedBeforeNextInstruction(t *testing.T) {
	c, bus := newTestCPU(0xEA)
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90
	c.RequestNMI()
	cycles := c.Step()
	if cycles != 7 {
		t.Fatalf("NMI service cycles = %d, want 7", cycles)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
}
