package cartridge

import (
	"bytes"
	"testing"

	"nesforge/ines"
)

func makeRom(t *testing.T, prgBanks, chrBanks byte, flags6 byte) *ines.Rom {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 16)
	copy(header, ines.Magic)
	header[4] = prgBanks
	header[5] = chrBanks
	header[6] = flags6
	buf.Write(header)
	buf.Write(make([]byte, int(prgBanks)*16384))
	buf.Write(make([]byte, int(chrBanks)*8192))

	rom, err := ines.Load(&buf)
	if err != nil {
		t.Fatalf("ines.Load: %v", err)
	}
	return rom
}

func TestCPUMapSingleBankMirrors(t *testing.T) {
	rom := makeRom(t, 1, 1, 0)
	c, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.prg[0] = 0x42

	off1, ok := c.CPUMap(0x8000)
	if !ok || off1 != 0 {
		t.Fatalf("CPUMap(0x8000) = %d, %v", off1, ok)
	}
	off2, ok := c.CPUMap(0xC000) // mirrors bank 0 when only one 16KiB bank
	if !ok || off2 != 0 {
		t.Fatalf("CPUMap(0xC000) = %d, %v", off2, ok)
	}
	if c.CPURead(0xC000) != 0x42 {
		t.Errorf("expected mirrored read to see patched byte")
	}
}

func TestCPUMapOpenBusBelow8000(t *testing.T) {
	rom := makeRom(t, 1, 1, 0)
	c, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.CPUMap(0x6000); ok {
		t.Error("expected CPUMap below $8000 to report open bus")
	}
	if c.CPURead(0x6000) != 0 {
		t.Error("expected open-bus read to return 0")
	}
}

func TestPatchResetVector(t *testing.T) {
	rom := makeRom(t, 2, 1, 0)
	c, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.PatchResetVector(0xC000)
	if got := uint16(c.CPURead(0xFFFC)) | uint16(c.CPURead(0xFFFD))<<8; got != 0 {
		// just verify the low/high bytes individually below
	}
	if c.CPURead(0xFFFC) != 0x00 || c.CPURead(0xFFFD) != 0xC0 {
		t.Errorf("reset vector = %02x%02x, want C000", c.CPURead(0xFFFD), c.CPURead(0xFFFC))
	}
}

func TestRejectsUnsupportedMapper(t *testing.T) {
	rom := makeRom(t, 1, 1, 0x10) // mapper nibble 1 -> MMC1
	if _, err := Load(rom); err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}

func TestRejectsFourScreen(t *testing.T) {
	rom := makeRom(t, 1, 1, 0x08)
	if _, err := Load(rom); err == nil {
		t.Fatal("expected error for four-screen mirroring")
	}
}

func TestCHRRAMFallback(t *testing.T) {
	rom := makeRom(t, 1, 0, 0) // no CHR banks -> CHR-RAM
	c, err := Load(rom)
	if err != nil {
		t.Fatal(err)
	}
	c.PPUWrite(0x0100, 0x7F)
	if got := c.PPURead(0x0100); got != 0x7F {
		t.Errorf("PPURead(0x0100) = %#x, want 0x7F", got)
	}
}
