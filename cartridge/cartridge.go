// Package cartridge implements cartridge loading and the NROM mapper
// (spec §4.1): iNES header interpretation, PRG/CHR bank ownership, and the
// CPU/PPU address-to-bank-offset translation.
package cartridge

import (
	"fmt"

	"nesforge/ines"
	"nesforge/log"
)

// Mirroring is the nametable mirroring mode reported by the cartridge to
// the graphics bus.
type Mirroring = ines.Mirroring

const (
	Horizontal = ines.Horizontal
	Vertical   = ines.Vertical
)

// Cartridge owns the PRG/CHR banks and translates bus addresses into bank
// offsets. Only mapper 0 (NROM) is supported; Non-goals (spec §1) exclude
// the rest.
type Cartridge struct {
	prg []byte
	chr []byte

	prgMask uint32 // 0x3FFF when a single 16KiB PRG bank is present, else 0x7FFF
	mirror  Mirroring
	chrRAM  bool
}

// Load takes an already-parsed iNES image and constructs the cartridge's mapper state.
// ROM acquisition (reading the file, fetching over network) is an
// out-of-scope external collaborator; the caller hands in the decoded rom.
func Load(rom *ines.Rom) (*Cartridge, error) {
	if rom.NES20 {
		return nil, fmt.Errorf("cartridge: NES 2.0 roms are not supported")
	}
	if rom.Mapper != 0 {
		return nil, fmt.Errorf("cartridge: unsupported mapper %d, only NROM (0) is supported", rom.Mapper)
	}
	if rom.FourScreen {
		return nil, fmt.Errorf("cartridge: four-screen mirroring is unsupported")
	}

	c := &Cartridge{
		prg:    append([]byte(nil), rom.PRG...),
		chr:    append([]byte(nil), rom.CHR...),
		mirror: rom.Mirroring,
	}
	if len(c.prg) == 0 {
		return nil, fmt.Errorf("cartridge: empty PRG ROM")
	}
	if len(c.chr) == 0 {
		// CHR-RAM carts exist on real NROM boards; approximate with 8KiB
		// of writable pattern memory so the PPU bus still has somewhere
		// to read/write (spec treats CHR as owned-by-cartridge memory).
		c.chr = make([]byte, 0x2000)
		c.chrRAM = true
	}

	if rom.PRGBanks == 1 {
		c.prgMask = 0x3FFF
	} else {
		c.prgMask = 0x7FFF
	}

	log.ModMapper.Infof("loaded NROM cartridge: %d PRG bank(s), %d CHR byte(s), mirroring=%s",
		rom.PRGBanks, len(c.chr), c.mirror)
	return c, nil
}

// Mirroring reports the nametable mirroring mode (spec §4.1, §4.4).
func (c *Cartridge) Mirroring() Mirroring { return c.mirror }

// CPUMap translates a CPU address into a PRG ROM offset. It returns
// ok=false for addresses below $8000 (cartridge-side open bus).
func (c *Cartridge) CPUMap(addr uint16) (offset uint32, ok bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return uint32(addr-0x8000) & c.prgMask, true
}

// CPURead reads a byte of PRG ROM through CPUMap, returning 0 for
// cartridge-side open bus (spec §7: soft conditions are approximated
// rather than raised).
func (c *Cartridge) CPURead(addr uint16) uint8 {
	off, ok := c.CPUMap(addr)
	if !ok {
		return 0
	}
	return c.prg[off]
}

// CPUWrite handles writes to PRG space. NROM ignores all such writes
// except for the debug-only reset-vector patch hole (spec §4.1, §4.7):
// tests may poke $FFFC/$FFFD before reset to force entry at a known
// address (the nestest headless harness, spec §8 scenario 1).
func (c *Cartridge) CPUWrite(addr uint16, val uint8) {
	if addr == 0xFFFC || addr == 0xFFFD {
		off, _ := c.CPUMap(addr)
		c.prg[off] = val
		return
	}
	// all other writes are silently ignored: PRG ROM is read-only on NROM.
}

// PatchResetVector overwrites the reset vector bytes directly in PRG ROM.
// This is the one sanctioned "write" to ROM, used by headless test
// harnesses (spec §4.1).
func (c *Cartridge) PatchResetVector(addr uint16) {
	off := uint32(0xFFFC-0x8000) & c.prgMask
	c.prg[off] = uint8(addr)
	c.prg[off+1] = uint8(addr >> 8)
}

// PPUMap translates a PPU address below $2000 into a CHR offset.
func (c *Cartridge) PPUMap(addr uint16) uint16 {
	return addr % uint16(len(c.chr))
}

func (c *Cartridge) PPURead(addr uint16) uint8 {
	return c.chr[c.PPUMap(addr)]
}

func (c *Cartridge) PPUWrite(addr uint16, val uint8) {
	if c.chrRAM {
		c.chr[c.PPUMap(addr)] = val
	}
	// CHR-ROM carts silently ignore writes.
}
