// Package ppu implements the NES Picture Processing Unit (spec §4.4,
// §4.6): the CPU-visible register file, the 262×341 timing grid, and the
// cycle-accurate background/sprite rendering pipeline.
package ppu

import "nesforge/log"

const (
	ScanlinesPerFrame = 262
	CyclesPerScanline = 341
)

// Bus is the graphics bus: CHR passthrough and VRAM nametable access
// (palette RAM is owned directly by the PPU, spec §4.4).
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

type spriteEntry struct {
	y, tile, attr, x uint8
	oamIndex         int
}

// PPU holds the full register file plus rendering pipeline state.
type PPU struct {
	Bus Bus

	// nmi is the edge-triggered flag the sequencer polls once per step via
	// TakeNMI (spec §9: the PPU never calls back into the CPU directly).
	nmi bool

	OAM     [256]byte
	palette [32]byte

	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	v, t  vaddr
	fineX uint8
	w     bool // address latch

	dataBuffer uint8

	Scanline int
	Cycle    int
	frame    uint64

	// background fetch pipeline
	bgShiftLo, bgShiftHi uint16
	atShiftLo, atShiftHi uint16
	ntByte, atByte       uint8
	bgLoByte, bgHiByte   uint8

	// sprite evaluation / rendering
	secondary     [8]spriteEntry
	secondaryN    int
	spritePatLo   [8]uint8
	spritePatHi   [8]uint8
	spriteX       [8]uint8
	spriteAttr    [8]uint8
	spriteOAMIdx  [8]int

	FrameBuffer [256 * 240]RGB

	suppressVBL bool // never set or read: a $2002 read at the vblank-set dot does not suppress the flag
}

func New(bus Bus) *PPU {
	return &PPU{Bus: bus}
}

// TakeNMI reports whether the PPU has raised NMI since the last call, and
// clears the flag. The sequencer calls this once per step and, if it
// reports true, calls CPU.RequestNMI() itself (spec §9: the PPU raises NMI
// by flipping a flag the sequencer polls, never by calling into the CPU).
func (p *PPU) TakeNMI() bool {
	pending := p.nmi
	p.nmi = false
	return pending
}

// Reset moves the PPU to (0,0) and clears PPUCTRL, PPUMASK, the write
// toggle and the v/t address registers. Status, OAM, palette and the
// frame count are left as they are.
func (p *PPU) Reset() {
	p.Scanline = 0
	p.Cycle = 0
	p.ctrl = 0
	p.mask = 0
	p.w = false
	p.v = 0
	p.t = 0
}

// Frame returns the number of frames rendered since the PPU was created
// (Reset does not clear it);
// the sequencer watches it to detect frame completion.
func (p *PPU) Frame() uint64 { return p.frame }

func (p *PPU) showBg() bool      { return bit(p.mask, maskShowBg) }
func (p *PPU) showSprites() bool { return bit(p.mask, maskShowSprites) }
func (p *PPU) renderingEnabled() bool { return p.showBg() || p.showSprites() }

// --- CPU-facing register file, $2000-$2007 mirrored every 8 bytes ---

func (p *PPU) ReadRegister(n uint8) uint8 {
	switch n & 7 {
	case 2:
		return p.readStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readData()
	default:
		return 0 // write-only registers read back as open bus
	}
}

func (p *PPU) WriteRegister(n uint8, val uint8) {
	switch n & 7 {
	case 0:
		p.writeCtrl(val)
	case 1:
		p.mask = val
	case 3:
		p.oamAddr = val
	case 4:
		p.writeOAMData(val)
	case 5:
		p.writeScroll(val)
	case 6:
		p.writeAddr(val)
	case 7:
		p.writeData(val)
	}
}

func (p *PPU) writeCtrl(val uint8) {
	wasNMIEnabled := bit(p.ctrl, ctrlNMIEnable)
	p.ctrl = val
	p.t = p.t.withNametableX(uint16(val) & 1).withNametableY(uint16(val>>1) & 1)

	// Toggling NMI-enable on while already in vblank re-fires the edge,
	// matching real hardware's /NMI-glitch behavior.
	if !wasNMIEnabled && bit(p.ctrl, ctrlNMIEnable) && bit(p.status, statusVblank) {
		p.nmi = true
	}
}

func (p *PPU) readStatus() uint8 {
	ret := (p.status & 0xE0) | (p.dataBuffer & 0x1F)
	setBit(&p.status, statusVblank, false)
	p.w = false
	return ret
}

func (p *PPU) readOAMData() uint8 { return p.OAM[p.oamAddr] }

func (p *PPU) writeOAMData(val uint8) {
	p.OAM[p.oamAddr] = val
	p.oamAddr++
}

func (p *PPU) writeScroll(val uint8) {
	if !p.w {
		p.fineX = val & 7
		p.t = p.t.withCoarseX(uint16(val) >> 3)
	} else {
		p.t = p.t.withFineY(uint16(val) & 7).withCoarseY(uint16(val) >> 3)
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(val uint8) {
	if !p.w {
		p.t = vaddr((uint16(val)&0x3F)<<8 | uint16(p.t)&0x00FF)
	} else {
		p.t = vaddr(uint16(p.t)&0xFF00 | uint16(val))
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) readData() uint8 {
	addr := uint16(p.v) & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		val = p.dataBuffer
		p.dataBuffer = p.Bus.Read(addr)
	} else {
		val = p.readPalette(addr)
		p.dataBuffer = p.Bus.Read(addr - 0x1000)
	}
	p.incrementVRAM()
	return val
}

func (p *PPU) writeData(val uint8) {
	addr := uint16(p.v) & 0x3FFF
	if addr >= 0x3F00 {
		p.writePalette(addr, val)
	} else {
		p.Bus.Write(addr, val)
	}
	p.incrementVRAM()
}

func (p *PPU) incrementVRAM() {
	if bit(p.ctrl, ctrlVRAMIncrement) {
		p.v = vaddr(uint16(p.v) + 32)
	} else {
		p.v = vaddr(uint16(p.v) + 1)
	}
}

// paletteIndex folds the sprite-background aliasing at $3F10/14/18/1C
// (spec §4.4, §8 invariant 7).
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x1F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.palette[paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, val uint8) { p.palette[paletteIndex(addr)] = val }

// --- sprite size / pattern table helpers shared with render.go ---

func (p *PPU) spriteHeight() int {
	if bit(p.ctrl, ctrlSpriteSize) {
		return 16
	}
	return 8
}

func (p *PPU) bgPatternBase() uint16 {
	if bit(p.ctrl, ctrlBgPattern) {
		return 0x1000
	}
	return 0
}

func (p *PPU) spritePatternBase() uint16 {
	if bit(p.ctrl, ctrlSpritePattern) {
		return 0x1000
	}
	return 0
}

// OAMDMAWrite is identical to a normal OAMDATA write. The OAM DMA state
// machine does not call it: the CPU bus copies each byte through the
// $2004 register write instead.
func (p *PPU) OAMDMAWrite(val uint8) { p.writeOAMData(val) }

func (p *PPU) logStatus() {
	log.ModPPU.Debugf("scanline=%d cycle=%d v=%#04x status=%#02x", p.Scanline, p.Cycle, uint16(p.v), p.status)
}
