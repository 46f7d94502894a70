// Package bus implements the CPU-side and PPU-side address decode (spec
// §4.3, §4.4): WRAM mirroring, the PPU/APU register windows, controller
// I/O, the OAM DMA state machine, and cartridge/CHR/VRAM routing.
package bus

import (
	"nesforge/log"
)

// PPURegisters is the subset of the ppu package's register file the CPU
// bus can see: the 8-register window at $2000..$2007.
type PPURegisters interface {
	ReadRegister(n uint8) uint8
	WriteRegister(n uint8, val uint8)
}

// APURegisters is the subset of the apu package's register file the CPU
// bus can see: $4000..$4013, $4015, $4017.
type APURegisters interface {
	ReadStatus() uint8
	WriteRegister(addr uint16, val uint8)
}

// Cartridge is the CPU-visible half of the cartridge package's mapper
// interface.
type Cartridge interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
}

// Controller is the shift-register protocol the input package exposes.
type Controller interface {
	Strobe(on bool)
	Read() uint8
}

// CycleSource reports the CPU's running cycle count, used only to decide
// OAM DMA's start parity (spec §4.3).
type CycleSource interface {
	CurrentCycle() uint64
}

type dmaState struct {
	page       uint8
	addr       uint8
	data       uint8
	active     bool
	alignDone  bool
	needsAlign bool
	haveData   bool
}

// CPUBus decodes CPU addresses and owns WRAM and the OAM DMA state
// machine. PPU/APU/cartridge/controllers are wired in at construction.
type CPUBus struct {
	wram [0x0800]byte

	ppu  PPURegisters
	apu  APURegisters
	cart Cartridge
	pads [2]Controller
	cpu  CycleSource

	dma dmaState
}

// New constructs a CPU bus. pad0/pad1 may be nil if no controller is
// connected to that port.
func New(cart Cartridge, ppu PPURegisters, apu APURegisters, pad0, pad1 Controller) *CPUBus {
	b := &CPUBus{cart: cart, ppu: ppu, apu: apu}
	b.pads[0] = pad0
	b.pads[1] = pad1
	return b
}

// AttachCPU wires the CPU's cycle counter in. Done after construction
// because the CPU itself needs a Bus at construction time.
func (b *CPUBus) AttachCPU(cpu CycleSource) { b.cpu = cpu }

// Read decodes addr per spec §4.3 and returns the byte at that location.
func (b *CPUBus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.wram[addr&0x07FF]
	case addr < 0x4000:
		return b.ppu.ReadRegister(uint8(addr & 0x0007))
	case addr == 0x4015:
		return b.apu.ReadStatus()
	case addr == 0x4016:
		return b.readPad(0)
	case addr == 0x4017:
		return b.readPad(1)
	case addr < 0x4020:
		return 0 // open bus on the rest of the APU/IO window for reads
	default:
		return b.cart.CPURead(addr)
	}
}

// Write decodes addr per spec §4.3 and dispatches the write.
func (b *CPUBus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.wram[addr&0x07FF] = val
	case addr < 0x4000:
		b.ppu.WriteRegister(uint8(addr&0x0007), val)
	case addr == 0x4014:
		b.triggerOAMDMA(val)
	case addr == 0x4016:
		b.strobe(val&0x01 != 0)
	case addr < 0x4018:
		b.apu.WriteRegister(addr, val)
	case addr < 0x4020:
		// unused APU/IO test-mode registers; ignored.
	default:
		b.cart.CPUWrite(addr, val)
	}
}

func (b *CPUBus) readPad(port int) uint8 {
	if b.pads[port] == nil {
		return 0x40
	}
	return b.pads[port].Read()
}

// strobe latches controller 0 per the approximated single-port latch
// described in spec §9's open question.
func (b *CPUBus) strobe(on bool) {
	if b.pads[0] != nil {
		b.pads[0].Strobe(on)
	}
}

func (b *CPUBus) triggerOAMDMA(page uint8) {
	odd := b.cpu != nil && b.cpu.CurrentCycle()%2 != 0
	b.dma = dmaState{page: page, active: true, needsAlign: odd}
	log.ModDMA.Debugf("OAM DMA triggered: page=$%02X00 odd-start=%v", page, odd)
}

// InDMA reports whether the OAM DMA state machine currently owns the bus
// (the sequencer steps it instead of the CPU while this is true).
func (b *CPUBus) InDMA() bool { return b.dma.active }

// StepDMA advances the OAM DMA state machine by exactly one CPU cycle
// (spec §4.3 steps 1-5).
func (b *CPUBus) StepDMA() {
	d := &b.dma
	if !d.alignDone {
		if d.needsAlign {
			d.needsAlign = false
			return
		}
		d.alignDone = true
		return
	}
	if !d.haveData {
		d.data = b.Read(uint16(d.page)<<8 | uint16(d.addr))
		d.haveData = true
		return
	}
	b.Write(0x2004, d.data)
	d.haveData = false
	d.addr++
	if d.addr == 0 {
		*d = dmaState{}
	}
}
