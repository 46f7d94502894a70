// Package system wires the CPU, PPU, APU, cartridge, and controllers
// together and drives them with the master sequencer (spec §4.8): the
// top-level process interface named in spec §6.
package system

import (
	"bytes"
	"fmt"

	"nesforge/apu"
	"nesforge/bus"
	"nesforge/cartridge"
	"nesforge/cpu6502"
	"nesforge/ines"
	"nesforge/input"
	"nesforge/log"
	"nesforge/ppu"
)

// System owns every co-processor and the buses that connect them. It is
// the unit of construction the CLI and any front-end talk to.
type System struct {
	CPU  *cpu6502.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Cart *cartridge.Cartridge
	Bus  *bus.CPUBus

	Pad1, Pad2 input.Controller

	// Halted/LastError record a fatal condition the sequencer hit (spec
	// §7): the sequencer exits the loop but all other state is retained
	// for post-mortem inspection.
	Halted    bool
	LastError error
}

// New parses rom, loads the cartridge, and wires the full system. It does
// not reset the CPU; call Reset before running.
func New(rom []byte) (*System, error) {
	r, err := ines.Load(bytes.NewReader(rom))
	if err != nil {
		return nil, fmt.Errorf("system: failed to parse rom: %w", err)
	}
	return NewFromRom(r)
}

// NewFromRom builds a System from an already-parsed iNES image; used by
// the CLI (which checks the parsed header before running) and by tests that
// construct a Rom directly (spec §8 scenario 1's reset-vector patch).
func NewFromRom(rom *ines.Rom) (*System, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, err
	}

	s := &System{Cart: cart}

	gbus := bus.NewPPUBus(ppuCartridge{cart})
	s.PPU = ppu.New(gbus)
	s.APU = apu.New()

	s.CPU = cpu6502.New(nil) // Bus wired in below

	s.Bus = bus.New(cart, s.PPU, s.APU, &s.Pad1, &s.Pad2)
	s.Bus.AttachCPU(s.CPU)
	s.CPU.Bus = s.Bus

	return s, nil
}

// ppuCartridge adapts *cartridge.Cartridge to bus.PPUCartridge: the two
// packages declare structurally-identical Mirroring types, but Go
// interface satisfaction requires exact method signatures, not just
// covariant return types.
type ppuCartridge struct {
	*cartridge.Cartridge
}

func (c ppuCartridge) Mirroring() bus.Mirroring { return c.Cartridge.Mirroring() }

// Reset performs a soft or hard reset (SPEC_FULL addition): a hard reset
// (soft=false) also clears the APU's mixer buffer and frame-counter mode
// back to 4-step; a soft reset preserves the APU's frame-counter mode,
// matching widely-documented 2A03 behavior spec.md's data model leaves
// unspecified.
func (s *System) Reset(soft bool) {
	s.CPU.Reset()
	s.PPU.Reset()
	s.APU.Reset(soft)
	s.Halted = false
	s.LastError = nil
	log.ModEmu.Infof("system reset (soft=%v), PC=$%04X", soft, s.CPU.PC)
}

// SetController latches a one-byte button snapshot into controller
// index (0 or 1); spec §5's "controllers are one-byte snapshots written
// by the front-end between ticks."
func (s *System) SetController(index int, state uint8) {
	switch index {
	case 0:
		s.Pad1.SetState(state)
	case 1:
		s.Pad2.SetState(state)
	}
}

// Framebuffer returns the PPU's framebuffer, read-only for the caller
// (spec §5: written only by the PPU, read by the front-end without
// synchronisation).
func (s *System) Framebuffer() *[256 * 240]ppu.RGB { return &s.PPU.FrameBuffer }
