package system

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"nesforge/log"
)

// frameInterval paces headless Run() to 60Hz (spec §4.8 step 2b).
const frameInterval = time.Second / 60

// StepFrame runs the sequencer until the PPU completes one frame, without
// pacing or audio callbacks. Used by headless tests and nestest-style
// tooling that just need deterministic frame advance.
func (s *System) StepFrame() {
	startFrame := s.PPU.Frame()
	for s.PPU.Frame() == startFrame && !s.Halted {
		s.stepOnce(nil)
	}
}

// Run drives the sequencer (spec §4.8) until ctx is cancelled or a fatal
// error halts the system. paused, when non-nil, is polled at the top of
// each iteration (spec §5's cooperative pause point: a blocking wait on
// the pause flag); audio, when non-nil, receives every emitted sample.
func (s *System) Run(ctx context.Context, paused *atomic.Bool, audio func(float32)) error {
	for {
		if paused != nil {
			for paused.Load() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(10 * time.Millisecond):
				}
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frameStart := time.Now()
		startFrame := s.PPU.Frame()
		for s.PPU.Frame() == startFrame && !s.Halted {
			s.stepOnce(audio)
		}
		if s.Halted {
			return s.LastError
		}

		if d := frameInterval - time.Since(frameStart); d > 0 {
			time.Sleep(d)
		}
	}
}

// StepInstruction advances the sequencer by exactly one CPU instruction (or
// one DMA cycle, if a transfer is in progress), without audio callbacks or
// frame pacing. Exposed for tools that need to interleave per-instruction
// work, such as writing a trace line before each fetch.
func (s *System) StepInstruction() { s.stepOnce(nil) }

// stepOnce implements one iteration of spec §4.8's loop body exactly as
// prescribed: a DMA cycle or one CPU instruction (2a/2b), then PPU catch-up
// at 3x (2c). The PPU never calls back into the CPU: it only raises an
// edge-triggered flag (PPU.TakeNMI), which stepOnce polls and turns into
// RequestNMI itself, mirroring how the sequencer also polls the APU's
// frame-IRQ line rather than letting the APU reach into the CPU directly.
// APU catch-up follows at 1x (2d), threading its IRQ line into the CPU's
// level-triggered IRQ input. Audio sample emission (2c's {20,20,20,21}
// rotation in the naive-decimation sketch) is delegated to the mixer's
// band-limited resampler (apu.Mixer, grounded on arl/blip) rather than
// reimplemented here — see apu/mixer.go.
func (s *System) stepOnce(audio func(float32)) {
	defer s.recoverFatal()

	var n int
	if s.Bus.InDMA() {
		s.Bus.StepDMA()
		n = 1
	} else {
		n = s.CPU.Step()
	}

	for i := 0; i < 3*n; i++ {
		s.PPU.Tick()
	}
	if s.PPU.TakeNMI() {
		s.CPU.RequestNMI()
	}

	for i := 0; i < n; i++ {
		s.APU.Tick()
		s.CPU.SetIRQLine(s.APU.IRQLine())
	}

	if audio != nil {
		s.APU.DrainAudio(audio)
	}
}

// recoverFatal converts a fatal condition (spec §7: unknown opcode,
// unmapped address, unimplemented mirroring mode) into the
// Halted/LastError state instead of crashing the process; all other
// state is left exactly as it was at the moment of failure for
// post-mortem inspection (zero-page dump, last PC).
func (s *System) recoverFatal() {
	if r := recover(); r != nil {
		s.Halted = true
		s.LastError = fmt.Errorf("system: fatal: %v", r)
		log.ModEmu.Errorf("halting: %v (PC=$%04X)", r, s.CPU.PC)
	}
}
