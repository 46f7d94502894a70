// Package apu implements the NES Audio Processing Unit (spec §4.7):
// two pulse channels, a triangle channel, a noise channel, the shared
// frame counter, and the non-linear mixer feeding a caller-supplied
// sample callback.
package apu

import "nesforge/log"

// Channel identifies one of the four synthesized channels (no DMC,
// per scope).
type Channel int

const (
	Pulse1 Channel = iota
	Pulse2
	Triangle
	Noise
)

// APU owns all four channels, the frame counter, and the mixer. It is
// driven one CPU cycle at a time by the sequencer.
type APU struct {
	pulse1   pulse
	pulse2   pulse
	triangle triangleChannel
	noise    noiseChannel
	frame    frameCounter
	mixer    Mixer

	cycle uint64

	irqLine bool // latched frame_interrupt / DMC-IRQ (DMC never sets it here)
}

func New() *APU {
	a := &APU{}
	a.pulse1.sweep.onesComplement = true // channel 0: extra -1 in negate mode
	a.mixer = NewMixer()
	a.Reset(false)
	return a
}

// Reset restores the post-power-on (hard) or post-reset (soft) state.
func (a *APU) Reset(soft bool) {
	a.pulse1.reset()
	a.pulse2.reset()
	a.triangle.reset()
	a.noise.reset()
	a.frame.reset(soft)
	a.irqLine = false
	a.cycle = 0
	if !soft {
		a.mixer.Reset()
	}
}

// IRQLine reports whether the frame counter is currently asserting
// /IRQ; the sequencer ORs this into the CPU's interrupt line.
func (a *APU) IRQLine() bool { return a.irqLine }

// Tick advances every channel and the frame counter by exactly one
// CPU cycle, and accumulates mixer deltas for later sampling.
func (a *APU) Tick() {
	quarter, half, irq := a.frame.tick()
	if irq {
		a.irqLine = true
	}
	if quarter {
		a.clockQuarterFrame()
	}
	if half {
		a.clockHalfFrame()
	}

	a.pulse1.tickTimer()
	a.pulse2.tickTimer()
	a.triangle.tickTimer()
	a.noise.tickTimer()

	a.mixer.Tick(a.cycle, a.pulse1.output(), a.pulse2.output(), a.triangle.output(), a.noise.output())
	a.cycle++
}

func (a *APU) clockQuarterFrame() {
	a.pulse1.envelope.tick()
	a.pulse2.envelope.tick()
	a.triangle.linear.tick()
	a.noise.envelope.tick()
}

func (a *APU) clockHalfFrame() {
	a.pulse1.length.tick()
	a.pulse2.length.tick()
	a.triangle.length.tick()
	a.noise.length.tick()
	a.pulse1.sweep.tick(&a.pulse1.timerPeriod)
	a.pulse2.sweep.tick(&a.pulse2.timerPeriod)
}

// ReadStatus implements the $4015 read side: bits 0..3 report channel
// length-counter-nonzero state (pulse1, pulse2, triangle, noise); bit6
// frame_interrupt (and clears it).
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.pulse1.length.status() {
		v |= 1 << 0
	}
	if a.pulse2.length.status() {
		v |= 1 << 1
	}
	if a.triangle.length.status() {
		v |= 1 << 2
	}
	if a.noise.length.status() {
		v |= 1 << 3
	}
	if a.irqLine {
		v |= 1 << 6
	}
	a.irqLine = false
	log.ModSound.Debugf("$4015 read -> %#02x", v)
	return v
}

// WriteRegister dispatches a CPU-side write to $4000-$4013, $4015, or
// $4017 (spec §6 register map).
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.pulse1.writeControl(val)
	case 0x4001:
		a.pulse1.sweep.write(val)
	case 0x4002:
		a.pulse1.writeTimerLow(val)
	case 0x4003:
		a.pulse1.writeTimerHigh(val)

	case 0x4004:
		a.pulse2.writeControl(val)
	case 0x4005:
		a.pulse2.sweep.write(val)
	case 0x4006:
		a.pulse2.writeTimerLow(val)
	case 0x4007:
		a.pulse2.writeTimerHigh(val)

	case 0x4008:
		a.triangle.writeLinear(val)
	case 0x400A:
		a.triangle.writeTimerLow(val)
	case 0x400B:
		a.triangle.writeTimerHigh(val)

	case 0x400C:
		a.noise.writeControl(val)
	case 0x400E:
		a.noise.writePeriod(val)
	case 0x400F:
		a.noise.writeLength(val)

	case 0x4015:
		a.pulse1.length.setEnabled(val&1 != 0)
		a.pulse2.length.setEnabled(val&2 != 0)
		a.triangle.length.setEnabled(val&4 != 0)
		a.noise.length.setEnabled(val&8 != 0)

	case 0x4017:
		quarter, half := a.frame.write(val)
		if quarter {
			a.clockQuarterFrame()
		}
		if half {
			a.clockHalfFrame()
		}
	}
}

// DrainAudio flushes every sample the mixer has produced since the last
// call through the resampler and passes each to emit (spec §6's audio
// output); the sequencer calls this after every step when an audio sink
// is set.
func (a *APU) DrainAudio(emit func(float32)) {
	a.mixer.drain(a.cycle, emit)
	a.cycle = 0
}
