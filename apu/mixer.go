package apu

import "github.com/arl/blip"

const (
	ntscClockRate      = 1789773
	outputSampleRate   = 88200
	mixerBufferSamples = 4096
)

// Mixer blends the four channels through the NES's non-linear DAC curve
// (spec §4.7) and resamples the result from the NTSC CPU clock down to
// the ~88.2kHz the external audio callback expects. It uses arl/blip's
// band-limited synthesis buffer rather than the naive fixed-ratio
// decimation spec §4.8 sketches, so channel edges stay alias-free
// regardless of how many CPU cycles separate two drains.
type Mixer struct {
	buf  *blip.Buffer
	prev int16
}

func NewMixer() Mixer {
	buf := blip.NewBuffer(mixerBufferSamples)
	buf.SetRates(float64(ntscClockRate), float64(outputSampleRate))
	return Mixer{buf: buf}
}

func (m *Mixer) Reset() {
	m.buf.Clear()
	m.prev = 0
}

// Tick mixes one CPU cycle's worth of channel output and, if it differs
// from the previous cycle's mix, records the step into the resampling
// buffer at time cycle (CPU cycles since the last drain).
func (m *Mixer) Tick(cycle uint64, p1, p2, t, n uint8) {
	sample := mix(p1, p2, t, n)
	if sample != m.prev {
		m.buf.AddDelta(cycle, int32(sample)-int32(m.prev))
		m.prev = sample
	}
}

// mix implements spec §4.7's mixer formulas.
func mix(p1, p2, t, n uint8) int16 {
	var pulseOut, tndOut float64
	if sum := p1 + p2; sum > 0 {
		pulseOut = 95.88 / (8128.0/float64(sum) + 100.0)
	}
	if den := float64(t)/8227.0 + float64(n)/12241.0; den > 0 {
		tndOut = 159.79 / (1.0/den + 100.0)
	}
	return int16((pulseOut + tndOut) * 32767.0)
}

// drain ends the current resampling frame at cpuCycles (CPU cycles
// elapsed since the previous drain) and pushes every available output
// sample to emit, converting blip's int16 PCM to the float32 stream the
// external audio callback expects (spec §6).
func (m *Mixer) drain(cpuCycles uint64, emit func(float32)) {
	m.buf.EndFrame(int(cpuCycles))

	var out [256]int16
	for {
		n := m.buf.ReadSamples(out[:], len(out), blip.Mono)
		if n == 0 {
			return
		}
		for i := 0; i < n; i++ {
			emit(float32(out[i]) / 32768.0)
		}
		if n < len(out) {
			return
		}
	}
}
