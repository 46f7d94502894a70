package apu

// triangleSteps is the 32-step piecewise-linear 0..15..0 waveform the
// triangle channel's sequencer walks (spec §4.7).
var triangleSteps = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// triangleChannel is the triangle generator (spec §4.7): a timer clocked
// every CPU cycle (no divide-by-two, unlike pulse/noise), gated by both
// the length counter and the linear counter.
type triangleChannel struct {
	length lengthCounter
	linear linearCounter

	timerPeriod uint16
	timer       uint16
	seqPos      uint8
}

func (t *triangleChannel) reset() {
	t.length.reset()
	t.linear.reset()
	t.timerPeriod = 0
	t.timer = 0
	t.seqPos = 0
}

func (t *triangleChannel) writeLinear(val uint8) {
	t.linear.write(val)
	t.length.setHalt(val&0x80 != 0)
}

func (t *triangleChannel) writeTimerLow(val uint8) {
	t.timerPeriod = t.timerPeriod&0x0700 | uint16(val)
}

// writeTimerHigh decodes $400B: high 3 bits of the timer period, the
// length-counter load index, and sets the linear-counter reload flag
// (spec §4.7).
func (t *triangleChannel) writeTimerHigh(val uint8) {
	t.timerPeriod = t.timerPeriod&0x00FF | uint16(val&0x07)<<8
	t.length.load(val >> 3)
	t.linear.restart()
}

// tickTimer advances the triangle timer by one CPU cycle. The sequencer
// clocks only while both the length and linear counters are nonzero;
// when silenced it holds its last output rather than emitting 0 (spec
// §4.7), which this implementation achieves simply by not advancing
// seqPos.
func (t *triangleChannel) tickTimer() {
	if t.timer == 0 {
		t.timer = t.timerPeriod
		if t.length.status() && t.linear.nonZero() {
			t.seqPos = (t.seqPos + 1) & 0x1F
		}
	} else {
		t.timer--
	}
}

func (t *triangleChannel) output() uint8 { return triangleSteps[t.seqPos] }
