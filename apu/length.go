package apu

// lengthTable is the fixed 32-entry table every length-counter write
// indexes into; it is wired directly from the NES APU's hardware spec
// and shared by all four channels.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter is the shared length_counter sub-block (spec §4.7):
// enable + halt + an 8-bit down-counter clocked on half-frames.
type lengthCounter struct {
	enabled bool
	halt    bool
	counter uint8
}

func (lc *lengthCounter) setEnabled(on bool) {
	lc.enabled = on
	if !on {
		lc.counter = 0
	}
}

func (lc *lengthCounter) setHalt(h bool) { lc.halt = h }

func (lc *lengthCounter) load(idx uint8) {
	if lc.enabled {
		lc.counter = lengthTable[idx&0x1F]
	}
}

func (lc *lengthCounter) tick() {
	if lc.counter > 0 && !lc.halt {
		lc.counter--
	}
}

func (lc *lengthCounter) status() bool { return lc.counter > 0 }

func (lc *lengthCounter) reset() {
	lc.enabled = false
	lc.halt = false
	lc.counter = 0
}
