package bus

import "testing"

type fakePPU struct {
	regs [8]uint8
}

func (p *fakePPU) ReadRegister(n uint8) uint8 { return p.regs[n] }
func (p *fakePPU) WriteRegister(n uint8, v uint8) {
	p.regs[n] = v
}

type fakeAPU struct {
	status uint8
	writes map[uint16]uint8
}

func (a *fakeAPU) ReadStatus() uint8 { return a.status }
func (a *fakeAPU) WriteRegister(addr uint16, v uint8) {
	if a.writes == nil {
		a.writes = map[uint16]uint8{}
	}
	a.writes[addr] = v
}

type fakeCart struct {
	prg  [0x8000]byte
	chr  [0x2000]byte
	mirr fakeMirroring
}

func (c *fakeCart) CPURead(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	return c.prg[addr-0x8000]
}
func (c *fakeCart) CPUWrite(addr uint16, v uint8) {}
func (c *fakeCart) PPURead(addr uint16) uint8      { return c.chr[addr] }
func (c *fakeCart) PPUWrite(addr uint16, v uint8)  { c.chr[addr] = v }
func (c *fakeCart) Mirroring() Mirroring           { return c.mirr }

type fakeMirroring string

func (m fakeMirroring) String() string { return string(m) }

type fakeCycles struct{ n uint64 }

func (f *fakeCycles) CurrentCycle() uint64 { return f.n }

func TestWRAMMirroring(t *testing.T) {
	b := New(&fakeCart{}, &fakePPU{}, &fakeAPU{}, nil, nil)
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Fatalf("Read(0x0800) = %#x, want 0x42 (mirrors 0x0000)", got)
	}
	if got := b.Read(0x1FFF); got != b.Read(0x07FF) {
		t.Fatalf("0x1FFF and 0x07FF should be the same WRAM cell")
	}
}

func TestPPURegisterWindowMirrorsEvery8Bytes(t *testing.T) {
	ppu := &fakePPU{}
	b := New(&fakeCart{}, ppu, &fakeAPU{}, nil, nil)
	b.Write(0x2001, 0x55) // PPUMASK
	if ppu.regs[1] != 0x55 {
		t.Fatalf("PPUMASK not written")
	}
	b.Write(0x3FF9, 0x66) // mirrors $2001 (0x3FF9 & 7 == 1)
	if ppu.regs[1] != 0x66 {
		t.Fatalf("mirrored PPU register write missed")
	}
}

func TestOAMDMATransfersFullPage(t *testing.T) {
	ppu := &fakePPU{}
	cart := &fakeCart{}
	b := New(cart, ppu, &fakeAPU{}, nil, nil)
	b.AttachCPU(&fakeCycles{n: 0}) // even start -> 513 cycles

	for i := 0; i < 256; i++ {
		b.wram[i] = uint8(i)
	}
	b.Write(0x4014, 0x00) // page 0: source is WRAM[0..256)

	if !b.InDMA() {
		t.Fatal("expected DMA to be active immediately after trigger")
	}

	cycles := 0
	for b.InDMA() {
		b.StepDMA()
		cycles++
		if cycles > 1000 {
			t.Fatal("DMA never completed")
		}
	}
	if cycles != 513 {
		t.Fatalf("cycles = %d, want 513 for an even-parity start", cycles)
	}
	// every write to $2004 during DMA should have landed in ppu.regs[4],
	// leaving it holding the last byte transferred (0xFF).
	if ppu.regs[4] != 0xFF {
		t.Fatalf("OAMDATA register = %#x, want 0xFF (last byte copied)", ppu.regs[4])
	}
}

func TestOAMDMAOddStartTakesExtraCycle(t *testing.T) {
	b := New(&fakeCart{}, &fakePPU{}, &fakeAPU{}, nil, nil)
	b.AttachCPU(&fakeCycles{n: 1}) // odd start -> 514 cycles

	b.Write(0x4014, 0x02)
	cycles := 0
	for b.InDMA() {
		b.StepDMA()
		cycles++
	}
	if cycles != 514 {
		t.Fatalf("cycles = %d, want 514 for an odd-parity start", cycles)
	}
}

func TestControllerStrobeAndShiftOut(t *testing.T) {
	pad := &fakeController{state: 0x80} // A pressed
	b := New(&fakeCart{}, &fakePPU{}, &fakeAPU{}, pad, nil)

	b.Write(0x4016, 0x01) // strobe high: latch
	b.Write(0x4016, 0x00) // strobe low: start shifting
	if got := b.Read(0x4016) & 0x01; got != 1 {
		t.Fatalf("first read bit = %d, want 1 (A pressed)", got)
	}
	if got := b.Read(0x4016) & 0x01; got != 0 {
		t.Fatalf("second read bit = %d, want 0 (B not pressed)", got)
	}
}

type fakeController struct {
	state  uint8
	shift  uint8
	strobe bool
}

func (c *fakeController) Strobe(on bool) {
	c.strobe = on
	if on {
		c.shift = c.state
	}
}

func (c *fakeController) Read() uint8 {
	if c.strobe {
		c.shift = c.state
	}
	bit := (c.shift & 0x80) >> 7
	c.shift <<= 1
	return bit
}

func TestNametableMirroringHorizontal(t *testing.T) {
	cart := &fakeCart{mirr: fakeMirroring("horizontal")}
	pb := NewPPUBus(cart)
	pb.Write(0x2000, 0x11)
	if got := pb.Read(0x2400); got != 0x11 {
		t.Fatalf("horizontal mirroring: $2400 should alias $2000, got %#x", got)
	}
	pb.Write(0x2800, 0x22)
	if got := pb.Read(0x2C00); got != 0x22 {
		t.Fatalf("horizontal mirroring: $2C00 should alias $2800, got %#x", got)
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	cart := &fakeCart{mirr: fakeMirroring("vertical")}
	pb := NewPPUBus(cart)
	pb.Write(0x2000, 0x33)
	if got := pb.Read(0x2800); got != 0x33 {
		t.Fatalf("vertical mirroring: $2800 should alias $2000, got %#x", got)
	}
}
