package ppu

// Tick advances the PPU by exactly one pixel clock (spec §4.4, §4.6): it
// performs whatever fetch/shift/evaluation/draw work belongs to the
// current (scanline, cycle), then advances the 262×341 timing grid.
func (p *PPU) Tick() {
	p.processCycle()

	p.Cycle++
	if p.Cycle >= CyclesPerScanline {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline >= ScanlinesPerFrame {
			p.Scanline = 0
			p.frame++
		}
		if p.Scanline == 0 && p.frame%2 == 1 && p.renderingEnabled() {
			p.Cycle = 1 // odd-frame skip: dot 0 of scanline 0 is dropped
		}
	}
}

func (p *PPU) processCycle() {
	switch {
	case p.Scanline <= 239:
		p.renderScanline(true)
	case p.Scanline == 241:
		if p.Cycle == 1 {
			setBit(&p.status, statusVblank, true)
			if bit(p.ctrl, ctrlNMIEnable) {
				p.nmi = true
			}
		}
	case p.Scanline == 261:
		if p.Cycle == 1 {
			const mask = 1<<statusVblank | 1<<statusSprite0Hit | 1<<statusSpriteOverflow
			p.status &^= mask
		}
		p.renderScanline(false)
	}
}

// renderScanline runs the shared background/sprite pipeline for one
// visible or pre-render scanline; draw selects whether pixels are
// actually composited into the framebuffer (pre-render only prefetches).
func (p *PPU) renderScanline(draw bool) {
	c := p.Cycle
	if c == 0 {
		return
	}

	if draw && c <= 256 {
		p.drawPixel(c - 1)
	}

	inFetchWindow := (c >= 1 && c <= 256) || (c >= 321 && c <= 336)
	inShiftWindow := (c >= 2 && c <= 257) || (c >= 322 && c <= 337)

	if inShiftWindow && p.renderingEnabled() {
		p.bgShiftLo <<= 1
		p.bgShiftHi <<= 1
		p.atShiftLo <<= 1
		p.atShiftHi <<= 1
		p.shiftSprites()
	}

	if inFetchWindow {
		switch c % 8 {
		case 1:
			p.fetchNametableByte()
		case 3:
			p.fetchAttributeByte()
		case 5:
			p.fetchPatternLow()
		case 7:
			p.fetchPatternHigh()
			if p.renderingEnabled() {
				p.incrementCoarseX()
			}
		case 0:
			p.reloadShiftRegisters()
		}
	}

	switch {
	case c == 256 && p.renderingEnabled():
		p.incrementY()
	case c == 257:
		if p.renderingEnabled() {
			p.v = p.v.withCoarseX(p.t.coarseX()).withNametableX(p.t.nametableX())
		}
		p.evaluateSprites()
	case c == 338 || c == 340:
		p.fetchNametableByte() // dummy reads, spec §4.6
		if c == 340 {
			p.fetchSpritePatterns()
		}
	case p.Scanline == 261 && c >= 280 && c <= 304 && p.renderingEnabled():
		p.v = p.v.withCoarseY(p.t.coarseY()).withFineY(p.t.fineY()).withNametableY(p.t.nametableY())
	}
}

// --- background fetch pipeline ---

func (p *PPU) fetchNametableByte() {
	addr := 0x2000 | uint16(p.v)&0x0FFF
	p.ntByte = p.Bus.Read(addr)
}

func (p *PPU) fetchAttributeByte() {
	addr := 0x23C0 | uint16(p.v)&0x0C00 | (uint16(p.v)>>4)&0x38 | (uint16(p.v)>>2)&0x07
	raw := p.Bus.Read(addr)
	shift := ((p.v.coarseY() & 2) << 1) | (p.v.coarseX() & 2)
	p.atByte = (raw >> shift) & 3
}

func (p *PPU) fetchPatternLow() {
	addr := p.bgPatternBase() + uint16(p.ntByte)*16 + p.v.fineY()
	p.bgLoByte = p.Bus.Read(addr)
}

func (p *PPU) fetchPatternHigh() {
	addr := p.bgPatternBase() + uint16(p.ntByte)*16 + p.v.fineY() + 8
	p.bgHiByte = p.Bus.Read(addr)
}

func (p *PPU) reloadShiftRegisters() {
	p.bgShiftLo = p.bgShiftLo&0xFF00 | uint16(p.bgLoByte)
	p.bgShiftHi = p.bgShiftHi&0xFF00 | uint16(p.bgHiByte)

	var at0, at1 uint16
	if p.atByte&1 != 0 {
		at0 = 0xFF
	}
	if p.atByte&2 != 0 {
		at1 = 0xFF
	}
	p.atShiftLo = p.atShiftLo&0xFF00 | at0
	p.atShiftHi = p.atShiftHi&0xFF00 | at1
}

func (p *PPU) incrementCoarseX() {
	if p.v.coarseX() == 31 {
		p.v = p.v.withCoarseX(0).flipNametableX()
	} else {
		p.v = p.v.withCoarseX(p.v.coarseX() + 1)
	}
}

func (p *PPU) incrementY() {
	if p.v.fineY() == 7 {
		p.v = p.v.withFineY(0)
		switch cy := p.v.coarseY(); {
		case cy == 29:
			p.v = p.v.withCoarseY(0).flipNametableY()
		case cy == 31:
			p.v = p.v.withCoarseY(0)
		default:
			p.v = p.v.withCoarseY(cy + 1)
		}
	} else {
		p.v = p.v.withFineY(p.v.fineY() + 1)
	}
}

// --- sprite evaluation (cycle 257) and pattern fetch (cycle 340) ---

func (p *PPU) evaluateSprites() {
	p.secondaryN = 0
	setBit(&p.status, statusSpriteOverflow, false)

	nextLine := p.Scanline + 1
	if p.Scanline == 261 {
		nextLine = 0
	}
	height := p.spriteHeight()

	for i := 0; i < 64; i++ {
		y := int(p.OAM[i*4])
		rel := nextLine - y
		if rel < 0 || rel >= height {
			continue
		}
		if p.secondaryN < 8 {
			p.secondary[p.secondaryN] = spriteEntry{
				y:        uint8(y),
				tile:     p.OAM[i*4+1],
				attr:     p.OAM[i*4+2],
				x:        p.OAM[i*4+3],
				oamIndex: i,
			}
			p.secondaryN++
		} else {
			setBit(&p.status, statusSpriteOverflow, true)
			break
		}
	}
}

func (p *PPU) fetchSpritePatterns() {
	nextLine := p.Scanline + 1
	if p.Scanline == 261 {
		nextLine = 0
	}
	height := p.spriteHeight()

	for i := 0; i < 8; i++ {
		if i >= p.secondaryN {
			p.spritePatLo[i] = 0
			p.spritePatHi[i] = 0
			p.spriteX[i] = 0xFF // inactive: never matches countdown==0 meaningfully
			continue
		}
		s := p.secondary[i]
		row := nextLine - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var base uint16
		var tile int
		if height == 16 {
			table := uint16(s.tile&1) * 0x1000
			tile = int(s.tile &^ 1)
			if row >= 8 {
				tile++
				row -= 8
			}
			base = table
		} else {
			base = p.spritePatternBase()
			tile = int(s.tile)
		}

		addr := base + uint16(tile)*16 + uint16(row)
		lo := p.Bus.Read(addr)
		hi := p.Bus.Read(addr + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatLo[i] = lo
		p.spritePatHi[i] = hi
		p.spriteX[i] = s.x
		p.spriteAttr[i] = s.attr
		p.spriteOAMIdx[i] = s.oamIndex
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) shiftSprites() {
	for i := 0; i < p.secondaryN; i++ {
		if p.spriteX[i] > 0 {
			p.spriteX[i]--
		} else {
			p.spritePatLo[i] <<= 1
			p.spritePatHi[i] <<= 1
		}
	}
}

// --- pixel composition ---

func (p *PPU) drawPixel(x int) {
	bgPixel, bgPalette := p.backgroundPixel()
	fgPixel, fgPalette, fgPriority, fgIsSprite0 := p.spritePixel(x)

	var colorAddr uint16
	switch {
	case bgPixel == 0 && fgPixel == 0:
		colorAddr = 0x3F00
	case bgPixel == 0:
		colorAddr = 0x3F10 + uint16(fgPalette)*4 + uint16(fgPixel)
	case fgPixel == 0:
		colorAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	case fgPriority:
		colorAddr = 0x3F10 + uint16(fgPalette)*4 + uint16(fgPixel)
	default:
		colorAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	}

	if bgPixel != 0 && fgPixel != 0 && fgIsSprite0 && p.showBg() && p.showSprites() && p.leftClipAllows(x) {
		setBit(&p.status, statusSprite0Hit, true)
	}

	idx := paletteIndex(colorAddr)
	rgb := systemPalette[p.palette[idx]&0x3F]
	if x >= 0 && x < 256 && p.Scanline >= 0 && p.Scanline < 240 {
		p.FrameBuffer[p.Scanline*256+x] = rgb
	}
}

// leftClipAllows reports whether x is outside the leftmost-8-pixel
// region clipped by the PPUMASK show-in-leftmost-8 switches.
func (p *PPU) leftClipAllows(x int) bool {
	if x >= 8 {
		return true
	}
	return bit(p.mask, maskShowBgLeft8) && bit(p.mask, maskShowSpritesLeft8)
}

func (p *PPU) backgroundPixel() (pixel, palette uint8) {
	if !p.showBg() {
		return 0, 0
	}
	mux := uint16(0x8000) >> p.fineX
	lo := uint8(0)
	if p.bgShiftLo&mux != 0 {
		lo = 1
	}
	hi := uint8(0)
	if p.bgShiftHi&mux != 0 {
		hi = 1
	}
	pixel = hi<<1 | lo

	alo := uint8(0)
	if p.atShiftLo&mux != 0 {
		alo = 1
	}
	ahi := uint8(0)
	if p.atShiftHi&mux != 0 {
		ahi = 1
	}
	palette = ahi<<1 | alo
	return pixel, palette
}

func (p *PPU) spritePixel(x int) (pixel, palette uint8, priority, isSprite0 bool) {
	if !p.showSprites() {
		return 0, 0, false, false
	}
	for i := 0; i < p.secondaryN; i++ {
		if p.spriteX[i] != 0 {
			continue
		}
		lo := (p.spritePatLo[i] >> 7) & 1
		hi := (p.spritePatHi[i] >> 7) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		return px, p.spriteAttr[i] & 0x03, p.spriteAttr[i]&0x20 == 0, p.spriteOAMIdx[i] == 0
	}
	return 0, 0, false, false
}
