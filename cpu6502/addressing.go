package cpu6502

// Mode identifies one of the 6502's addressing modes. Grouping exec
// functions by operation (rather than one function per opcode x mode
// combination, as the teacher's flat table does) keeps the opcode table
// small; the illegal opcodes (SLO = ASL + ORA, etc.) are separate exec
// functions that resolve their address once through the same modes.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// resolve consumes the operand bytes for mode and returns the effective
// address together with whether resolving it crossed a page boundary
// (several opcodes charge one extra cycle in that case).
func (c *CPU) resolve(mode Mode) (addr uint16, crossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false

	case ModeImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ModeZeroPage:
		addr = uint16(c.fetch())
		return addr, false

	case ModeZeroPageX:
		addr = uint16(uint8(c.fetch() + c.X))
		return addr, false

	case ModeZeroPageY:
		addr = uint16(uint8(c.fetch() + c.Y))
		return addr, false

	case ModeAbsolute:
		lo := c.fetch()
		hi := c.fetch()
		return uint16(hi)<<8 | uint16(lo), false

	case ModeAbsoluteX:
		lo := c.fetch()
		hi := c.fetch()
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.X)
		return addr, pageCrossed(base, addr)

	case ModeAbsoluteY:
		lo := c.fetch()
		hi := c.fetch()
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.Y)
		return addr, pageCrossed(base, addr)

	case ModeIndirect:
		lo := c.fetch()
		hi := c.fetch()
		ptr := uint16(hi)<<8 | uint16(lo)
		return c.read16bug(ptr), false

	case ModeIndirectX:
		zp := c.fetch() + c.X
		addr = uint16(c.read(uint16(zp))) | uint16(c.read(uint16(zp+1)))<<8
		return addr, false

	case ModeIndirectY:
		zp := c.fetch()
		base := uint16(c.read(uint16(zp))) | uint16(c.read(uint16(zp+1)))<<8
		addr = base + uint16(c.Y)
		return addr, pageCrossed(base, addr)

	case ModeRelative:
		offset := int8(c.fetch())
		addr = uint16(int32(c.PC) + int32(offset))
		return addr, pageCrossed(c.PC, addr)

	default:
		panic("cpu6502: unknown addressing mode")
	}
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}
