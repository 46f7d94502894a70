package cpu6502

import "fmt"

// Disassemble formats the instruction at c.PC in nestest.log style:
// mnemonic plus operand text annotated with the resolved memory value
// (` = XX`) and, for register-indexed modes, the effective address
// (` @ XXXX = XX`) — spec §4.2's byte-for-byte compare-mode format. It
// never mutates CPU state or consumes bus cycles; all reads peek through
// the bus at addresses computed from the CPU's current X/Y/PC.
func Disassemble(c *CPU) (text string, length int) {
	op := opcodeTable[c.Bus.Read(c.PC)]
	length = instrLength(op.mode)
	return op.name + formatOperand(c, op), length
}

func instrLength(mode Mode) int {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 1
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeIndirectX, ModeIndirectY, ModeRelative:
		return 2
	default:
		return 3
	}
}

func formatOperand(c *CPU, op opcode) string {
	pc := c.PC
	b1 := c.Bus.Read(pc + 1)
	b2 := c.Bus.Read(pc + 2)
	word := uint16(b2)<<8 | uint16(b1)

	switch op.mode {
	case ModeImplied:
		return ""
	case ModeAccumulator:
		return " A"
	case ModeImmediate:
		return fmt.Sprintf(" #$%02X", b1)
	case ModeZeroPage:
		return fmt.Sprintf(" $%02X = %02X", b1, c.Bus.Read(uint16(b1)))
	case ModeZeroPageX:
		addr := uint16(b1 + c.X)
		return fmt.Sprintf(" $%02X,X @ %02X = %02X", b1, addr, c.Bus.Read(addr))
	case ModeZeroPageY:
		addr := uint16(b1 + c.Y)
		return fmt.Sprintf(" $%02X,Y @ %02X = %02X", b1, addr, c.Bus.Read(addr))
	case ModeAbsolute:
		if op.name == "JMP" || op.name == "JSR" {
			return fmt.Sprintf(" $%04X", word)
		}
		return fmt.Sprintf(" $%04X = %02X", word, c.Bus.Read(word))
	case ModeAbsoluteX:
		addr := word + uint16(c.X)
		return fmt.Sprintf(" $%04X,X @ %04X = %02X", word, addr, c.Bus.Read(addr))
	case ModeAbsoluteY:
		addr := word + uint16(c.Y)
		return fmt.Sprintf(" $%04X,Y @ %04X = %02X", word, addr, c.Bus.Read(addr))
	case ModeIndirect:
		return fmt.Sprintf(" ($%04X)", word)
	case ModeIndirectX:
		zp := b1 + c.X
		addr := uint16(c.Bus.Read(uint16(zp))) | uint16(c.Bus.Read(uint16(zp+1)))<<8
		return fmt.Sprintf(" ($%02X,X) @ %04X = %02X", b1, addr, c.Bus.Read(addr))
	case ModeIndirectY:
		base := uint16(c.Bus.Read(uint16(b1))) | uint16(c.Bus.Read(uint16(b1+1)))<<8
		addr := base + uint16(c.Y)
		return fmt.Sprintf(" ($%02X),Y = %04X @ %04X = %02X", b1, base, addr, c.Bus.Read(addr))
	case ModeRelative:
		target := uint16(int32(pc) + 2 + int32(int8(b1)))
		return fmt.Sprintf(" $%04X", target)
	default:
		return ""
	}
}

// Trace renders one nestest.log-format line for the instruction about to
// execute. ppuLine/ppuDot are the current graphics-bus position, included
// verbatim in the PPU:line,dot field.
func Trace(c *CPU, ppuLine, ppuDot int) string {
	text, length := Disassemble(c)

	var raw string
	for i := 0; i < length; i++ {
		raw += fmt.Sprintf("%02X ", c.Bus.Read(c.PC+uint16(i)))
	}

	return fmt.Sprintf("%04X  %-9s%-32sA:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		c.PC, raw, text, c.A, c.X, c.Y, uint8(c.P), c.SP, ppuLine, ppuDot, c.Cycles)
}
