package cpu

// resolveOperand fetches and consumes the operand bytes for mode (advancing
// PC past them) and returns the effective address plus any page-cross
// penalty. ModeAccumulator and ModeImplicit carry no operand and are never
// passed here.
func (c *CPU) resolveOperand(mode Mode) (addr uint16, extra int) {
	switch mode {
	case ModeImmediate:
		addr = c.PC
		c.PC++
	case ModeZeroPage:
		addr = uint16(c.read(c.PC))
		c.PC++
	case ModeZeroPageX:
		addr = uint16(c.read(c.PC) + c.X)
		c.PC++
	case ModeZeroPageY:
		addr = uint16(c.read(c.PC) + c.Y)
		c.PC++
	case ModeAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
	case ModeAbsoluteX:
		base := c.read16(c.PC)
		addr = base + uint16(c.X)
		c.PC += 2
		if pagesDiffer(base, addr) {
			extra = 1
		}
	case ModeAbsoluteY:
		base := c.read16(c.PC)
		addr = base + uint16(c.Y)
		c.PC += 2
		if pagesDiffer(base, addr) {
			extra = 1
		}
	case ModeIndirect:
		ptr := c.read16(c.PC)
		addr = c.read16Bugged(ptr)
		c.PC += 2
	case ModeIndirectX:
		zp := c.read(c.PC) + c.X
		addr = c.read16ZP(zp)
		c.PC++
	case ModeIndirectY:
		zp := c.read(c.PC)
		base := c.read16ZP(zp)
		addr = base + uint16(c.Y)
		c.PC++
		if pagesDiffer(base, addr) {
			extra = 1
		}
	case ModeRelative:
		offset := int8(c.read(c.PC))
		c.PC++
		addr = uint16(int32(c.PC) + int32(offset))
	default:
		panic("cpu: resolveOperand called with an addressless mode")
	}
	return addr, extra
}
