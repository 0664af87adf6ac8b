package z80

// initDDOps and initFDOps build the DD/FD-prefixed opcode tables (C4):
// the unprefixed table's H/L/HL usages rewritten to IXH/IXL/(IX+d) (or
// IYH/IYL/(IY+d) under FD). Both tables are generated by the same
// shared handlers, parameterized on a pointer to the live index
// register, rather than duplicating each handler body per register —
// the "small transient selector" spec §9 recommends instead of a
// second full opcode table.

func (c *CPU) initDDOps() {
	c.initIndexOps(&c.ddOps, &c.IX)
}

func (c *CPU) initFDOps() {
	c.initIndexOps(&c.fdOps, &c.IY)
}

func (c *CPU) initIndexOps(table *[256]func(*CPU), idx *uint16) {
	for i := range table {
		table[i] = func(cpu *CPU) {
			cpu.tick(4)
			cpu.baseOps[cpu.prefixOpcode](cpu)
		}
	}

	table[0x21] = func(cpu *CPU) { *idx = cpu.fetchWord(); cpu.tick(14) }
	table[0x22] = func(cpu *CPU) {
		addr := cpu.fetchWord()
		cpu.write(addr, byte(*idx))
		cpu.write(addr+1, byte(*idx>>8))
		cpu.WZ = addr + 1
		cpu.tick(20)
	}
	table[0x2A] = func(cpu *CPU) {
		addr := cpu.fetchWord()
		low := cpu.read(addr)
		high := cpu.read(addr + 1)
		*idx = uint16(high)<<8 | uint16(low)
		cpu.WZ = addr + 1
		cpu.tick(20)
	}
	table[0xE5] = func(cpu *CPU) { cpu.pushWord(*idx); cpu.tick(15) }
	table[0xE1] = func(cpu *CPU) { *idx = cpu.popWord(); cpu.tick(14) }
	table[0xF9] = func(cpu *CPU) { cpu.SP = *idx; cpu.tick(10) }
	table[0x36] = func(cpu *CPU) {
		disp := int8(cpu.fetchByte())
		value := cpu.fetchByte()
		cpu.write(uint16(int32(*idx)+int32(disp)), value)
		cpu.tick(19)
	}
	table[0x34] = func(cpu *CPU) {
		addr := uint16(int32(*idx) + int32(int8(cpu.fetchByte())))
		cpu.write(addr, cpu.inc8(cpu.read(addr)))
		cpu.tick(23)
	}
	table[0x35] = func(cpu *CPU) {
		addr := uint16(int32(*idx) + int32(int8(cpu.fetchByte())))
		cpu.write(addr, cpu.dec8(cpu.read(addr)))
		cpu.tick(23)
	}
	table[0xE9] = func(cpu *CPU) { cpu.PC = *idx; cpu.WZ = cpu.PC; cpu.tick(8) }
	table[0xE3] = func(cpu *CPU) {
		low := cpu.read(cpu.SP)
		high := cpu.read(cpu.SP + 1)
		memVal := uint16(high)<<8 | uint16(low)
		cpu.write(cpu.SP, byte(*idx))
		cpu.write(cpu.SP+1, byte(*idx>>8))
		*idx = memVal
		cpu.WZ = memVal
		cpu.tick(23)
	}
	table[0x09] = func(cpu *CPU) { *idx = cpu.add16Into(idx, cpu.BC()); cpu.tick(15) }
	table[0x19] = func(cpu *CPU) { *idx = cpu.add16Into(idx, cpu.DE()); cpu.tick(15) }
	table[0x29] = func(cpu *CPU) { *idx = cpu.add16Into(idx, *idx); cpu.tick(15) }
	table[0x39] = func(cpu *CPU) { *idx = cpu.add16Into(idx, cpu.SP); cpu.tick(15) }
	table[0x23] = func(cpu *CPU) { *idx++; cpu.tick(10) }
	table[0x2B] = func(cpu *CPU) { *idx--; cpu.tick(10) }
	table[0xCB] = func(cpu *CPU) {
		disp := int8(cpu.fetchByte())
		opcode := cpu.fetchOpcode()
		addr := uint16(int32(*idx) + int32(disp))
		cpu.cbOpsIndexed(addr, opcode)
	}

	for opcode := byte(0x46); opcode <= 0x7E; opcode += 0x08 {
		if opcode == 0x76 {
			continue
		}
		dest := (opcode >> 3) & 0x07
		table[opcode] = func(cpu *CPU) {
			addr := uint16(int32(*idx) + int32(int8(cpu.fetchByte())))
			cpu.writeReg8Plain(dest, cpu.read(addr))
			cpu.tick(19)
		}
	}
	for opcode := byte(0x70); opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		src := opcode & 0x07
		table[opcode] = func(cpu *CPU) {
			addr := uint16(int32(*idx) + int32(int8(cpu.fetchByte())))
			cpu.write(addr, cpu.readReg8Plain(src))
			cpu.tick(19)
		}
	}
	for opcode := byte(0x86); opcode <= 0xBE; opcode += 0x08 {
		op := aluOp((opcode >> 3) & 0x07)
		table[opcode] = func(cpu *CPU) {
			addr := uint16(int32(*idx) + int32(int8(cpu.fetchByte())))
			cpu.performALU(op, cpu.read(addr))
			cpu.tick(19)
		}
	}
}

// add16Into runs ADD16 against idx (IX or IY) rather than HL — the
// flag semantics are identical, only the accumulating register
// differs, so this shares add16 instead of duplicating addHL/addIX/addIY.
func (c *CPU) add16Into(idx *uint16, value uint16) uint16 {
	return c.add16(*idx, value)
}

// cbOpsIndexed implements DDCB/FDCB (C4): operand order is
// (prefix)(CB)(d)(opcode). Rotate/shift/RES/SET forms operate on
// (IX+d)/(IY+d) AND also store the result into the opcode's named
// register (the documented side effect several ZEXDOC CRCs depend on).
// BIT forms never store, and their X/Y come from the high byte of the
// effective address, not from the byte read at it.
func (c *CPU) cbOpsIndexed(addr uint16, opcode byte) {
	switch opcode >> 6 {
	case 0:
		c.cbIndexedRotateShift(addr, opcode)
	case 1:
		c.opCBBITIndexed(addr, opcode)
	case 2:
		c.cbIndexedRES(addr, opcode)
	default:
		c.cbIndexedSET(addr, opcode)
	}
}

func (c *CPU) cbIndexedRotateShift(addr uint16, opcode byte) {
	group := (opcode >> 3) & 0x07
	reg := opcode & 0x07
	value := c.read(addr)
	res, carry := c.cbRotateShift(group, value)

	c.F &^= flagN | flagH | flagC
	if carry {
		c.F |= flagC
	}
	c.setSZPFlags(res)

	c.write(addr, res)
	if reg != 6 {
		c.writeReg8Plain(reg, res)
	}
	c.tick(23)
}

// opCBBITIndexed implements BIT n,(IX+d)/(IY+d) (§4.3 BIT n,v): X,Y
// come from the high byte of the effective address, not from the byte
// read there — a documented Z80 quirk required for ZEXDOC.
func (c *CPU) opCBBITIndexed(addr uint16, opcode byte) {
	value := c.read(addr)
	bit := (opcode >> 3) & 0x07
	mask := byte(1 << bit)
	c.F &^= flagN | flagZ | flagS | flagPV | flagX | flagY
	c.F |= flagH
	if value&mask == 0 {
		c.F |= flagZ | flagPV
	}
	if bit == 7 && value&mask != 0 {
		c.F |= flagS
	}
	c.F |= byte(addr>>8) & (flagX | flagY)
	c.tick(20)
}

func (c *CPU) cbIndexedRES(addr uint16, opcode byte) {
	bit := (opcode >> 3) & 0x07
	res := c.read(addr) &^ (1 << bit)
	c.write(addr, res)
	if reg := opcode & 0x07; reg != 6 {
		c.writeReg8Plain(reg, res)
	}
	c.tick(23)
}

func (c *CPU) cbIndexedSET(addr uint16, opcode byte) {
	bit := (opcode >> 3) & 0x07
	res := c.read(addr) | (1 << bit)
	c.write(addr, res)
	if reg := opcode & 0x07; reg != 6 {
		c.writeReg8Plain(reg, res)
	}
	c.tick(23)
}
