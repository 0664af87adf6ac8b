package z80

// initEDOps builds the ED-prefixed opcode table (C4): block ops,
// 16-bit LD to/from memory, NEG, RETI/RETN, IM, I/O with (C), RLD/RRD.
// Opcodes with no defined ED effect fall through to opUnimplemented's
// ED-page sibling, which just burns 8 cycles — the Z80 has no
// undefined-instruction trap.
func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opEDUnimplemented
	}

	ioInRegs := []*byte{&c.B, &c.C, &c.D, &c.E, &c.H, &c.L, nil, &c.A}
	for i, dest := range ioInRegs {
		op := byte(0x40 + i*0x08)
		reg := dest
		c.edOps[op] = func(cpu *CPU) { cpu.inRegC(reg) }
	}
	ioOutRegs := []*byte{&c.B, &c.C, &c.D, &c.E, &c.H, &c.L, nil, &c.A}
	for i, src := range ioOutRegs {
		op := byte(0x41 + i*0x08)
		reg := src
		c.edOps[op] = func(cpu *CPU) { cpu.outRegC(reg) }
	}

	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		c.edOps[op] = (*CPU).opNEG
	}

	c.edOps[0x47] = func(cpu *CPU) { cpu.I = cpu.A; cpu.tick(9) }
	c.edOps[0x4F] = func(cpu *CPU) { cpu.R = cpu.A; cpu.tick(9) }
	c.edOps[0x57] = func(cpu *CPU) { cpu.A = cpu.I; cpu.updateLDAIRFlags(); cpu.tick(9) }
	c.edOps[0x5F] = func(cpu *CPU) { cpu.A = cpu.R; cpu.updateLDAIRFlags(); cpu.tick(9) }

	c.edOps[0x46] = func(cpu *CPU) { cpu.IM = 0; cpu.tick(8) }
	c.edOps[0x56] = func(cpu *CPU) { cpu.IM = 1; cpu.tick(8) }
	c.edOps[0x5E] = func(cpu *CPU) { cpu.IM = 2; cpu.tick(8) }
	c.edOps[0x66] = c.edOps[0x46]
	c.edOps[0x6E] = c.edOps[0x46]
	c.edOps[0x76] = c.edOps[0x56]
	c.edOps[0x7E] = c.edOps[0x5E]

	for _, op := range []byte{0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D} {
		c.edOps[op] = (*CPU).opRETN
	}
	c.edOps[0x4D] = (*CPU).opRETI

	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xBB] = (*CPU).opOTDR

	c.edOps[0x43] = func(cpu *CPU) { cpu.edLDNNReg16(cpu.BC()) }
	c.edOps[0x4B] = func(cpu *CPU) { cpu.SetBC(cpu.edLDReg16NN()) }
	c.edOps[0x53] = func(cpu *CPU) { cpu.edLDNNReg16(cpu.DE()) }
	c.edOps[0x5B] = func(cpu *CPU) { cpu.SetDE(cpu.edLDReg16NN()) }
	c.edOps[0x63] = func(cpu *CPU) { cpu.edLDNNReg16(cpu.HL()) }
	c.edOps[0x6B] = func(cpu *CPU) { cpu.SetHL(cpu.edLDReg16NN()) }
	c.edOps[0x73] = func(cpu *CPU) { cpu.edLDNNReg16(cpu.SP) }
	c.edOps[0x7B] = func(cpu *CPU) { cpu.SP = cpu.edLDReg16NN() }

	c.edOps[0x4A] = func(cpu *CPU) { cpu.adcHL(cpu.BC()); cpu.tick(15) }
	c.edOps[0x5A] = func(cpu *CPU) { cpu.adcHL(cpu.DE()); cpu.tick(15) }
	c.edOps[0x6A] = func(cpu *CPU) { cpu.adcHL(cpu.HL()); cpu.tick(15) }
	c.edOps[0x7A] = func(cpu *CPU) { cpu.adcHL(cpu.SP); cpu.tick(15) }
	c.edOps[0x42] = func(cpu *CPU) { cpu.sbcHL(cpu.BC()); cpu.tick(15) }
	c.edOps[0x52] = func(cpu *CPU) { cpu.sbcHL(cpu.DE()); cpu.tick(15) }
	c.edOps[0x62] = func(cpu *CPU) { cpu.sbcHL(cpu.HL()); cpu.tick(15) }
	c.edOps[0x72] = func(cpu *CPU) { cpu.sbcHL(cpu.SP); cpu.tick(15) }
}

func (c *CPU) opEDUnimplemented() { c.tick(8) }

func (c *CPU) inRegC(dest *byte) {
	value := c.in(c.BC())
	if dest != nil {
		*dest = value
	}
	c.updateInFlags(value)
	c.tick(12)
}

func (c *CPU) outRegC(src *byte) {
	value := byte(0)
	if src != nil {
		value = *src
	}
	c.out(c.BC(), value)
	c.tick(12)
}

func (c *CPU) opRETN() {
	c.PC = c.popWord()
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) opRETI() {
	c.PC = c.popWord()
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) opRRD() {
	addr := c.HL()
	value := c.read(addr)
	c.write(addr, (value>>4)|(c.A<<4))
	c.A = (c.A & 0xF0) | (value & 0x0F)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *CPU) opRLD() {
	addr := c.HL()
	value := c.read(addr)
	c.write(addr, (value<<4)|(c.A&0x0F))
	c.A = (c.A & 0xF0) | (value >> 4)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

// opLDI/opLDD implement LDI/LDD (§4.3 block instructions); opLDIR/
// opLDDR repeat while BC != 0.
func (c *CPU) opLDI() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.blockTransferFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opLDIR() {
	c.opLDI()
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opLDD() {
	value := c.read(c.HL())
	c.write(c.DE(), value)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.blockTransferFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opLDDR() {
	c.opLDD()
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opCPI() {
	value := c.read(c.HL())
	c.SetHL(c.HL() + 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.blockCompareFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opCPIR() {
	c.opCPI()
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opCPD() {
	value := c.read(c.HL())
	c.SetHL(c.HL() - 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.blockCompareFlags(value, bc)
	c.tick(16)
}

func (c *CPU) opCPDR() {
	c.opCPD()
	if c.BC() != 0 && !c.Flag(flagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opINI() {
	value := c.in(c.BC())
	c.write(c.HL(), value)
	c.B--
	c.SetHL(c.HL() + 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opINIR() {
	c.opINI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opIND() {
	value := c.in(c.BC())
	c.write(c.HL(), value)
	c.B--
	c.SetHL(c.HL() - 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opINDR() {
	c.opIND()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTI() {
	value := c.read(c.HL())
	c.B--
	c.out(c.BC(), value)
	c.SetHL(c.HL() + 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opOTIR() {
	c.opOUTI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTD() {
	value := c.read(c.HL())
	c.B--
	c.out(c.BC(), value)
	c.SetHL(c.HL() - 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opOTDR() {
	c.opOUTD()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) edLDNNReg16(value uint16) {
	addr := c.fetchWord()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) edLDReg16NN() uint16 {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.WZ = addr + 1
	c.tick(20)
	return uint16(high)<<8 | uint16(low)
}
