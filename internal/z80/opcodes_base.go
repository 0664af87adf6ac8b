package z80

// initBaseOps builds the unprefixed opcode table (C4, "Unprefixed
// opcode space"). Most rows are generated by looping over opcode
// ranges and closing over the decoded register fields, following the
// regular x/y/z decomposition noted in spec §9 without making it
// explicit — the loop bounds do the same job.
func (c *CPU) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*CPU).opUnimplemented
	}

	c.baseOps[0x00] = (*CPU).opNOP
	c.baseOps[0x76] = (*CPU).opHALT

	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := opcode
		dest := byte((op >> 3) & 0x07)
		src := byte(op & 0x07)
		c.baseOps[op] = func(cpu *CPU) {
			cpu.opLDRegReg(dest, src)
		}
	}

	ldRegImmOpcodes := map[byte]byte{
		0x06: 0,
		0x0E: 1,
		0x16: 2,
		0x1E: 3,
		0x26: 4,
		0x2E: 5,
		0x36: 6,
		0x3E: 7,
	}
	for opcode, reg := range ldRegImmOpcodes {
		op := opcode
		dest := reg
		c.baseOps[op] = func(cpu *CPU) {
			cpu.opLDRegImm(dest)
		}
	}

	aluRanges := []struct {
		lo, hi byte
		op     aluOp
	}{
		{0x80, 0x87, aluAdd},
		{0x88, 0x8F, aluAdc},
		{0x90, 0x97, aluSub},
		{0x98, 0x9F, aluSbc},
		{0xA0, 0xA7, aluAnd},
		{0xA8, 0xAF, aluXor},
		{0xB0, 0xB7, aluOr},
		{0xB8, 0xBF, aluCp},
	}
	for _, r := range aluRanges {
		for opcode := int(r.lo); opcode <= int(r.hi); opcode++ {
			op := opcode
			alu := r.op
			src := byte(op & 0x07)
			c.baseOps[op] = func(cpu *CPU) {
				cpu.opALUReg(alu, src)
			}
		}
	}

	c.baseOps[0xC6] = (*CPU).opADDImm
	c.baseOps[0xCE] = (*CPU).opADCImm
	c.baseOps[0xD6] = (*CPU).opSUBImm
	c.baseOps[0xDE] = (*CPU).opSBCImm
	c.baseOps[0xE6] = (*CPU).opANDImm
	c.baseOps[0xEE] = (*CPU).opXORImm
	c.baseOps[0xF6] = (*CPU).opORImm
	c.baseOps[0xFE] = (*CPU).opCPImm

	c.baseOps[0x27] = (*CPU).opDAA
	c.baseOps[0x2F] = (*CPU).opCPL
	c.baseOps[0x37] = (*CPU).opSCF
	c.baseOps[0x3F] = (*CPU).opCCF

	c.baseOps[0x01] = (*CPU).opLDBCNN
	c.baseOps[0x11] = (*CPU).opLDDENN
	c.baseOps[0x21] = (*CPU).opLDHLImm
	c.baseOps[0x31] = (*CPU).opLDSPNN
	c.baseOps[0x09] = (*CPU).opADDHLBC
	c.baseOps[0x19] = (*CPU).opADDHLDE
	c.baseOps[0x29] = (*CPU).opADDHLHL
	c.baseOps[0x39] = (*CPU).opADDHLSP
	c.baseOps[0x03] = (*CPU).opINCBC
	c.baseOps[0x13] = (*CPU).opINCDE
	c.baseOps[0x23] = (*CPU).opINCHL
	c.baseOps[0x33] = (*CPU).opINCSP
	c.baseOps[0x0B] = (*CPU).opDECBC
	c.baseOps[0x1B] = (*CPU).opDECDE
	c.baseOps[0x2B] = (*CPU).opDECHL
	c.baseOps[0x3B] = (*CPU).opDECSP
	c.baseOps[0xC5] = (*CPU).opPUSHBC
	c.baseOps[0xD5] = (*CPU).opPUSHDE
	c.baseOps[0xE5] = (*CPU).opPUSHHL
	c.baseOps[0xF5] = (*CPU).opPUSHAF
	c.baseOps[0xC1] = (*CPU).opPOPBC
	c.baseOps[0xD1] = (*CPU).opPOPDE
	c.baseOps[0xE1] = (*CPU).opPOPHL
	c.baseOps[0xF1] = (*CPU).opPOPAF
	c.baseOps[0xC3] = (*CPU).opJPNN
	c.baseOps[0x18] = (*CPU).opJR
	c.baseOps[0x10] = (*CPU).opDJNZ
	c.baseOps[0xCD] = (*CPU).opCALLNN
	c.baseOps[0xC9] = (*CPU).opRET
	c.baseOps[0xE3] = (*CPU).opEXSPHL
	c.baseOps[0x08] = (*CPU).opEXAFOp
	c.baseOps[0xEB] = (*CPU).opEXDEHLOp
	c.baseOps[0xD9] = (*CPU).opEXXOp
	c.baseOps[0xE9] = (*CPU).opJPHL
	c.baseOps[0x22] = (*CPU).opLDNNHL
	c.baseOps[0x2A] = (*CPU).opLDHLNN
	c.baseOps[0x32] = (*CPU).opLDNNA
	c.baseOps[0x3A] = (*CPU).opLDANN
	c.baseOps[0x02] = (*CPU).opLDBCA
	c.baseOps[0x0A] = (*CPU).opLDABC
	c.baseOps[0x12] = (*CPU).opLDDEA
	c.baseOps[0x1A] = (*CPU).opLDADE
	c.baseOps[0xF9] = (*CPU).opLDSPHL
	c.baseOps[0xD3] = (*CPU).opOUTNA
	c.baseOps[0xDB] = (*CPU).opINAN
	c.baseOps[0x07] = (*CPU).opRLCA
	c.baseOps[0x0F] = (*CPU).opRRCA
	c.baseOps[0x17] = (*CPU).opRLA
	c.baseOps[0x1F] = (*CPU).opRRA
	c.baseOps[0xC7] = (*CPU).opRST00
	c.baseOps[0xCF] = (*CPU).opRST08
	c.baseOps[0xD7] = (*CPU).opRST10
	c.baseOps[0xDF] = (*CPU).opRST18
	c.baseOps[0xE7] = (*CPU).opRST20
	c.baseOps[0xEF] = (*CPU).opRST28
	c.baseOps[0xF7] = (*CPU).opRST30
	c.baseOps[0xFF] = (*CPU).opRST38
	c.baseOps[0x04] = (*CPU).opINCB
	c.baseOps[0x0C] = (*CPU).opINCC
	c.baseOps[0x14] = (*CPU).opINCD
	c.baseOps[0x1C] = (*CPU).opINCE
	c.baseOps[0x24] = (*CPU).opINCH
	c.baseOps[0x2C] = (*CPU).opINCL
	c.baseOps[0x34] = (*CPU).opINCHLMem
	c.baseOps[0x3C] = (*CPU).opINCA
	c.baseOps[0x05] = (*CPU).opDECB
	c.baseOps[0x0D] = (*CPU).opDECC
	c.baseOps[0x15] = (*CPU).opDECD
	c.baseOps[0x1D] = (*CPU).opDECE
	c.baseOps[0x25] = (*CPU).opDECH
	c.baseOps[0x2D] = (*CPU).opDECL
	c.baseOps[0x35] = (*CPU).opDECHLMem
	c.baseOps[0x3D] = (*CPU).opDECA
	c.baseOps[0xC2] = (*CPU).opJPNZ
	c.baseOps[0xCA] = (*CPU).opJPZ
	c.baseOps[0xD2] = (*CPU).opJPNC
	c.baseOps[0xDA] = (*CPU).opJPC
	c.baseOps[0xE2] = (*CPU).opJPPO
	c.baseOps[0xEA] = (*CPU).opJPPE
	c.baseOps[0xF2] = (*CPU).opJPNS
	c.baseOps[0xFA] = (*CPU).opJPS
	c.baseOps[0x20] = (*CPU).opJRNZ
	c.baseOps[0x28] = (*CPU).opJRZ
	c.baseOps[0x30] = (*CPU).opJRNC
	c.baseOps[0x38] = (*CPU).opJRC
	c.baseOps[0xC4] = (*CPU).opCALLNZ
	c.baseOps[0xCC] = (*CPU).opCALLZ
	c.baseOps[0xD4] = (*CPU).opCALLNC
	c.baseOps[0xDC] = (*CPU).opCALLC
	c.baseOps[0xE4] = (*CPU).opCALLPO
	c.baseOps[0xEC] = (*CPU).opCALLPE
	c.baseOps[0xF4] = (*CPU).opCALLNS
	c.baseOps[0xFC] = (*CPU).opCALLS
	c.baseOps[0xC0] = (*CPU).opRETNZ
	c.baseOps[0xC8] = (*CPU).opRETZ
	c.baseOps[0xD0] = (*CPU).opRETNC
	c.baseOps[0xD8] = (*CPU).opRETC
	c.baseOps[0xE0] = (*CPU).opRETPO
	c.baseOps[0xE8] = (*CPU).opRETPE
	c.baseOps[0xF0] = (*CPU).opRETNS
	c.baseOps[0xF8] = (*CPU).opRETS
	c.baseOps[0xCB] = (*CPU).opCBPrefix
	c.baseOps[0xDD] = (*CPU).opDDPrefix
	c.baseOps[0xFD] = (*CPU).opFDPrefix
	c.baseOps[0xED] = (*CPU).opEDPrefix
	c.baseOps[0xF3] = (*CPU).opDI
	c.baseOps[0xFB] = (*CPU).opEI
}

func (c *CPU) opUnimplemented() { c.tick(4) }

func (c *CPU) opNOP() { c.tick(4) }

func (c *CPU) opHALT() {
	c.Halted = true
	c.PC--
	c.tick(4)
}

func (c *CPU) opLDRegReg(dest, src byte) {
	value := c.readReg8(src)
	c.writeReg8(dest, value)
	if dest == 6 || src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opLDRegImm(dest byte) {
	value := c.fetchByte()
	c.writeReg8(dest, value)
	if dest == 6 {
		c.tick(10)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opALUReg(op aluOp, src byte) {
	value := c.readReg8(src)
	c.performALU(op, value)
	if src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opADDImm() { c.performALU(aluAdd, c.fetchByte()); c.tick(7) }
func (c *CPU) opADCImm() { c.performALU(aluAdc, c.fetchByte()); c.tick(7) }
func (c *CPU) opSUBImm() { c.performALU(aluSub, c.fetchByte()); c.tick(7) }
func (c *CPU) opSBCImm() { c.performALU(aluSbc, c.fetchByte()); c.tick(7) }
func (c *CPU) opANDImm() { c.performALU(aluAnd, c.fetchByte()); c.tick(7) }
func (c *CPU) opXORImm() { c.performALU(aluXor, c.fetchByte()); c.tick(7) }
func (c *CPU) opORImm()  { c.performALU(aluOr, c.fetchByte()); c.tick(7) }
func (c *CPU) opCPImm()  { c.performALU(aluCp, c.fetchByte()); c.tick(7) }

func (c *CPU) opLDBCNN() { c.SetBC(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDDENN() { c.SetDE(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDHLImm() { c.SetHL(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDSPNN() { c.SP = c.fetchWord(); c.tick(10) }

func (c *CPU) opADDHLBC() { c.addHL(c.BC()); c.tick(11) }
func (c *CPU) opADDHLDE() { c.addHL(c.DE()); c.tick(11) }
func (c *CPU) opADDHLHL() { c.addHL(c.HL()); c.tick(11) }
func (c *CPU) opADDHLSP() { c.addHL(c.SP); c.tick(11) }

func (c *CPU) opINCBC() { c.SetBC(c.BC() + 1); c.tick(6) }
func (c *CPU) opINCDE() { c.SetDE(c.DE() + 1); c.tick(6) }
func (c *CPU) opINCHL() { c.SetHL(c.HL() + 1); c.tick(6) }
func (c *CPU) opINCSP() { c.SP++; c.tick(6) }

func (c *CPU) opDECBC() { c.SetBC(c.BC() - 1); c.tick(6) }
func (c *CPU) opDECDE() { c.SetDE(c.DE() - 1); c.tick(6) }
func (c *CPU) opDECHL() { c.SetHL(c.HL() - 1); c.tick(6) }
func (c *CPU) opDECSP() { c.SP--; c.tick(6) }

func (c *CPU) opPUSHBC() { c.pushWord(c.BC()); c.tick(11) }
func (c *CPU) opPUSHDE() { c.pushWord(c.DE()); c.tick(11) }
func (c *CPU) opPUSHHL() { c.pushWord(c.HL()); c.tick(11) }
func (c *CPU) opPUSHAF() { c.pushWord(c.AF()); c.tick(11) }

func (c *CPU) opPOPBC() { c.SetBC(c.popWord()); c.tick(10) }
func (c *CPU) opPOPDE() { c.SetDE(c.popWord()); c.tick(10) }
func (c *CPU) opPOPHL() { c.SetHL(c.popWord()); c.tick(10) }
func (c *CPU) opPOPAF() { c.SetAF(c.popWord()); c.tick(10) }

func (c *CPU) opJPNN() { c.PC = c.fetchWord(); c.tick(10) }

func (c *CPU) opJR() {
	disp := int8(c.fetchByte())
	c.PC = uint16(int32(c.PC) + int32(disp))
	c.tick(12)
}

func (c *CPU) opDJNZ() {
	disp := int8(c.fetchByte())
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func (c *CPU) opCALLNN() {
	addr := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = addr
	c.tick(17)
}

func (c *CPU) opRET() { c.PC = c.popWord(); c.tick(10) }

func (c *CPU) opEXSPHL() {
	low := c.read(c.SP)
	high := c.read(c.SP + 1)
	memVal := uint16(high)<<8 | uint16(low)
	hl := c.HL()
	c.write(c.SP, byte(hl))
	c.write(c.SP+1, byte(hl>>8))
	c.SetHL(memVal)
	c.WZ = memVal
	c.tick(19)
}

func (c *CPU) opEXAFOp() { c.ExAF(); c.tick(4) }
func (c *CPU) opEXDEHLOp() { c.ExDEHL(); c.tick(4) }
func (c *CPU) opEXXOp() { c.Exx(); c.tick(4) }

func (c *CPU) opJPHL() { c.PC = c.HL(); c.WZ = c.PC; c.tick(4) }

func (c *CPU) opLDNNHL() {
	addr := c.fetchWord()
	value := c.HL()
	c.write(addr, byte(value))
	c.write(addr+1, byte(value>>8))
	c.WZ = addr + 1
	c.tick(16)
}

func (c *CPU) opLDHLNN() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	c.SetHL(uint16(high)<<8 | uint16(low))
	c.WZ = addr + 1
	c.tick(16)
}

func (c *CPU) opLDNNA() {
	addr := c.fetchWord()
	c.write(addr, c.A)
	c.WZ = addr
	c.tick(13)
}

func (c *CPU) opLDANN() {
	addr := c.fetchWord()
	c.A = c.read(addr)
	c.WZ = addr
	c.tick(13)
}

func (c *CPU) opLDBCA() { c.write(c.BC(), c.A); c.tick(7) }
func (c *CPU) opLDABC() { c.A = c.read(c.BC()); c.tick(7) }
func (c *CPU) opLDDEA() { c.write(c.DE(), c.A); c.tick(7) }
func (c *CPU) opLDADE() { c.A = c.read(c.DE()); c.tick(7) }
func (c *CPU) opLDSPHL() { c.SP = c.HL(); c.tick(6) }

func (c *CPU) opOUTNA() {
	port := uint16(c.A)<<8 | uint16(c.fetchByte())
	c.out(port, c.A)
	c.tick(11)
}

// opINAN implements IN A,(n) (opcode 0xDB): unlike the ED-page IN r,(C)
// forms, this one affects no flags.
func (c *CPU) opINAN() {
	port := uint16(c.A)<<8 | uint16(c.fetchByte())
	c.A = c.in(port)
	c.tick(11)
}

func (c *CPU) opRLCA() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | c.A>>7
	c.updateRotateFlags(carry)
	c.tick(4)
}

func (c *CPU) opRRCA() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | c.A<<7
	c.updateRotateFlags(carry)
	c.tick(4)
}

func (c *CPU) opRLA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x80 != 0
	c.A = c.A << 1
	if carryIn {
		c.A |= 0x01
	}
	c.updateRotateFlags(carryOut)
	c.tick(4)
}

func (c *CPU) opRRA() {
	carryIn := c.Flag(flagC)
	carryOut := c.A&0x01 != 0
	c.A = c.A >> 1
	if carryIn {
		c.A |= 0x80
	}
	c.updateRotateFlags(carryOut)
	c.tick(4)
}

func (c *CPU) opRST00() { c.opRST(0x00) }
func (c *CPU) opRST08() { c.opRST(0x08) }
func (c *CPU) opRST10() { c.opRST(0x10) }
func (c *CPU) opRST18() { c.opRST(0x18) }
func (c *CPU) opRST20() { c.opRST(0x20) }
func (c *CPU) opRST28() { c.opRST(0x28) }
func (c *CPU) opRST30() { c.opRST(0x30) }
func (c *CPU) opRST38() { c.opRST(0x38) }

func (c *CPU) opRST(vector uint16) {
	c.pushWord(c.PC)
	c.PC = vector
	c.WZ = vector
	c.tick(11)
}

func (c *CPU) opCBPrefix() {
	opcode := c.fetchOpcode()
	c.cbOps[opcode](c)
}

func (c *CPU) opDDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefixMode
	c.prefixMode = prefixDD
	c.prefixOpcode = opcode
	c.ddOps[opcode](c)
	c.prefixMode = prev
}

func (c *CPU) opFDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefixMode
	c.prefixMode = prefixFD
	c.prefixOpcode = opcode
	c.fdOps[opcode](c)
	c.prefixMode = prev
}

func (c *CPU) opEDPrefix() {
	opcode := c.fetchOpcode()
	c.edOps[opcode](c)
}

func (c *CPU) opINCB() { c.B = c.inc8(c.B); c.tick(4) }
func (c *CPU) opINCC() { c.C = c.inc8(c.C); c.tick(4) }
func (c *CPU) opINCD() { c.D = c.inc8(c.D); c.tick(4) }
func (c *CPU) opINCE() { c.E = c.inc8(c.E); c.tick(4) }
func (c *CPU) opINCH() { c.writeReg8(4, c.inc8(c.readReg8(4))); c.tick(4) }
func (c *CPU) opINCL() { c.writeReg8(5, c.inc8(c.readReg8(5))); c.tick(4) }
func (c *CPU) opINCA() { c.A = c.inc8(c.A); c.tick(4) }

func (c *CPU) opINCHLMem() {
	addr := c.HL()
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(11)
}

func (c *CPU) opDECB() { c.B = c.dec8(c.B); c.tick(4) }
func (c *CPU) opDECC() { c.C = c.dec8(c.C); c.tick(4) }
func (c *CPU) opDECD() { c.D = c.dec8(c.D); c.tick(4) }
func (c *CPU) opDECE() { c.E = c.dec8(c.E); c.tick(4) }
func (c *CPU) opDECH() { c.writeReg8(4, c.dec8(c.readReg8(4))); c.tick(4) }
func (c *CPU) opDECL() { c.writeReg8(5, c.dec8(c.readReg8(5))); c.tick(4) }
func (c *CPU) opDECA() { c.A = c.dec8(c.A); c.tick(4) }

func (c *CPU) opDECHLMem() {
	addr := c.HL()
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(11)
}

func (c *CPU) opDI() {
	c.IFF1 = false
	c.IFF2 = false
	c.iffDelay = 0
	c.tick(4)
}

func (c *CPU) opEI() {
	c.iffDelay = 2
	c.tick(4)
}

func (c *CPU) opJPNZ() { c.jpCond(!c.Flag(flagZ)) }
func (c *CPU) opJPZ()  { c.jpCond(c.Flag(flagZ)) }
func (c *CPU) opJPNC() { c.jpCond(!c.Flag(flagC)) }
func (c *CPU) opJPC()  { c.jpCond(c.Flag(flagC)) }
func (c *CPU) opJPPO() { c.jpCond(!c.Flag(flagPV)) }
func (c *CPU) opJPPE() { c.jpCond(c.Flag(flagPV)) }
func (c *CPU) opJPNS() { c.jpCond(!c.Flag(flagS)) }
func (c *CPU) opJPS()  { c.jpCond(c.Flag(flagS)) }

func (c *CPU) opJRNZ() { c.jrCond(!c.Flag(flagZ)) }
func (c *CPU) opJRZ()  { c.jrCond(c.Flag(flagZ)) }
func (c *CPU) opJRNC() { c.jrCond(!c.Flag(flagC)) }
func (c *CPU) opJRC()  { c.jrCond(c.Flag(flagC)) }

func (c *CPU) opCALLNZ() { c.callCond(!c.Flag(flagZ)) }
func (c *CPU) opCALLZ()  { c.callCond(c.Flag(flagZ)) }
func (c *CPU) opCALLNC() { c.callCond(!c.Flag(flagC)) }
func (c *CPU) opCALLC()  { c.callCond(c.Flag(flagC)) }
func (c *CPU) opCALLPO() { c.callCond(!c.Flag(flagPV)) }
func (c *CPU) opCALLPE() { c.callCond(c.Flag(flagPV)) }
func (c *CPU) opCALLNS() { c.callCond(!c.Flag(flagS)) }
func (c *CPU) opCALLS()  { c.callCond(c.Flag(flagS)) }

func (c *CPU) opRETNZ() { c.retCond(!c.Flag(flagZ)) }
func (c *CPU) opRETZ()  { c.retCond(c.Flag(flagZ)) }
func (c *CPU) opRETNC() { c.retCond(!c.Flag(flagC)) }
func (c *CPU) opRETC()  { c.retCond(c.Flag(flagC)) }
func (c *CPU) opRETPO() { c.retCond(!c.Flag(flagPV)) }
func (c *CPU) opRETPE() { c.retCond(c.Flag(flagPV)) }
func (c *CPU) opRETNS() { c.retCond(!c.Flag(flagS)) }
func (c *CPU) opRETS()  { c.retCond(c.Flag(flagS)) }

func (c *CPU) jpCond(cond bool) {
	addr := c.fetchWord()
	c.WZ = addr
	if cond {
		c.PC = addr
	}
	c.tick(10)
}

func (c *CPU) jrCond(cond bool) {
	disp := int8(c.fetchByte())
	if cond {
		c.PC = uint16(int32(c.PC) + int32(disp))
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func (c *CPU) callCond(cond bool) {
	addr := c.fetchWord()
	c.WZ = addr
	if cond {
		c.pushWord(c.PC)
		c.PC = addr
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func (c *CPU) retCond(cond bool) {
	if cond {
		c.PC = c.popWord()
		c.tick(11)
	} else {
		c.tick(5)
	}
}
