package z80

import "testing"

func TestLDIBlockTransfersAndDecrementsBC(t *testing.T) {
	r := newCPUTestRig()
	r.resetAndLoad(0x0100, []byte{0xED, 0xA0}) // LDI
	r.cpu.SetHL(0x2000)
	r.cpu.SetDE(0x3000)
	r.cpu.SetBC(0x0002)
	r.bus.Mem[0x2000] = 0x55

	r.cpu.Step()

	requireEqualU8(t, "(DE)", r.bus.Mem[0x3000], 0x55)
	requireEqualU16(t, "HL", r.cpu.HL(), 0x2001)
	requireEqualU16(t, "DE", r.cpu.DE(), 0x3001)
	requireEqualU16(t, "BC", r.cpu.BC(), 0x0001)
	if !r.cpu.Flag(flagPV) {
		t.Error("expected P/V set: BC != 0 after decrement")
	}
}

func TestLDIRRepeatsUntilBCIsZero(t *testing.T) {
	r := newCPUTestRig()
	r.resetAndLoad(0x0100, []byte{0xED, 0xB0}) // LDIR
	r.cpu.SetHL(0x2000)
	r.cpu.SetDE(0x3000)
	r.cpu.SetBC(0x0003)
	r.bus.Mem[0x2000] = 0x01
	r.bus.Mem[0x2001] = 0x02
	r.bus.Mem[0x2002] = 0x03

	r.cpu.RunUntil(func(pc uint16, halted bool) bool { return r.cpu.BC() == 0 }, 100)

	requireEqualU8(t, "(0x3000)", r.bus.Mem[0x3000], 0x01)
	requireEqualU8(t, "(0x3001)", r.bus.Mem[0x3001], 0x02)
	requireEqualU8(t, "(0x3002)", r.bus.Mem[0x3002], 0x03)
	requireEqualU16(t, "BC", r.cpu.BC(), 0x0000)
	if r.cpu.Flag(flagPV) {
		t.Error("expected P/V clear: BC == 0 after the final iteration")
	}
}

func TestCPIStopsOnMatchWithZeroSet(t *testing.T) {
	r := newCPUTestRig()
	r.resetAndLoad(0x0100, []byte{0xED, 0xB1}) // CPIR
	r.cpu.A = 0x42
	r.cpu.SetHL(0x2000)
	r.cpu.SetBC(0x0005)
	r.cpu.F |= flagC // C must survive CPI/CPIR untouched
	r.bus.Mem[0x2000] = 0x10
	r.bus.Mem[0x2001] = 0x42

	r.cpu.RunUntil(func(pc uint16, halted bool) bool { return r.cpu.Flag(flagZ) || r.cpu.BC() == 0 }, 100)

	requireEqualU16(t, "HL", r.cpu.HL(), 0x2002)
	requireEqualU16(t, "BC", r.cpu.BC(), 0x0003)
	if !r.cpu.Flag(flagZ) {
		t.Error("expected Z set on match")
	}
	requireEqualU8(t, "A", r.cpu.A, 0x42) // CPI never stores into A
	if !r.cpu.Flag(flagC) {
		t.Error("expected C unaffected by CPI/CPIR")
	}
}

func TestINIRReadsPortAndStopsOnZeroB(t *testing.T) {
	r := newCPUTestRig()
	r.resetAndLoad(0x0100, []byte{0xED, 0xB2}) // INIR
	r.cpu.B = 0x02
	r.cpu.C = 0x10
	r.cpu.SetHL(0x2000)
	r.bus.IO[r.cpu.BC()] = 0xAA

	r.cpu.RunUntil(func(pc uint16, halted bool) bool { return r.cpu.B == 0 }, 100)

	requireEqualU8(t, "B", r.cpu.B, 0x00)
	if !r.cpu.Flag(flagZ) {
		t.Error("expected Z set when B reaches zero")
	}
}
