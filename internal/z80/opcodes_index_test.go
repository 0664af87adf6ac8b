package z80

import "testing"

// BIT n,(IX+d) derives X/Y from the high byte of the effective
// address, not from the byte stored there — a documented Z80 quirk.
func TestBITIndexedXYComesFromAddressHighByte(t *testing.T) {
	r := newCPUTestRig()
	// LD IX,0x2085; BIT 0,(IX+0)
	r.resetAndLoad(0x0100, []byte{0xDD, 0x21, 0x85, 0x20, 0xDD, 0xCB, 0x00, 0x46})
	r.bus.Mem[0x2085] = 0x00 // value bits 3/5 both clear

	r.cpu.RunUntil(func(pc uint16, halted bool) bool { return pc == 0x0108 }, 20)

	// effective address high byte is 0x20: bit 5 set, bit 3 clear.
	if r.cpu.F&flagY == 0 {
		t.Error("expected F.Y set from address high byte 0x20")
	}
	if r.cpu.F&flagX != 0 {
		t.Error("expected F.X clear from address high byte 0x20")
	}
}

func TestDDCBRotateAlsoStoresToNamedRegister(t *testing.T) {
	r := newCPUTestRig()
	// LD IX,0x2000; RLC B via (IX+0)
	r.resetAndLoad(0x0100, []byte{0xDD, 0x21, 0x00, 0x20, 0xDD, 0xCB, 0x00, 0x00})
	r.bus.Mem[0x2000] = 0x81

	r.cpu.RunUntil(func(pc uint16, halted bool) bool { return pc == 0x0108 }, 20)

	requireEqualU8(t, "memory@IX", r.bus.Mem[0x2000], 0x03)
	requireEqualU8(t, "B", r.cpu.B, 0x03)
}

func TestIndexedIncDoesNotTouchPlainHL(t *testing.T) {
	r := newCPUTestRig()
	r.cpu.SetHL(0x4242)
	r.cpu.IX = 0x1000
	r.resetAndLoad(0x0100, []byte{0xDD, 0x23}) // INC IX
	r.cpu.SetHL(0x4242)
	r.cpu.IX = 0x1000

	r.cpu.Step()

	requireEqualU16(t, "IX", r.cpu.IX, 0x1001)
	requireEqualU16(t, "HL", r.cpu.HL(), 0x4242)
}
