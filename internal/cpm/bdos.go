// Package cpm implements a minimal CP/M BDOS stub (C6) and a test
// driver (C7) for running .COM-format test images against the z80
// core, in the style of the classic ZEXDOC/ZEXALL/CPUTEST harnesses.
package cpm

import (
	"strings"

	"github.com/go-z80/z80core/internal/z80"
)

// Console is the BDOS call 2/9 output sink (§4.6: "appended to a
// character sink provided by the driver").
type Console struct {
	out strings.Builder
}

func (c *Console) WriteByte(b byte) {
	c.out.WriteByte(b)
}

func (c *Console) String() string {
	return c.out.String()
}

// BDOS implements the C6 host trap hook. It matches the handful of
// calls the classic 8080/Z80 exerciser ROMs actually make: print
// character (C==2) and print '$'-terminated string (C==9) at PC ==
// 0x0005, and program termination at PC == 0x0000.
type BDOS struct {
	console *Console
}

func NewBDOS(console *Console) *BDOS {
	return &BDOS{console: console}
}

// Handle is a z80.TrapFunc (§4.6). It reads PC, C, E and DE straight
// off the CPU and walks memory through ReadMem for the call-9 string —
// the trap hook sees the same exported register surface any other host
// code would.
func (b *BDOS) Handle(cpu *z80.CPU) z80.TrapOutcome {
	switch cpu.PC {
	case 0x0000:
		return z80.TrapFinished
	case 0x0005:
		switch cpu.C {
		case 2:
			b.console.WriteByte(cpu.E)
		case 9:
			b.printString(cpu)
		}
		return z80.TrapImplicitReturn
	default:
		return z80.TrapContinue
	}
}

func (b *BDOS) printString(cpu *z80.CPU) {
	addr := cpu.DE()
	for {
		ch := cpu.ReadMem(addr)
		if ch == '$' {
			return
		}
		b.console.WriteByte(ch)
		addr++
	}
}
