package cpm

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/go-z80/z80core/internal/z80"
)

// loadAddr is where CP/M places a .COM image's first byte (§4.7, §6).
const loadAddr = 0x0100

// maxImageSize is the largest a flat .COM image can be before it would
// run into the BDOS/driver's own footprint (§6: "up to 65,280 bytes").
const maxImageSize = 0x10000 - loadAddr

// defaultStackPointer is the "safe high address" §4.7 calls for.
const defaultStackPointer = 0xF000

// defaultStepBudget bounds a run when the caller doesn't set one —
// large enough for CPUTEST/ZEXDOC-scale exercisers, small enough that
// a hung program still returns promptly.
const defaultStepBudget = 200_000_000

// Result is what Driver.Run reports back to the caller (§6's CLI
// "exits 0 on normal termination... or 1 on step-budget exhaustion").
type Result struct {
	Output     string
	StopReason z80.StopReason
	Cycles     uint64
}

// Driver is the C7 test driver: it loads a .COM image, wires up the
// BDOS trap hook, and runs the core to completion.
type Driver struct {
	fs afero.Fs

	StepBudget int
}

// NewDriver builds a Driver that loads images through fs. Callers pass
// afero.NewOsFs() for a real filesystem or afero.NewMemMapFs() in
// tests, matching §4.7's image-loading concern without hardcoding a
// single source of bytes.
func NewDriver(fs afero.Fs) *Driver {
	return &Driver{fs: fs, StepBudget: defaultStepBudget}
}

// LoadImage reads path through the Driver's afero.Fs and validates its
// size against the .COM format's address-space ceiling (§6).
func (d *Driver) LoadImage(path string) ([]byte, error) {
	image, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cpm: read image %q", path)
	}
	if len(image) > maxImageSize {
		return nil, errors.Errorf("cpm: image %q is %d bytes, exceeds the %d-byte .COM ceiling", path, len(image), maxImageSize)
	}
	return image, nil
}

// Run loads image at 0x0100 (§4.7), zero-fills the 0x0000–0x00FF BDOS
// page except for a RET at 0x0005 and a HALT at 0x0000, and runs the
// core until it reaches PC==0x0000, executes HALT, or the step budget
// is exhausted.
func (d *Driver) Run(image []byte) Result {
	bus := z80.NewFlatBus()
	bus.LoadAt(loadAddr, image)
	bus.Mem[0x0005] = 0xC9 // RET, in case the hook is ever bypassed
	bus.Mem[0x0000] = 0x76 // HALT, fail-safe terminator

	console := &Console{}
	cpu := z80.NewCPU(bus)
	cpu.SetTrapHandler(NewBDOS(console).Handle)
	cpu.SP = defaultStackPointer
	cpu.PC = loadAddr

	reason := cpu.RunUntil(func(pc uint16, halted bool) bool {
		return pc == 0x0000 || halted
	}, d.budget())

	return Result{
		Output:     console.String(),
		StopReason: reason,
		Cycles:     cpu.Cycles,
	}
}

// RunFile is LoadImage followed by Run.
func (d *Driver) RunFile(path string) (Result, error) {
	image, err := d.LoadImage(path)
	if err != nil {
		return Result{}, err
	}
	return d.Run(image), nil
}

func (d *Driver) budget() int {
	if d.StepBudget <= 0 {
		return defaultStepBudget
	}
	return d.StepBudget
}
