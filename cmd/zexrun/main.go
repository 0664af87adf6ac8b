// Command zexrun is the C7 test driver's CLI front end: it loads a
// .COM-format Z80 exerciser image (ZEXDOC, ZEXALL, CPUTEST, ...),
// runs it against the core under a minimal CP/M BDOS stub, and prints
// whatever the program wrote through BDOS calls 2/9.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/go-z80/z80core/internal/cpm"
	"github.com/go-z80/z80core/internal/z80"
)

func main() {
	var steps int

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&steps, "steps", 0, "step budget (0 uses the driver's default)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: zexrun run [--steps N] <image.com>")
		flagSet.PrintDefaults()
	}

	if len(os.Args) < 2 || os.Args[1] != "run" {
		flagSet.Usage()
		os.Exit(1)
	}

	if err := flagSet.Parse(os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	path := flagSet.Arg(0)
	if path == "" {
		fmt.Println("Error: run requires an image path")
		os.Exit(1)
	}

	driver := cpm.NewDriver(afero.NewOsFs())
	if steps > 0 {
		driver.StepBudget = steps
	}

	result, err := driver.RunFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(result.Output)

	if result.StopReason == z80.StopBudget {
		fmt.Fprintf(os.Stderr, "zexrun: step budget exhausted after %d cycles\n", result.Cycles)
		os.Exit(1)
	}
	os.Exit(0)
}
