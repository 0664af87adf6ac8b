package cpm

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/go-z80/z80core/internal/z80"
)

func TestDriverRunPrintsCharacterViaBDOSCall2(t *testing.T) {
	fs := afero.NewMemMapFs()
	// LD C,2; LD E,'!'; CALL 0x0005; HALT
	image := []byte{0x0E, 0x02, 0x1E, '!', 0xCD, 0x05, 0x00, 0x76}
	if err := afero.WriteFile(fs, "prog.com", image, 0o644); err != nil {
		t.Fatal(err)
	}

	driver := NewDriver(fs)
	result, err := driver.RunFile("prog.com")
	if err != nil {
		t.Fatal(err)
	}

	if result.Output != "!" {
		t.Fatalf("Output = %q, want %q", result.Output, "!")
	}
	if result.StopReason != z80.StopPredicate {
		t.Fatalf("StopReason = %v, want StopPredicate", result.StopReason)
	}
}

func TestDriverRunPrintsStringViaBDOSCall9(t *testing.T) {
	fs := afero.NewMemMapFs()
	// LD C,9; LD DE,msg; CALL 0x0005; HALT; msg: "HI$"
	image := []byte{
		0x0E, 0x09,
		0x11, 0x09, 0x01, // LD DE,0x0109
		0xCD, 0x05, 0x00,
		0x76,
		'H', 'I', '$',
	}
	if err := afero.WriteFile(fs, "prog.com", image, 0o644); err != nil {
		t.Fatal(err)
	}

	driver := NewDriver(fs)
	result, err := driver.RunFile("prog.com")
	if err != nil {
		t.Fatal(err)
	}

	if result.Output != "HI" {
		t.Fatalf("Output = %q, want %q", result.Output, "HI")
	}
}

func TestDriverStopsOnWarmBoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	image := []byte{0xC3, 0x00, 0x00} // JP 0x0000
	if err := afero.WriteFile(fs, "prog.com", image, 0o644); err != nil {
		t.Fatal(err)
	}

	driver := NewDriver(fs)
	result, err := driver.RunFile("prog.com")
	if err != nil {
		t.Fatal(err)
	}

	if result.StopReason != z80.StopPredicate {
		t.Fatalf("StopReason = %v, want StopPredicate", result.StopReason)
	}
}

func TestDriverReportsBudgetExhaustion(t *testing.T) {
	fs := afero.NewMemMapFs()
	image := []byte{0x00, 0xC3, 0x00, 0x01} // NOP; JP 0x0100 (infinite loop, never 0x0000)
	if err := afero.WriteFile(fs, "prog.com", image, 0o644); err != nil {
		t.Fatal(err)
	}

	driver := NewDriver(fs)
	driver.StepBudget = 50
	result, err := driver.RunFile("prog.com")
	if err != nil {
		t.Fatal(err)
	}

	if result.StopReason != z80.StopBudget {
		t.Fatalf("StopReason = %v, want StopBudget", result.StopReason)
	}
}

func TestLoadImageRejectsOversizedCOM(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "big.com", make([]byte, maxImageSize+1), 0o644); err != nil {
		t.Fatal(err)
	}

	driver := NewDriver(fs)
	if _, err := driver.LoadImage("big.com"); err == nil {
		t.Fatal("expected an error for an oversized image")
	}
}

func TestLoadImageWrapsMissingFileError(t *testing.T) {
	fs := afero.NewMemMapFs()
	driver := NewDriver(fs)
	if _, err := driver.LoadImage("missing.com"); err == nil {
		t.Fatal("expected an error for a missing image")
	}
}
