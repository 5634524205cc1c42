package main

import (
	"testing"

	"github.com/lbrn/x64asm/tools"
)

func TestParseArgsDefaults(t *testing.T) {
	args, err := parseArgs([]string{"program.s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.mode != modeLint {
		t.Errorf("expected default mode lint, got %v", args.mode)
	}
	if args.formatStyle != tools.FormatDefault {
		t.Errorf("expected default format style, got %v", args.formatStyle)
	}
	if args.file != "program.s" {
		t.Errorf("expected file program.s, got %q", args.file)
	}
}

func TestParseArgsModeAndStyle(t *testing.T) {
	args, err := parseArgs([]string{"-mode", "format", "-style", "compact", "program.s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.mode != modeFormat {
		t.Errorf("expected mode format, got %v", args.mode)
	}
	if args.formatStyle != tools.FormatCompact {
		t.Errorf("expected compact style, got %v", args.formatStyle)
	}
}

func TestParseArgsUnknownMode(t *testing.T) {
	_, err := parseArgs([]string{"-mode", "bogus", "program.s"})
	if err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestParseArgsUnknownStyle(t *testing.T) {
	_, err := parseArgs([]string{"-style", "bogus", "program.s"})
	if err == nil {
		t.Error("expected an error for an unknown format style")
	}
}

func TestParseArgsNoFileLeavesFileEmpty(t *testing.T) {
	args, err := parseArgs([]string{"-help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.file != "" {
		t.Errorf("expected no file, got %q", args.file)
	}
	if !args.showHelp {
		t.Error("expected showHelp to be true")
	}
}

func TestParseArgsWarningsAsErrorsAndMaxErrors(t *testing.T) {
	args, err := parseArgs([]string{"-warnings-as-errors", "-max-errors", "5", "program.s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !args.warningsAsErrors {
		t.Error("expected warningsAsErrors to be true")
	}
	if args.maxErrors != 5 {
		t.Errorf("expected maxErrors=5, got %d", args.maxErrors)
	}
}
