package main

import (
	"flag"
	"fmt"

	"github.com/lbrn/x64asm/tools"
)

type mode int

const (
	modeLint mode = iota
	modeFormat
	modeXref
)

type cliArgs struct {
	showVersion      bool
	showHelp         bool
	mode             mode
	formatStyle      tools.FormatStyle
	maxErrors        int
	warningsAsErrors bool
	file             string
}

// parseArgs parses the flag set embedded in os.Args[1:] into a cliArgs.
// It is kept separate from main so it can be unit tested without
// exercising os.Exit.
func parseArgs(argv []string) (*cliArgs, error) {
	fs := flag.NewFlagSet("x64asmlint", flag.ContinueOnError)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help information")
	modeFlag := fs.String("mode", "lint", "Operation mode: lint, format, xref")
	styleFlag := fs.String("style", "default", "Format style: default, compact, expanded")
	maxErrors := fs.Int("max-errors", 0, "Stop collecting new issues past this count (0 = use config default)")
	warningsAsErrors := fs.Bool("warnings-as-errors", false, "Promote warnings to errors")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	args := &cliArgs{
		showVersion:      *showVersion,
		showHelp:         *showHelp,
		maxErrors:        *maxErrors,
		warningsAsErrors: *warningsAsErrors,
	}

	switch *modeFlag {
	case "lint":
		args.mode = modeLint
	case "format":
		args.mode = modeFormat
	case "xref":
		args.mode = modeXref
	default:
		return nil, fmt.Errorf("unknown mode: %s", *modeFlag)
	}

	switch *styleFlag {
	case "default":
		args.formatStyle = tools.FormatDefault
	case "compact":
		args.formatStyle = tools.FormatCompact
	case "expanded":
		args.formatStyle = tools.FormatExpanded
	default:
		return nil, fmt.Errorf("unknown format style: %s", *styleFlag)
	}

	if fs.NArg() > 0 {
		args.file = fs.Arg(0)
	}

	return args, nil
}
