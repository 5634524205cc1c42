// Command x64asmlint parses, lints, cross-references, and reformats
// AT&T-syntax x86-64 assembly source.
package main

import (
	"fmt"
	"os"

	"github.com/lbrn/x64asm/config"
	"github.com/lbrn/x64asm/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if args.showVersion {
		fmt.Printf("x64asmlint %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if args.showHelp || args.file == "" {
		printHelp()
		if args.showHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if args.maxErrors > 0 {
		cfg.Lint.MaxErrors = args.maxErrors
	}
	if args.warningsAsErrors {
		cfg.Lint.WarningsAsErrors = true
	}

	source, err := os.ReadFile(args.file) // #nosec G304 -- user-specified source file
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	switch args.mode {
	case modeFormat:
		out, err := tools.FormatStringWithStyle(string(source), args.file, args.formatStyle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)

	case modeXref:
		report, errs := tools.GenerateXRef(string(source), args.file)
		if errs.HasErrors() {
			fmt.Fprint(os.Stderr, errs.Error())
		}
		fmt.Print(report.String())

	default: // modeLint
		opts := &tools.LintOptions{
			WarningsAsErrors: cfg.Lint.WarningsAsErrors,
			CheckUnused:      cfg.Lint.ReportUnusedLabel,
			CheckReach:       true,
			CheckRegUse:      true,
			MaxErrors:        cfg.Lint.MaxErrors,
		}
		linter := tools.NewLinter(opts)
		issues := linter.Lint(string(source), args.file)
		fmt.Print(tools.FormatIssues(issues))
		fmt.Printf("\n%s\n", issueCountString(len(issues)))
		if linter.HasErrors() {
			os.Exit(1)
		}
	}
}

func issueCountString(n int) string {
	if n == 1 {
		return "1 issue"
	}
	return fmt.Sprintf("%d issues", n)
}

func printHelp() {
	fmt.Printf(`x64asmlint %s

Usage: x64asmlint [options] <assembly-file>

Options:
  -help              Show this help message
  -version           Show version information
  -mode MODE         Operation mode: lint, format, xref (default: lint)
  -style STYLE       Format style: default, compact, expanded (used with -mode format)
  -max-errors N      Stop collecting new issues past this count (default: from config)
  -warnings-as-errors
                     Promote warnings (e.g. unused labels) to errors

Examples:
  x64asmlint program.s
  x64asmlint -mode format -style compact program.s
  x64asmlint -mode xref program.s
  x64asmlint -max-errors 50 -warnings-as-errors program.s

Config is read from the platform config directory (see config.GetConfigPath)
and sets the default max-errors, warnings-as-errors and unused-label
reporting for this tool; its assemble and display settings are not used.
`, Version)
}
