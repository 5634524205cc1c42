// Package tools implements analysis and formatting utilities layered on
// top of the parser: a linter that runs extra checks beyond what Parse
// reports on its own, and a source formatter.
package tools

import (
	"fmt"
	"sort"

	"github.com/lbrn/x64asm/parser"
	"github.com/lbrn/x64asm/register"
)

// LintLevel represents the severity of a lint issue.
type LintLevel int

const (
	LintError   LintLevel = iota // Parse errors, undefined references
	LintWarning                  // Best-practice violations, potential issues
	LintInfo                     // Suggestions, style recommendations
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue represents a single lint finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Column  int
	Message string
	Code    string // Issue code like "UNUSED_LABEL", "UNREACHABLE_CODE"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Line, i.Column, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	WarningsAsErrors bool // Promote warnings to errors in the final verdict
	CheckUnused      bool // Check for unused labels
	CheckReach       bool // Check for unreachable code after ret/jmp/iret
	CheckRegUse      bool // Check register usage (mismatched src/dst sizes)
	MaxErrors        int  // Stop collecting new issues past this count (0 = unlimited)
}

// DefaultLintOptions returns default linter options.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{
		WarningsAsErrors: false,
		CheckUnused:      true,
		CheckReach:       true,
		CheckRegUse:      true,
		MaxErrors:        200,
	}
}

// Linter analyzes assembly source for issues beyond what Parser.Parse
// reports: unreachable code, unused labels promoted to the configured
// severity, and register-size consistency across an instruction stream.
type Linter struct {
	options *LintOptions
	issues  []*LintIssue
	program *parser.Program
}

// NewLinter creates a new linter.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{
		options: options,
		issues:  make([]*LintIssue, 0),
	}
}

// Lint analyzes the given assembly source code and returns every issue
// found, sorted by line and then column; issues that carry no position
// (line 0) come first.
func (l *Linter) Lint(input, filename string) []*LintIssue {
	p := parser.NewParser(input, filename)
	prog, errs := p.Parse()

	for _, perr := range errs.Errors {
		l.addIssue(&LintIssue{
			Level:   LintError,
			Line:    perr.Pos.Line,
			Column:  perr.Pos.Column,
			Message: perr.Message,
			Code:    "PARSE_ERROR",
		})
	}

	unusedLevel := LintWarning
	if l.options.WarningsAsErrors {
		unusedLevel = LintError
	}
	if l.options.CheckUnused {
		for _, warn := range errs.Warnings {
			l.addIssue(&LintIssue{
				Level:   unusedLevel,
				Line:    warn.Pos.Line,
				Column:  warn.Pos.Column,
				Message: warn.Message,
				Code:    "UNUSED_LABEL",
			})
		}
	}

	l.program = prog

	if l.options.CheckReach {
		l.checkUnreachableCode()
	}
	if l.options.CheckRegUse {
		l.checkRegisterUsage()
	}

	sort.SliceStable(l.issues, func(i, j int) bool {
		if l.issues[i].Line == l.issues[j].Line {
			return l.issues[i].Column < l.issues[j].Column
		}
		return l.issues[i].Line < l.issues[j].Line
	})

	return l.issues
}

// HasErrors reports whether any collected issue is at LintError severity.
func (l *Linter) HasErrors() bool {
	for _, issue := range l.issues {
		if issue.Level == LintError {
			return true
		}
	}
	return false
}

func (l *Linter) addIssue(issue *LintIssue) {
	if l.options.MaxErrors > 0 && len(l.issues) >= l.options.MaxErrors {
		return
	}
	l.issues = append(l.issues, issue)
}

// checkUnreachableCode flags code appearing directly after an
// unconditional control transfer (a Class 5 ret, jmp or iret; call is
// not flagged). Labels are not consulted, so an instruction that a label
// makes reachable is still reported.
func (l *Linter) checkUnreachableCode() {
	if l.program == nil {
		return
	}
	for i, insn := range l.program.Code {
		if insn.Class != 5 || insn.Mnemonic == "call" {
			continue
		}
		if i+1 >= len(l.program.Code) {
			continue
		}
		l.addIssue(&LintIssue{
			Level:   LintWarning,
			Line:    0,
			Column:  0,
			Message: fmt.Sprintf("code after unconditional %q may be unreachable", insn.Mnemonic),
			Code:    "UNREACHABLE_CODE",
		})
	}
}

// checkRegisterUsage flags Class 1/2 instructions whose source and
// destination are both registers of mismatched width. The classifier
// already checks every register operand against the shared instruction
// suffix, so a Program built by Parse never holds such a pair and this
// check reports nothing for it.
func (l *Linter) checkRegisterUsage() {
	if l.program == nil {
		return
	}
	for _, insn := range l.program.Code {
		if insn.Class != 1 && insn.Class != 2 {
			continue
		}
		if insn.Mnemonic == "movz" || insn.Mnemonic == "movs" {
			continue
		}
		if insn.Src.Kind != parser.OperandRegister || insn.Dst.Kind != parser.OperandRegister {
			continue
		}
		if insn.Src.RegSize == insn.Dst.RegSize {
			continue
		}
		l.addIssue(&LintIssue{
			Level: LintInfo,
			Message: fmt.Sprintf("%s: source register %%%s and destination register %%%s have different widths",
				insn.Mnemonic,
				register.Name(insn.Src.RegID, insn.Src.RegSize),
				register.Name(insn.Dst.RegID, insn.Dst.RegSize)),
			Code: "REG_WIDTH_MISMATCH",
		})
	}
}

// FormatIssues renders issues one per line, suitable for CLI output.
func FormatIssues(issues []*LintIssue) string {
	var out string
	for _, issue := range issues {
		out += issue.String() + "\n"
	}
	return out
}
