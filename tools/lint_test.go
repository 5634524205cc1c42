package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCleanProgramHasNoIssues(t *testing.T) {
	src := ".text\nmovq $5, %rax\n.end\n"
	l := NewLinter(nil)
	issues := l.Lint(src, "test.s")

	for _, issue := range issues {
		assert.NotEqual(t, LintError, issue.Level, "unexpected error: %s", issue.Message)
	}
}

func TestLintParseErrorReported(t *testing.T) {
	src := ".text\nmovb $5, %rax\n.end\n"
	l := NewLinter(nil)
	issues := l.Lint(src, "test.s")

	found := false
	for _, issue := range issues {
		if issue.Code == "PARSE_ERROR" && strings.Contains(issue.Message, "Operand size and instruction suffix mismatch.") {
			found = true
		}
	}
	assert.True(t, found, "expected a PARSE_ERROR issue for the suffix mismatch")
	assert.True(t, l.HasErrors())
}

func TestLintUnusedLabelWarning(t *testing.T) {
	src := ".text\nfoo:\nmovq $5, %rax\n.end\n"
	l := NewLinter(nil)
	issues := l.Lint(src, "test.s")

	found := false
	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" {
			found = true
		}
	}
	assert.True(t, found, "expected an UNUSED_LABEL issue for the unreferenced label")
}

func TestLintWarningsAsErrorsPromotesUnusedLabel(t *testing.T) {
	src := ".text\nfoo:\nmovq $5, %rax\n.end\n"
	opts := DefaultLintOptions()
	opts.WarningsAsErrors = true
	l := NewLinter(opts)
	issues := l.Lint(src, "test.s")

	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" {
			assert.Equal(t, LintError, issue.Level, "expected UNUSED_LABEL to be promoted to LintError")
		}
	}
}

func TestLintUnreachableCodeAfterRet(t *testing.T) {
	src := ".text\nret\nmovq $5, %rax\n.end\n"
	l := NewLinter(nil)
	issues := l.Lint(src, "test.s")

	found := false
	for _, issue := range issues {
		if issue.Code == "UNREACHABLE_CODE" {
			found = true
		}
	}
	assert.True(t, found, "expected UNREACHABLE_CODE after an unconditional ret")
}

func TestLintRegisterWidthMatchDoesNotFire(t *testing.T) {
	src := ".text\nmovq %rax, %rbx\n.end\n"
	l := NewLinter(nil)
	issues := l.Lint(src, "test.s")

	for _, issue := range issues {
		assert.NotEqual(t, "REG_WIDTH_MISMATCH", issue.Code, "did not expect a width mismatch for two 64-bit registers")
	}
}

func TestLintMaxErrorsCapsIssueCount(t *testing.T) {
	var src strings.Builder
	src.WriteString(".text\n")
	for i := 0; i < 10; i++ {
		src.WriteString("movb $5, %rax\n")
	}
	src.WriteString(".end\n")

	opts := DefaultLintOptions()
	opts.MaxErrors = 3
	l := NewLinter(opts)
	issues := l.Lint(src.String(), "test.s")

	assert.LessOrEqual(t, len(issues), 3)
}

func TestLintLevelString(t *testing.T) {
	cases := map[LintLevel]string{
		LintError:   "error",
		LintWarning: "warning",
		LintInfo:    "info",
	}
	for level, want := range cases {
		assert.Equal(t, want, level.String())
	}
}

func TestLintIssueString(t *testing.T) {
	issue := &LintIssue{Level: LintWarning, Line: 3, Column: 5, Message: "boo", Code: "X"}
	got := issue.String()
	require.Contains(t, got, "3:5")
	assert.Contains(t, got, "boo")
	assert.Contains(t, got, "[X]")
}
