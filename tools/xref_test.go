package tools

import (
	"strings"
	"testing"
)

func TestGenerateXRefListsDefinedSymbols(t *testing.T) {
	report, errs := GenerateXRef(".text\nstart:\nmovq $1, %rax\njmpq start\n.end\n", "test.s")
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Errors)
	}
	entries := report.Entries()
	if len(entries) != 1 || entries[0].Name != "start" {
		t.Fatalf("expected a single start entry, got %+v", entries)
	}
	if !entries[0].Used {
		t.Error("expected start to be marked used, since jmpq references it")
	}
}

func TestGenerateXRefMarksUnusedLabels(t *testing.T) {
	report, errs := GenerateXRef(".text\nunused_label:\nmovq $1, %rax\n.end\n", "test.s")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", errs.Errors)
	}
	unused := report.Unused()
	if len(unused) != 1 || unused[0].Name != "unused_label" {
		t.Fatalf("expected unused_label to be reported unused, got %+v", unused)
	}
}

func TestGenerateXRefEntriesSortedByName(t *testing.T) {
	report, _ := GenerateXRef(".equ zeta, 1\n.equ alpha, 2\n.text\n.end\n", "test.s")
	entries := report.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Errorf("expected entries sorted by name, got %+v", entries)
	}
}

func TestXRefReportStringRendersNameAddressAndStatus(t *testing.T) {
	report, _ := GenerateXRef(".equ answer, 42\n.text\n.end\n", "test.s")
	out := report.String()
	if !strings.Contains(out, "answer") {
		t.Errorf("expected output to mention answer, got %q", out)
	}
	if !strings.Contains(out, "unused") {
		t.Errorf("expected output to mark answer unused, got %q", out)
	}
	if !strings.Contains(out, "Total symbols: 1") {
		t.Errorf("expected a total-symbols footer, got %q", out)
	}
}

func TestGenerateXRefPropagatesParseErrors(t *testing.T) {
	_, errs := GenerateXRef(".text\n@@@\n.end\n", "test.s")
	if !errs.HasErrors() {
		t.Error("expected parse errors to be surfaced alongside a partial report")
	}
}
