package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lbrn/x64asm/parser"
)

// SymbolEntry is one row of a cross-reference report: a label's address
// and whether anything in the source ever resolved it.
type SymbolEntry struct {
	Name    string
	Address uint64
	Used    bool
}

// XRefReport is a symbol-table dump produced from a parsed Program.
// Unlike a full reference-site index, it reflects what the eager,
// single-pass SymbolTable actually tracks: a label's defined address and
// a used/unused flag, not every call site that referenced it (see
// DESIGN.md for why the symbol table does not retain reference sites).
type XRefReport struct {
	entries []SymbolEntry
}

// GenerateXRef parses input and builds its symbol cross-reference
// report. Parse errors are included as the report's own error, not
// silently dropped: a symbol table built from a partially-failed parse
// is still useful, but callers should know it's incomplete.
func GenerateXRef(input, filename string) (*XRefReport, *parser.ErrorList) {
	p := parser.NewParser(input, filename)
	prog, errs := p.Parse()

	unused := make(map[string]bool)
	for _, name := range prog.Labels.Unused() {
		unused[name] = true
	}

	var entries []SymbolEntry
	for _, name := range prog.Labels.Names() {
		addr, _ := prog.Labels.Lookup(name)
		entries = append(entries, SymbolEntry{
			Name:    name,
			Address: addr,
			Used:    !unused[name],
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return &XRefReport{entries: entries}, errs
}

// String renders the report as a simple text table.
func (r *XRefReport) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, e := range r.entries {
		status := "used"
		if !e.Used {
			status = "unused"
		}
		sb.WriteString(fmt.Sprintf("%-30s 0x%016x  %s\n", e.Name, e.Address, status))
	}

	sb.WriteString(fmt.Sprintf("\nTotal symbols: %d\n", len(r.entries)))
	return sb.String()
}

// Entries returns the report's rows, sorted by name.
func (r *XRefReport) Entries() []SymbolEntry {
	return r.entries
}

// Unused returns the rows for labels that were defined but never
// resolved by any reference.
func (r *XRefReport) Unused() []SymbolEntry {
	var out []SymbolEntry
	for _, e := range r.entries {
		if !e.Used {
			out = append(out, e)
		}
	}
	return out
}
