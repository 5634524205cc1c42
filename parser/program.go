package parser

import (
	"sort"
	"strconv"
)

// Program is the in-memory assembled output: the code stream, the data
// image, the symbol table, and the driver/handler vector.
type Program struct {
	Labels *SymbolTable

	// Code is the ordered instruction stream assembled from .text blocks.
	Code []Instruction

	// Data is a sparse byte image written by .data/.bss directives,
	// keyed by absolute address.
	Data map[uint64]byte

	// Drivers maps an interrupt number (formatted in decimal) or a label
	// name to the ordered instruction sequence installed for it,
	// including the trailing Class-5 "iret" marker.
	Drivers map[string][]Instruction

	locationCounter uint64
}

// NewProgram returns an empty Program ready to be populated by a parse.
func NewProgram() *Program {
	return &Program{
		Labels:  NewSymbolTable(),
		Data:    make(map[uint64]byte),
		Drivers: make(map[string][]Instruction),
	}
}

// LocationCounter returns the current address at which the next emitted
// byte or instruction will be placed.
func (p *Program) LocationCounter() uint64 {
	return p.locationCounter
}

// SetLocationCounter sets the location counter directly, as `.org` or
// `. = expr` do.
func (p *Program) SetLocationCounter(addr uint64) {
	p.locationCounter = addr
}

// Advance moves the location counter forward by n bytes, as emitting n
// bytes of data or one instruction does.
func (p *Program) Advance(n uint64) {
	p.locationCounter += n
}

// WriteByte writes a single byte at the current location counter and
// advances it by one.
func (p *Program) WriteByte(b byte) {
	p.Data[p.locationCounter] = b
	p.locationCounter++
}

// WriteBytes writes bs starting at the current location counter and
// advances the counter by len(bs).
func (p *Program) WriteBytes(bs []byte) {
	for _, b := range bs {
		p.WriteByte(b)
	}
}

// DataRange returns the data image as a dense byte slice spanning
// [lo, hi), filling any un-written byte with zero. It exists for tests
// and tooling that want to inspect a contiguous region rather than the
// sparse map directly.
func (p *Program) DataRange(lo, hi uint64) []byte {
	if hi <= lo {
		return nil
	}
	out := make([]byte, hi-lo)
	for addr, b := range p.Data {
		if addr >= lo && addr < hi {
			out[addr-lo] = b
		}
	}
	return out
}

// SortedDriverKeys returns the Drivers map's keys in a stable order,
// numeric interrupt-number keys first (sorted numerically), then label
// keys (sorted lexically). Useful for deterministic iteration in tools
// and tests.
func SortedDriverKeys(drivers map[string][]Instruction) []string {
	var numeric, labels []string
	for k := range drivers {
		if isAllDigits(k) {
			numeric = append(numeric, k)
		} else {
			labels = append(labels, k)
		}
	}
	sort.Slice(numeric, func(i, j int) bool {
		a, _ := strconv.Atoi(numeric[i])
		b, _ := strconv.Atoi(numeric[j])
		return a < b
	})
	sort.Strings(labels)
	return append(numeric, labels...)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
