// Package register provides the name -> id mapping the parser needs to
// resolve register operands. It does not model the register file itself
// (flags, widening, aliasing during execution) -- that belongs to the
// simulator this package's caller feeds.
package register

import "strings"

// ID indexes into the architectural general-purpose register file (0-15).
type ID int

// Size is the operand width, in bits, a register name was spelled with.
type Size int

const (
	Size8  Size = 8
	Size16 Size = 16
	Size32 Size = 32
	Size64 Size = 64
)

// names holds the sixteen register names for each of the four size
// families, in register-id order (0 = A, 4 = SP, ... 8-15 = R8-R15).
var names = map[Size][16]string{
	Size8:  {"al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil", "r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b"},
	Size16: {"ax", "cx", "dx", "bx", "sp", "bp", "si", "di", "r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w"},
	Size32: {"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi", "r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d"},
	Size64: {"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi", "r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"},
}

// byName maps every lower-case register spelling (without the leading '%')
// to its id and size. Built once at init time.
var byName map[string]struct {
	ID   ID
	Size Size
}

func init() {
	byName = make(map[string]struct {
		ID   ID
		Size Size
	})
	for size, family := range names {
		for id, name := range family {
			byName[name] = struct {
				ID   ID
				Size Size
			}{ID: ID(id), Size: size}
		}
	}
}

// Lookup resolves a register name (case-insensitive, without the '%'
// sigil) to its id and size family. The second return is false if name is
// not a register.
func Lookup(name string) (id ID, size Size, ok bool) {
	entry, ok := byName[strings.ToLower(name)]
	if !ok {
		return 0, 0, false
	}
	return entry.ID, entry.Size, true
}

// IsRegister reports whether name (without '%') names a register in any
// size family, without returning the id/size pair.
func IsRegister(name string) bool {
	_, _, ok := Lookup(name)
	return ok
}

// Name returns the canonical spelling for id at the given size, or ""
// if id/size is out of range.
func Name(id ID, size Size) string {
	family, ok := names[size]
	if !ok || id < 0 || int(id) >= len(family) {
		return ""
	}
	return family[id]
}
