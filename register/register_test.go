package register_test

import (
	"testing"

	"github.com/lbrn/x64asm/register"
)

func TestLookup_KnownRegisters(t *testing.T) {
	tests := []struct {
		name     string
		wantID   register.ID
		wantSize register.Size
	}{
		{"rax", 0, register.Size64},
		{"eax", 0, register.Size32},
		{"ax", 0, register.Size16},
		{"al", 0, register.Size8},
		{"RAX", 0, register.Size64}, // case-insensitive
		{"rsp", 4, register.Size64},
		{"r15", 15, register.Size64},
		{"r15b", 15, register.Size8},
		{"dil", 7, register.Size8},
	}

	for _, tt := range tests {
		id, size, ok := register.Lookup(tt.name)
		if !ok {
			t.Fatalf("Lookup(%q): expected a match", tt.name)
		}
		if id != tt.wantID || size != tt.wantSize {
			t.Errorf("Lookup(%q) = (%d, %d), want (%d, %d)", tt.name, id, size, tt.wantID, tt.wantSize)
		}
	}
}

func TestLookup_NotARegister(t *testing.T) {
	for _, name := range []string{"foo", "rax1", "", "mov", "r16", "r0"} {
		if _, _, ok := register.Lookup(name); ok {
			t.Errorf("Lookup(%q): expected no match", name)
		}
	}
}

func TestIsRegister(t *testing.T) {
	if !register.IsRegister("rbx") {
		t.Error("expected rbx to be a register")
	}
	if register.IsRegister("label") {
		t.Error("expected label to not be a register")
	}
}

func TestName_RoundTrip(t *testing.T) {
	for size, want := range map[register.Size]string{
		register.Size8:  "spl",
		register.Size16: "sp",
		register.Size32: "esp",
		register.Size64: "rsp",
	} {
		got := register.Name(4, size)
		if got != want {
			t.Errorf("Name(4, %d) = %q, want %q", size, got, want)
		}
	}
}

func TestName_OutOfRange(t *testing.T) {
	if got := register.Name(16, register.Size64); got != "" {
		t.Errorf("Name(16, 64) = %q, want empty string", got)
	}
}

func TestAllSixtyFourNamesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, size := range []register.Size{register.Size8, register.Size16, register.Size32, register.Size64} {
		for id := register.ID(0); id < 16; id++ {
			name := register.Name(id, size)
			if name == "" {
				t.Fatalf("missing name for id %d size %d", id, size)
			}
			if seen[name] {
				t.Fatalf("duplicate register name %q", name)
			}
			seen[name] = true
		}
	}
	if len(seen) != 64 {
		t.Fatalf("expected 64 distinct register names, got %d", len(seen))
	}
}
