package parser

import "testing"

func TestSymbolTableDefineAndLookup(t *testing.T) {
	st := NewSymbolTable()
	if !st.Define("start", 0x400) {
		t.Fatal("expected first definition of start to succeed")
	}
	addr, ok := st.Lookup("start")
	if !ok || addr != 0x400 {
		t.Errorf("Lookup(start) = (%d, %v), want (0x400, true)", addr, ok)
	}
}

func TestSymbolTableDuplicateDefinitionRejected(t *testing.T) {
	st := NewSymbolTable()
	st.Define("start", 0x400)
	if st.Define("start", 0x500) {
		t.Fatal("expected redefining start to fail")
	}
	addr, _ := st.Lookup("start")
	if addr != 0x400 {
		t.Errorf("expected the original address 0x400 to survive, got %d", addr)
	}
}

func TestSymbolTableLookupUndefinedFails(t *testing.T) {
	st := NewSymbolTable()
	_, ok := st.Lookup("nope")
	if ok {
		t.Fatal("expected lookup of an undefined name to fail")
	}
}

func TestSymbolTableDefinedDoesNotMarkUsed(t *testing.T) {
	st := NewSymbolTable()
	st.Define("loop", 0x10)
	if !st.Defined("loop") {
		t.Fatal("expected loop to be defined")
	}
	unused := st.Unused()
	if len(unused) != 1 || unused[0] != "loop" {
		t.Errorf("expected loop to remain unused after Defined(), got %v", unused)
	}
}

func TestSymbolTableLookupMarksUsed(t *testing.T) {
	st := NewSymbolTable()
	st.Define("loop", 0x10)
	st.Lookup("loop")
	if unused := st.Unused(); len(unused) != 0 {
		t.Errorf("expected no unused names after Lookup, got %v", unused)
	}
}

func TestSymbolTableUnusedPreservesDefinitionOrder(t *testing.T) {
	st := NewSymbolTable()
	st.Define("b", 1)
	st.Define("a", 2)
	st.Define("c", 3)
	st.Lookup("a")

	unused := st.Unused()
	want := []string{"b", "c"}
	if len(unused) != len(want) {
		t.Fatalf("Unused() = %v, want %v", unused, want)
	}
	for i, name := range want {
		if unused[i] != name {
			t.Errorf("Unused()[%d] = %q, want %q", i, unused[i], name)
		}
	}
}

func TestSymbolTableNamesReturnsAllInDefinitionOrder(t *testing.T) {
	st := NewSymbolTable()
	st.Define("z", 1)
	st.Define("y", 2)
	st.Lookup("z")

	names := st.Names()
	want := []string{"z", "y"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestSymbolTableNamesReturnsACopy(t *testing.T) {
	st := NewSymbolTable()
	st.Define("a", 1)
	names := st.Names()
	names[0] = "mutated"
	if st.Names()[0] != "a" {
		t.Error("Names() should return an independent copy, not internal state")
	}
}

func TestSymbolTableEmpty(t *testing.T) {
	st := NewSymbolTable()
	if names := st.Names(); len(names) != 0 {
		t.Errorf("expected no names in an empty table, got %v", names)
	}
	if unused := st.Unused(); len(unused) != 0 {
		t.Errorf("expected no unused names in an empty table, got %v", unused)
	}
}
