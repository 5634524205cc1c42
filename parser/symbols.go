package parser

// SymbolTable maps a label name to the address it was defined at.
// Resolution is eager: a FormatM reference to an as-yet-undefined label
// fails immediately rather than waiting for a second pass (see DESIGN.md
// for the discussion of the two-pass alternative).
type SymbolTable struct {
	addresses map[string]uint64
	// order preserves definition order, used by Unused to produce
	// deterministic warnings.
	order []string
	used  map[string]bool
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		addresses: make(map[string]uint64),
		used:      make(map[string]bool),
	}
}

// Define records name -> address. It returns false if name is already
// defined (the caller raises ErrorDuplicateLabel).
func (st *SymbolTable) Define(name string, address uint64) bool {
	if _, exists := st.addresses[name]; exists {
		return false
	}
	st.addresses[name] = address
	st.order = append(st.order, name)
	return true
}

// Lookup returns name's address. ok is false if name has not been
// defined -- callers must treat this as an immediate error, never as a
// forward reference to resolve later.
func (st *SymbolTable) Lookup(name string) (address uint64, ok bool) {
	address, ok = st.addresses[name]
	if ok {
		st.used[name] = true
	}
	return address, ok
}

// Defined reports whether name has been defined, without marking it used.
func (st *SymbolTable) Defined(name string) bool {
	_, ok := st.addresses[name]
	return ok
}

// Unused returns the names defined but never looked up, in definition
// order.
func (st *SymbolTable) Unused() []string {
	var names []string
	for _, name := range st.order {
		if !st.used[name] {
			names = append(names, name)
		}
	}
	return names
}

// Names returns every defined symbol name, in definition order.
func (st *SymbolTable) Names() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}
