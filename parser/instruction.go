package parser

// Instruction is the tagged eight-class variant. Only the fields
// documented for the instance's Class value are meaningful; the rest are
// zero, except InterruptNumber and Count, which are -1 wherever they do
// not apply.
type Instruction struct {
	Class int // 0-7

	Mnemonic string

	// Class 0: interrupt/halt/nop.
	InterruptNumber int // -1 if absent

	// Class 1: data movement (mov, push/pop, movs/movz, lea).
	// Class 2: binary arithmetic/logical.
	// Class 1 also uses SizeHint for instructions with no operand to
	// carry a size (INSN_0, INSN_0_WQ).
	Src      Operand
	Dst      Operand
	SizeHint int // bytes; -1 if absent

	// Class 3: shift.
	Count int // -1 if the count is %cl or omitted

	// Class 5: control transfer (ret/jmp/call), and the driver epilogue
	// "iret" marker. Target is nil for ret and iret.
	// Class 6: conditional jump. Target is never nil and is always a
	// Memory operand.
	Target *Operand

	// Class 7: port I/O.
	Size int // bytes
}
