package parser

import "github.com/lbrn/x64asm/register"

// OperandKind discriminates the three-way Operand variant.
type OperandKind int

const (
	OperandImmediate OperandKind = iota
	OperandRegister
	OperandMemory
)

// Memory is a memory-addressing operand: disp(base, index, scale).
// Invariants: if Scale is present, Index must be present; if both Index
// and Base are present their sizes must match; OperandSize is always
// carried from the instruction suffix, never inferred from the
// addressing components themselves.
type Memory struct {
	HasBase  bool
	BaseID   register.ID
	BaseSize register.Size

	HasIndex  bool
	IndexID   register.ID
	IndexSize register.Size

	HasScale bool
	Scale    int // 1, 2, 4, or 8

	HasDisplacement bool
	Displacement    int32

	OperandSize int // bytes: 1, 2, 4, or 8
}

// Operand is the tagged Immediate/Register/Memory variant. Only the
// field matching Kind is meaningful.
type Operand struct {
	Kind OperandKind

	Immediate int64

	RegID   register.ID
	RegSize register.Size

	Mem Memory
}

// NewImmediateOperand builds an Immediate operand.
func NewImmediateOperand(v int64) Operand {
	return Operand{Kind: OperandImmediate, Immediate: v}
}

// NewRegisterOperand builds a Register operand.
func NewRegisterOperand(id register.ID, size register.Size) Operand {
	return Operand{Kind: OperandRegister, RegID: id, RegSize: size}
}

// NewMemoryOperand builds a Memory operand.
func NewMemoryOperand(m Memory) Operand {
	return Operand{Kind: OperandMemory, Mem: m}
}

// SizeBytes returns the operand's width in bytes: the register's family
// width for a Register, OperandSize for a Memory, and 0 (unsized) for an
// Immediate.
func (o Operand) SizeBytes() int {
	switch o.Kind {
	case OperandRegister:
		return int(o.RegSize) / 8
	case OperandMemory:
		return o.Mem.OperandSize
	default:
		return 0
	}
}
