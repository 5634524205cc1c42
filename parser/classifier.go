package parser

import (
	"fmt"
	"strings"

	"github.com/lbrn/x64asm/register"
	"github.com/lbrn/x64asm/token"
)

// splitMnemonic re-derives the base mnemonic and size-suffix character(s)
// the lexer already matched against kind, so the classifier doesn't have
// to re-scan the lexeme's family membership.
func splitMnemonic(lower string, kind token.Type) (base string, suf1, suf2 byte) {
	if _, exists := mnemonicFamilies[lower]; exists {
		return lower, 0, 0
	}
	if len(lower) > 2 {
		b := lower[:len(lower)-2]
		s := lower[len(lower)-2:]
		if isTwoCharSizeSuffix(s) {
			if k, exists := mnemonicFamilies[b]; exists && k == kind {
				return b, s[0], s[1]
			}
		}
	}
	if len(lower) > 1 {
		b := lower[:len(lower)-1]
		s := lower[len(lower)-1]
		if _, exists := suffixWidth[s]; exists {
			if k, exists := mnemonicFamilies[b]; exists && k == kind {
				return b, s, 0
			}
		}
	}
	return lower, 0, 0
}

// parseInstructionStatement parses one instruction (or the bare "iret"
// driver epilogue marker) according to the grammar family the lexer
// already classified cur as, using the family-to-class table.
func (p *Parser) parseInstructionStatement() (Instruction, bool) {
	kind := p.cur.Type
	mnemonicPos := p.cur.Pos
	lower := strings.ToLower(p.cur.Lexeme)
	base, suf1, suf2 := splitMnemonic(lower, kind)
	p.next()

	switch kind {
	case token.INSN_0:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 1, Mnemonic: base, SizeHint: size, InterruptNumber: -1, Count: -1}, true

	case token.INSN_0_WQ:
		if suf1 != 'w' && suf1 != 'l' && suf1 != 'q' {
			p.errorAt(mnemonicPos, ErrorSemantic, base+" requires a w, l, or q size suffix")
			return Instruction{}, false
		}
		return Instruction{Class: 1, Mnemonic: base, SizeHint: suffixWidth[suf1], InterruptNumber: -1, Count: -1}, true

	case token.INSN_0_NOSUFF:
		if suf1 != 0 {
			p.errorAt(mnemonicPos, ErrorSemantic, base+" takes no size suffix")
			return Instruction{}, false
		}
		return Instruction{Class: insn0NoSuffClass(base), Mnemonic: base, InterruptNumber: -1, Count: -1}, true

	case token.INSN_1_S:
		if p.cur.Type != token.INTEGER {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected an interrupt number")
			return Instruction{}, false
		}
		lexeme := p.cur.Lexeme
		pos := p.cur.Pos
		p.next()
		v, err := parseIntegerLiteral(lexeme)
		if err != nil {
			p.errorAt(pos, ErrorSemantic, err.Error())
			return Instruction{}, false
		}
		return Instruction{Class: 0, Mnemonic: base, InterruptNumber: int(v), Count: -1}, true

	case token.INSN_LEA:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		src, ok := p.parseFormatE(size)
		if !ok {
			return Instruction{}, false
		}
		if !p.expect(token.COMMA, "','") {
			return Instruction{}, false
		}
		dst, ok := p.parseFormatE(size)
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 1, Mnemonic: base, SizeHint: -1, Src: src, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_1_E:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		dst, ok := p.parseFormatE(size)
		if !ok {
			return Instruction{}, false
		}
		class := 2
		if base == "push" || base == "pop" {
			class = 1
		}
		return Instruction{Class: class, Mnemonic: base, SizeHint: -1, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_SHIFT:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		count := -1
		if p.cur.Type == token.DOLLAR || (p.cur.Type == token.REG_8 && strings.EqualFold(p.cur.Lexeme, "%cl")) {
			cnt, ok := p.parseFormatK()
			if !ok {
				return Instruction{}, false
			}
			if cnt.Kind == OperandImmediate {
				count = int(cnt.Immediate)
			}
			if !p.expect(token.COMMA, "','") {
				return Instruction{}, false
			}
		}
		dst, ok := p.parseFormatG(size)
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 3, Mnemonic: base, SizeHint: -1, Count: count, Dst: dst, InterruptNumber: -1}, true

	case token.INSN_1_M:
		if suf1 != 0 {
			p.errorAt(mnemonicPos, ErrorSemantic, base+" takes no size suffix")
			return Instruction{}, false
		}
		target, ok := p.parseFormatM(8)
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 6, Mnemonic: base, Target: &target, Count: -1, InterruptNumber: -1}, true

	case token.INSN_JC:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		var target Operand
		if p.cur.Type == token.STAR {
			p.next()
			if p.cur.Type.IsRegisterFamily() {
				target, ok = p.parseFormatG(size)
			} else {
				var mem Memory
				mem, ok = p.parseAddressing(size)
				target = NewMemoryOperand(mem)
			}
		} else {
			target, ok = p.parseFormatM(size)
		}
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 5, Mnemonic: base, Target: &target, SizeHint: -1, Count: -1, InterruptNumber: -1}, true

	case token.INSN_B_E:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, true)
		if !ok {
			return Instruction{}, false
		}
		src, ok := p.parseFormatB(size)
		if !ok {
			return Instruction{}, false
		}
		if !p.expect(token.COMMA, "','") {
			return Instruction{}, false
		}
		dst, ok := p.parseFormatE(size)
		if !ok {
			return Instruction{}, false
		}
		if dst.Kind == OperandImmediate {
			p.errorAt(mnemonicPos, ErrorSemantic, "destination operand cannot be an immediate")
			return Instruction{}, false
		}
		if src.Kind == OperandMemory && dst.Kind == OperandMemory {
			p.errorAt(mnemonicPos, ErrorSemantic, base+" cannot have two memory operands")
			return Instruction{}, false
		}
		class := 2
		if base == "mov" {
			class = 1
		}
		return Instruction{Class: class, Mnemonic: base, SizeHint: -1, Src: src, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_EXT:
		srcW, ok1 := suffixWidth[suf1]
		dstW, ok2 := suffixWidth[suf2]
		if !ok1 || !ok2 {
			p.errorAt(mnemonicPos, ErrorSemantic, base+" requires a two-character size suffix")
			return Instruction{}, false
		}
		if srcW >= dstW {
			p.errorAt(mnemonicPos, ErrorSemantic, fmt.Sprintf("Wrong suffices for extension: cannot extend from %d to %d", srcW, dstW))
			return Instruction{}, false
		}
		src, ok := p.parseFormatE(srcW)
		if !ok {
			return Instruction{}, false
		}
		if !p.expect(token.COMMA, "','") {
			return Instruction{}, false
		}
		dst, ok := p.parseFormatG(dstW)
		if !ok {
			return Instruction{}, false
		}
		return Instruction{Class: 1, Mnemonic: base, SizeHint: -1, Src: src, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_IN:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, false)
		if !ok {
			return Instruction{}, false
		}
		if p.cur.Type != token.REG_16 || !strings.EqualFold(p.cur.Lexeme, "%dx") {
			p.errorAt(mnemonicPos, ErrorSemantic, "Wrong operands for instruction "+base+".")
			return Instruction{}, false
		}
		dxID, dxSize, _ := register.Lookup("dx")
		p.next()
		src := NewRegisterOperand(dxID, dxSize)
		if !p.expect(token.COMMA, "','") {
			return Instruction{}, false
		}
		dst, ok := p.expectAccumulator(size)
		if !ok {
			p.errorAt(mnemonicPos, ErrorSemantic, "Wrong operands for instruction "+base+".")
			return Instruction{}, false
		}
		return Instruction{Class: 7, Mnemonic: base, Size: size, Src: src, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_OUT:
		size, ok := p.requireSuffix(mnemonicPos, suf1, true, true, true, false)
		if !ok {
			return Instruction{}, false
		}
		src, ok := p.expectAccumulator(size)
		if !ok {
			p.errorAt(mnemonicPos, ErrorSemantic, "Wrong operands for instruction "+base+".")
			return Instruction{}, false
		}
		if !p.expect(token.COMMA, "','") {
			return Instruction{}, false
		}
		if p.cur.Type != token.REG_16 || !strings.EqualFold(p.cur.Lexeme, "%dx") {
			p.errorAt(mnemonicPos, ErrorSemantic, "Wrong operands for instruction "+base+".")
			return Instruction{}, false
		}
		dxID, dxSize, _ := register.Lookup("dx")
		p.next()
		dst := NewRegisterOperand(dxID, dxSize)
		return Instruction{Class: 7, Mnemonic: base, Size: size, Src: src, Dst: dst, Count: -1, InterruptNumber: -1}, true

	case token.INSN_IO_S:
		w1, ok1 := suffixWidth[suf1]
		_, ok2 := suffixWidth[suf2]
		if !ok1 || !ok2 || suf1 == 'q' || suf2 == 'q' {
			p.errorAt(mnemonicPos, ErrorSemantic, "Wrong size suffix for instruction "+base)
			return Instruction{}, false
		}
		return Instruction{Class: 7, Mnemonic: base, Size: w1, Count: -1, InterruptNumber: -1}, true

	case token.IRET:
		return Instruction{Class: 5, Mnemonic: "iret", Count: -1, InterruptNumber: -1}, true

	default:
		p.errorAt(mnemonicPos, ErrorSyntax, "expected an instruction")
		return Instruction{}, false
	}
}

// requireSuffix validates that a mandatory size suffix was present and
// maps it to a byte width, restricted to the given allowed widths.
func (p *Parser) requireSuffix(pos token.Position, suf byte, allowB, allowW, allowL, allowQ bool) (int, bool) {
	w, ok := suffixWidth[suf]
	if !ok {
		p.errorAt(pos, ErrorSemantic, "missing size suffix")
		return 0, false
	}
	switch w {
	case 1:
		ok = allowB
	case 2:
		ok = allowW
	case 4:
		ok = allowL
	case 8:
		ok = allowQ
	}
	if !ok {
		p.errorAt(pos, ErrorSemantic, "size suffix not valid for this instruction")
		return 0, false
	}
	return w, true
}

// expectAccumulator consumes a register operand and reports whether it
// is the fixed accumulator register (al/ax/eax) at the given size. It
// never raises its own error: the IN/OUT cases report a single "Wrong
// operands for instruction <m>." error covering both operands.
func (p *Parser) expectAccumulator(size int) (Operand, bool) {
	if !p.cur.Type.IsRegisterFamily() {
		return Operand{}, false
	}
	name := strings.TrimPrefix(p.cur.Lexeme, "%")
	id, sz, _ := register.Lookup(name)
	p.next()
	if id != 0 || int(sz)/8 != size {
		return Operand{}, false
	}
	return NewRegisterOperand(id, sz), true
}

// expect consumes cur if it matches want, else raises a syntax error
// naming what was expected.
func (p *Parser) expect(want token.Type, description string) bool {
	if p.cur.Type != want {
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected "+description)
		return false
	}
	p.next()
	return true
}
