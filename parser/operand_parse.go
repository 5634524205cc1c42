package parser

import (
	"strings"

	"github.com/lbrn/x64asm/register"
	"github.com/lbrn/x64asm/token"
)

// regOperand consumes the current register token and checks that its size
// family matches the instruction's size suffix, raising ErrorSemantic and
// returning ok=false if they disagree.
func (p *Parser) regOperand(size int) (register.ID, register.Size, bool) {
	lexeme := p.cur.Lexeme
	pos := p.cur.Pos
	name := lexeme[1:] // strip '%'
	id, sz, _ := register.Lookup(name)
	p.next()
	if int(sz)/8 != size {
		p.errorAt(pos, ErrorSemantic, "Operand size and instruction suffix mismatch.")
		return id, sz, false
	}
	return id, sz, true
}

// parseAddressing implements the Addressing(operand_size) grammar:
//
//	Addressing = [Expression] ['(' Reg [',' Reg ',' INTEGER] ')']
//
// The one-token-of-extra lookahead the grammar needs to tell a bare
// displacement from the start of a parenthesised addressing mode is
// satisfied naturally by the cur/peek cursor: parseExpression stops as
// soon as it sees something that isn't '+', '-', '*', or '/', leaving
// '(' in cur.
func (p *Parser) parseAddressing(size int) (Memory, bool) {
	var mem Memory
	mem.OperandSize = size

	hasDisp := false
	var disp int64
	if p.cur.Type != token.LPAREN {
		v, ok := p.parseExpression()
		if !ok {
			return mem, false
		}
		hasDisp = true
		disp = v
	}
	mem.HasDisplacement = hasDisp
	mem.Displacement = int32(disp)

	if p.cur.Type == token.LPAREN {
		p.next()

		if !p.cur.Type.IsRegisterFamily() {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected a base register")
			return mem, false
		}
		baseLexeme := p.cur.Lexeme
		baseID, baseSize, _ := register.Lookup(strings.TrimPrefix(baseLexeme, "%"))
		mem.HasBase = true
		mem.BaseID = baseID
		mem.BaseSize = baseSize
		p.next()

		if p.cur.Type == token.COMMA {
			p.next()
			if !p.cur.Type.IsRegisterFamily() {
				p.errorAt(p.cur.Pos, ErrorSyntax, "expected an index register")
				return mem, false
			}
			idxLexeme := p.cur.Lexeme
			idxID, idxSize, _ := register.Lookup(strings.TrimPrefix(idxLexeme, "%"))
			mem.HasIndex = true
			mem.IndexID = idxID
			mem.IndexSize = idxSize
			p.next()

			if mem.BaseSize != mem.IndexSize {
				p.errorAt(p.cur.Pos, ErrorSemantic, "base and index registers must be the same size")
				return mem, false
			}

			if p.cur.Type == token.COMMA {
				p.next()
				if p.cur.Type != token.INTEGER {
					p.errorAt(p.cur.Pos, ErrorSyntax, "expected a scale factor")
					return mem, false
				}
				scalePos := p.cur.Pos
				scaleLexeme := p.cur.Lexeme
				p.next()
				scale, err := parseIntegerLiteral(scaleLexeme)
				if err != nil {
					p.errorAt(scalePos, ErrorSemantic, err.Error())
					return mem, false
				}
				if scale != 1 && scale != 2 && scale != 4 && scale != 8 {
					p.errorAt(scalePos, ErrorSemantic, "scale factor must be 1, 2, 4, or 8")
					return mem, false
				}
				mem.HasScale = true
				mem.Scale = int(scale)
			}
		}

		if p.cur.Type != token.RPAREN {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected ')'")
			return mem, false
		}
		p.next()
	}

	if !hasDisp && !mem.HasBase && !mem.HasIndex {
		p.errorAt(p.cur.Pos, ErrorSyntax, "empty addressing expression")
		return mem, false
	}
	return mem, true
}

// parseFormatE parses an Immediate, Register, or Memory operand of the
// given size: $Expression | %reg | Addressing(size).
func (p *Parser) parseFormatE(size int) (Operand, bool) {
	switch {
	case p.cur.Type == token.DOLLAR:
		p.next()
		v, ok := p.parseExpression()
		if !ok {
			return Operand{}, false
		}
		return NewImmediateOperand(v), true

	case p.cur.Type.IsRegisterFamily():
		id, sz, ok := p.regOperand(size)
		if !ok {
			return Operand{}, false
		}
		return NewRegisterOperand(id, sz), true

	default:
		mem, ok := p.parseAddressing(size)
		if !ok {
			return Operand{}, false
		}
		return NewMemoryOperand(mem), true
	}
}

// parseFormatB parses the source operand of the two-operand
// Immediate/Register/Memory families (INSN_B_E). Its grammar is
// identical to FormatE; the distinct name marks its role as the left
// (source) operand of the pair, whose destination-side
// restrictions (no immediate, at most one memory operand) are enforced
// by the caller once both operands are in hand.
func (p *Parser) parseFormatB(size int) (Operand, bool) {
	return p.parseFormatE(size)
}

// parseFormatG parses a bare register operand of the given size.
func (p *Parser) parseFormatG(size int) (Operand, bool) {
	if !p.cur.Type.IsRegisterFamily() {
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected a register")
		return Operand{}, false
	}
	id, sz, ok := p.regOperand(size)
	if !ok {
		return Operand{}, false
	}
	return NewRegisterOperand(id, sz), true
}

// parseFormatM parses a jump/call target address as an addressing-mode
// expression, producing a Memory operand whose Displacement carries the
// resolved absolute address when the target is a bare label or constant
// expression (the common case), and whose base/index fields carry an
// indirect target's addressing components otherwise.
func (p *Parser) parseFormatM(size int) (Operand, bool) {
	p.labelErrorOverride = "Trying to address a label which has not been defined"
	mem, ok := p.parseAddressing(size)
	p.labelErrorOverride = ""
	if !ok {
		return Operand{}, false
	}
	return NewMemoryOperand(mem), true
}

// parseFormatK parses a shift count: $Expression, or the fixed %cl
// register that signals an implicit (run-time) count.
func (p *Parser) parseFormatK() (Operand, bool) {
	if p.cur.Type == token.DOLLAR {
		p.next()
		v, ok := p.parseExpression()
		if !ok {
			return Operand{}, false
		}
		return NewImmediateOperand(v), true
	}
	if p.cur.Type == token.REG_8 && strings.EqualFold(p.cur.Lexeme, "%cl") {
		id, sz, _ := register.Lookup("cl")
		p.next()
		return NewRegisterOperand(id, sz), true
	}
	p.errorAt(p.cur.Pos, ErrorSyntax, "expected a shift count: an immediate or %cl")
	return Operand{}, false
}
