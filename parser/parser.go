package parser

import (
	"strconv"

	"github.com/lbrn/x64asm/token"
)

// Parser drives the single-pass, one-token-lookahead grammar over a
// Lexer, building a Program and accumulating errors as it goes. Parsing
// never aborts on error: a failed statement is skipped to the next
// NEWLINE and parsing resumes.
type Parser struct {
	lex      *Lexer
	filename string

	cur, peek token.Token

	errors  ErrorList
	program *Program

	// labelErrorOverride, when non-empty, replaces the generic "undefined
	// symbol" message the next time an undefined LABEL_NAME is resolved
	// in an expression. FormatM sets this to the message required for an
	// undefined jump/call target.
	labelErrorOverride string
}

// NewParser creates a Parser over input, ready to produce diagnostics
// tagged with filename.
func NewParser(input, filename string) *Parser {
	p := &Parser{
		lex:      NewLexer(input),
		filename: filename,
		program:  NewProgram(),
	}
	p.cur = p.fetch()
	p.peek = p.fetch()
	return p
}

// fetch pulls the next non-hidden token from the lexer. WHITESPACE and
// COMMENT are preserved by the lexer for a highlighter but never seen by
// the grammar.
func (p *Parser) fetch() token.Token {
	for {
		t := p.lex.NextToken()
		if !t.Type.IsHidden() {
			return t
		}
	}
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.fetch()
}

func (p *Parser) errorAt(pos token.Position, kind ErrorKind, message string) {
	p.errors.AddError(NewError(Position{Filename: p.filename, Line: pos.Line, Column: pos.Column}, kind, message))
}

// recover implements the error-recovery state machine: discard tokens
// up to and including the next NEWLINE (or stop at EOF), so the next
// statement starts clean.
func (p *Parser) recover() {
	for p.cur.Type != token.NEWLINE && p.cur.Type != token.EOF {
		p.next()
	}
	if p.cur.Type == token.NEWLINE {
		p.next()
	}
}

// Parse runs the Program grammar to completion and returns the
// assembled Program together with every error and warning collected.
// Parse never returns a nil Program, even when errors.HasErrors() is
// true: partial results are always available for tooling to inspect.
func (p *Parser) Parse() (*Program, *ErrorList) {
	for p.cur.Type == token.NEWLINE {
		p.next()
	}

	for p.cur.Type != token.EOF && p.cur.Type != token.DOT_END {
		p.parseStatement()
	}

	if p.cur.Type == token.DOT_END {
		p.next()
	}
	for p.cur.Type == token.NEWLINE {
		p.next()
	}
	if p.cur.Type != token.EOF {
		p.errorAt(p.cur.Pos, ErrorSyntax, "unexpected tokens after .end")
	}

	for _, name := range p.program.Labels.Unused() {
		p.errors.AddWarning(&Warning{
			Pos:     Position{Filename: p.filename},
			Message: "label defined but never referenced: " + name,
		})
	}

	return p.program, &p.errors
}

// parseStatement parses one line's worth of grammar and recovers from
// any error so the rest of the file is still checked.
func (p *Parser) parseStatement() {
	if p.cur.Type == token.NEWLINE {
		p.next()
		return
	}
	if !p.parseStatementInner() {
		p.recover()
		return
	}
	p.endStatement()
}

// endStatement consumes the NEWLINE a well-formed statement must be
// followed by, or raises a syntax error and recovers.
func (p *Parser) endStatement() {
	switch p.cur.Type {
	case token.NEWLINE:
		p.next()
	case token.EOF, token.DOT_END:
		// Let the caller's loop condition end things; nothing to consume.
	default:
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected end of line")
		p.recover()
	}
}

// parseStatementInner parses exactly one statement-level production and
// reports whether it succeeded. It does not consume the statement's
// trailing NEWLINE.
func (p *Parser) parseStatementInner() bool {
	switch p.cur.Type {
	case token.DOT_DATA, token.DOT_TEXT, token.DOT_BSS:
		p.next()
		return true

	case token.DOT_ORG:
		return p.parseOrgDirective()

	case token.LOCATION_COUNTER:
		return p.parseLocationCounterAssignment()

	case token.DOT_EQU:
		return p.parseEquDirective()

	case token.DOT_BYTE, token.DOT_WORD, token.DOT_LONG, token.DOT_QUAD:
		return p.parseDataDirective()

	case token.DOT_ASCII:
		return p.parseAsciiDirective()

	case token.DOT_FILL:
		return p.parseFillDirective()

	case token.DOT_COMM:
		return p.parseCommDirective()

	case token.DOT_DRIVER:
		return p.parseDriverBlock(false)

	case token.DOT_HANDLER:
		return p.parseDriverBlock(true)

	case token.LABEL:
		return p.parseLabelDefinition()

	case token.IDENT:
		if p.peek.Type == token.EQUALS {
			return p.parseSymbolAssignment()
		}
		p.errorAt(p.cur.Pos, ErrorSyntax, "unexpected identifier: "+p.cur.Lexeme)
		return false

	case token.INSN_0, token.INSN_0_WQ, token.INSN_0_NOSUFF, token.INSN_1_S,
		token.INSN_LEA, token.INSN_1_E, token.INSN_SHIFT, token.INSN_1_M,
		token.INSN_JC, token.INSN_B_E, token.INSN_EXT, token.INSN_IN,
		token.INSN_OUT, token.INSN_IO_S, token.IRET:
		insn, ok := p.parseInstructionStatement()
		if !ok {
			return false
		}
		p.program.Code = append(p.program.Code, insn)
		p.program.Advance(1)
		return true

	case token.ERROR:
		p.errorAt(p.cur.Pos, ErrorLexical, "unexpected character: "+p.cur.Lexeme)
		return false

	default:
		p.errorAt(p.cur.Pos, ErrorSyntax, "unexpected token: "+p.cur.Type.String())
		return false
	}
}

// parseLabelDefinition handles "name:" at the current location counter,
// then continues parsing whatever follows on the same line (another
// label, or an instruction), per the common "label: mov ..." idiom.
func (p *Parser) parseLabelDefinition() bool {
	name := p.cur.Lexeme
	pos := p.cur.Pos
	p.next()
	if !p.program.Labels.Define(name, p.program.LocationCounter()) {
		p.errorAt(pos, ErrorDuplicateLabel, "label already defined: "+name)
		return false
	}
	if p.cur.Type == token.NEWLINE || p.cur.Type == token.EOF || p.cur.Type == token.DOT_END {
		return true
	}
	return p.parseStatementInner()
}

// parseLocationCounterAssignment handles ". = Expression".
func (p *Parser) parseLocationCounterAssignment() bool {
	p.next() // consume '.'
	if !p.expect(token.EQUALS, "'='") {
		return false
	}
	v, ok := p.parseExpression()
	if !ok {
		return false
	}
	p.program.SetLocationCounter(uint64(v))
	return true
}

// parseOrgDirective handles ".org Expression" and its comma-prefixed
// form ".org , Expression", both of which set the location counter.
// Spec.md §4.5 leaves the comma form's purpose ambiguous; it is treated
// as a synonym for the plain form (see DESIGN.md).
func (p *Parser) parseOrgDirective() bool {
	p.next() // consume '.org'
	if p.cur.Type == token.COMMA {
		p.next()
	}
	v, ok := p.parseExpression()
	if !ok {
		return false
	}
	p.program.SetLocationCounter(uint64(v))
	return true
}

// parseEquDirective handles ".equ name, Expression".
func (p *Parser) parseEquDirective() bool {
	p.next() // consume '.equ'
	if p.cur.Type != token.IDENT {
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected a symbol name")
		return false
	}
	name := p.cur.Lexeme
	pos := p.cur.Pos
	p.next()
	if !p.expect(token.COMMA, "','") {
		return false
	}
	v, ok := p.parseExpression()
	if !ok {
		return false
	}
	if !p.program.Labels.Define(name, uint64(v)) {
		p.errorAt(pos, ErrorDuplicateLabel, "symbol already defined: "+name)
		return false
	}
	return true
}

// parseSymbolAssignment handles "name = Expression", the bare-equals
// alternative spelling of .equ.
func (p *Parser) parseSymbolAssignment() bool {
	name := p.cur.Lexeme
	pos := p.cur.Pos
	p.next()
	p.next() // consume '='
	v, ok := p.parseExpression()
	if !ok {
		return false
	}
	if !p.program.Labels.Define(name, uint64(v)) {
		p.errorAt(pos, ErrorDuplicateLabel, "symbol already defined: "+name)
		return false
	}
	return true
}

// parseDataDirective handles ".byte/.word/.long/.quad Expression {,
// Expression}", writing each value in little-endian order at its
// directive's width.
func (p *Parser) parseDataDirective() bool {
	width := map[token.Type]int{
		token.DOT_BYTE: 1,
		token.DOT_WORD: 2,
		token.DOT_LONG: 4,
		token.DOT_QUAD: 8,
	}[p.cur.Type]
	p.next()

	for {
		v, ok := p.parseExpression()
		if !ok {
			return false
		}
		p.writeLittleEndian(uint64(v), width)
		if p.cur.Type != token.COMMA {
			break
		}
		p.next()
	}
	return true
}

func (p *Parser) writeLittleEndian(v uint64, width int) {
	bs := make([]byte, width)
	for i := 0; i < width; i++ {
		bs[i] = byte(v >> (8 * i))
	}
	p.program.WriteBytes(bs)
}

// parseAsciiDirective handles ".ascii STRING", writing the decoded bytes
// with no implicit terminator.
func (p *Parser) parseAsciiDirective() bool {
	p.next() // consume '.ascii'
	if p.cur.Type != token.STRING {
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected a string literal")
		return false
	}
	body := stripQuotes(p.cur.Lexeme)
	p.next()
	p.program.WriteBytes(decodeStringLiteral(body))
	return true
}

// parseFillDirective handles ".fill count, size [, value]", writing
// count copies of value's low size bytes (value defaults to 0).
func (p *Parser) parseFillDirective() bool {
	p.next() // consume '.fill'
	count, ok := p.parseExpression()
	if !ok {
		return false
	}
	if !p.expect(token.COMMA, "','") {
		return false
	}
	sizePos := p.cur.Pos
	size, ok := p.parseExpression()
	if !ok {
		return false
	}
	if size < 1 || size > 8 {
		p.errorAt(sizePos, ErrorSemantic, ".fill size must be between 1 and 8")
		return false
	}
	var value int64
	if p.cur.Type == token.COMMA {
		p.next()
		value, ok = p.parseExpression()
		if !ok {
			return false
		}
	}
	for i := int64(0); i < count; i++ {
		p.writeLittleEndian(uint64(value), int(size))
	}
	return true
}

// parseCommDirective handles ".comm name, size": reserves size bytes of
// uninitialized storage for name at the current location counter,
// without writing any bytes (bss semantics).
func (p *Parser) parseCommDirective() bool {
	p.next() // consume '.comm'
	if p.cur.Type != token.IDENT {
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected a symbol name")
		return false
	}
	name := p.cur.Lexeme
	pos := p.cur.Pos
	p.next()
	if !p.expect(token.COMMA, "','") {
		return false
	}
	size, ok := p.parseExpression()
	if !ok {
		return false
	}
	if !p.program.Labels.Define(name, p.program.LocationCounter()) {
		p.errorAt(pos, ErrorDuplicateLabel, "symbol already defined: "+name)
		return false
	}
	p.program.Advance(uint64(size))
	return true
}

// parseDriverBlock handles ".driver INTEGER" or ".handler IDENT",
// collecting the instruction statements that follow (one per line) up
// to and including the terminating "iret", and installing them under
// Program.Drivers keyed by the interrupt number in decimal or by the
// handler name. The NEWLINE after the "iret" is left for the caller.
func (p *Parser) parseDriverBlock(named bool) bool {
	p.next() // consume '.driver' / '.handler'

	var key string
	if named {
		if p.cur.Type != token.IDENT {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected a handler name")
			return false
		}
		key = p.cur.Lexeme
		p.next()
	} else {
		if p.cur.Type != token.INTEGER {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected an interrupt number")
			return false
		}
		n, err := parseIntegerLiteral(p.cur.Lexeme)
		if err != nil {
			p.errorAt(p.cur.Pos, ErrorSemantic, err.Error())
			return false
		}
		key = strconv.FormatInt(n, 10)
		p.next()
	}
	p.endStatement()

	var body []Instruction
	for {
		for p.cur.Type == token.NEWLINE {
			p.next()
		}
		if p.cur.Type == token.EOF || p.cur.Type == token.DOT_END {
			p.errorAt(p.cur.Pos, ErrorSyntax, "driver block missing a terminating iret")
			return false
		}
		if p.cur.Type == token.LABEL {
			name, pos := p.cur.Lexeme, p.cur.Pos
			p.next()
			if !p.program.Labels.Define(name, p.program.LocationCounter()) {
				p.errorAt(pos, ErrorDuplicateLabel, "label already defined: "+name)
				p.recover()
				continue
			}
			if p.cur.Type == token.NEWLINE || p.cur.Type == token.LABEL || p.cur.Type == token.EOF || p.cur.Type == token.DOT_END {
				continue
			}
		}
		insn, ok := p.parseInstructionStatement()
		if !ok {
			p.recover()
			continue
		}
		p.program.Advance(1)
		body = append(body, insn)
		if insn.Mnemonic == "iret" {
			break
		}
		p.endStatement()
	}

	if _, exists := p.program.Drivers[key]; exists {
		p.errorAt(p.cur.Pos, ErrorDuplicateLabel, "driver already installed for: "+key)
		return false
	}
	p.program.Drivers[key] = body
	return true
}

// Errors returns every error and warning collected so far.
func (p *Parser) Errors() *ErrorList {
	return &p.errors
}
