package parser

import (
	"strconv"
	"strings"

	"github.com/lbrn/x64asm/token"
)

// parseExpression implements a recursive-descent calculator:
//
//	Expression = Term { ('+'|'-') Term }
//	Term       = Primary { ('*'|'/') Primary }
//	Primary    = INTEGER | '.' | LABEL_NAME | '(' Expression ')' | '-' Primary
//
// It returns the 64-bit signed result and true, or false if a
// ParseError was raised (already appended to p.errors).
func (p *Parser) parseExpression() (int64, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return 0, false
	}
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := p.cur.Type
		p.next()
		right, ok := p.parseTerm()
		if !ok {
			return 0, false
		}
		if op == token.PLUS {
			left += right
		} else {
			left -= right
		}
	}
	return left, true
}

func (p *Parser) parseTerm() (int64, bool) {
	left, ok := p.parsePrimary()
	if !ok {
		return 0, false
	}
	for p.cur.Type == token.STAR || p.cur.Type == token.SLASH {
		op := p.cur.Type
		opPos := p.cur.Pos
		p.next()
		right, ok := p.parsePrimary()
		if !ok {
			return 0, false
		}
		if op == token.STAR {
			left *= right
		} else {
			if right == 0 {
				p.errorAt(opPos, ErrorSemantic, "division by zero")
				return 0, false
			}
			left /= right
		}
	}
	return left, true
}

func (p *Parser) parsePrimary() (int64, bool) {
	switch p.cur.Type {
	case token.INTEGER:
		lexeme := p.cur.Lexeme
		pos := p.cur.Pos
		p.next()
		v, err := parseIntegerLiteral(lexeme)
		if err != nil {
			p.errorAt(pos, ErrorSemantic, err.Error())
			return 0, false
		}
		return v, true

	case token.LOCATION_COUNTER:
		p.next()
		return int64(p.program.LocationCounter()), true

	case token.IDENT:
		name := p.cur.Lexeme
		pos := p.cur.Pos
		p.next()
		addr, ok := p.program.Labels.Lookup(name)
		if !ok {
			msg := "undefined symbol: " + name
			if p.labelErrorOverride != "" {
				msg = p.labelErrorOverride
			}
			p.errorAt(pos, ErrorUndefinedLabel, msg)
			return 0, false
		}
		return int64(addr), true

	case token.LPAREN:
		p.next()
		v, ok := p.parseExpression()
		if !ok {
			return 0, false
		}
		if p.cur.Type != token.RPAREN {
			p.errorAt(p.cur.Pos, ErrorSyntax, "expected ')'")
			return 0, false
		}
		p.next()
		return v, true

	case token.MINUS:
		p.next()
		v, ok := p.parsePrimary()
		if !ok {
			return 0, false
		}
		return -v, true

	case token.ERROR:
		p.errorAt(p.cur.Pos, ErrorLexical, "unexpected character: "+p.cur.Lexeme)
		return 0, false

	default:
		p.errorAt(p.cur.Pos, ErrorSyntax, "expected an expression")
		return 0, false
	}
}

// parseIntegerLiteral converts an INTEGER token's lexeme (decimal, 0x
// hex, 0b binary, or the reserved 0e FLONUM form) to its value.
func parseIntegerLiteral(lexeme string) (int64, error) {
	lower := strings.ToLower(lexeme)

	switch {
	case strings.HasPrefix(lower, "0x"):
		v, err := strconv.ParseUint(lower[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		return int64(v), nil

	case strings.HasPrefix(lower, "0b"):
		v, err := strconv.ParseUint(lower[2:], 2, 64)
		if err != nil {
			return 0, err
		}
		return int64(v), nil

	case len(lower) > 1 && lower[0] == '0' && lower[1] == 'e':
		return 0, errFlonumUnsupported

	default:
		v, err := strconv.ParseInt(lower, 10, 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	}
}

var errFlonumUnsupported = flonumError{}

type flonumError struct{}

func (flonumError) Error() string { return "FLONUMS are still not supported" }
