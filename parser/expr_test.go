package parser

import "testing"

func evalExpr(t *testing.T, src string) (int64, *Parser) {
	t.Helper()
	p := NewParser(src, "test.s")
	v, ok := p.parseExpression()
	if !ok {
		t.Fatalf("parseExpression(%q) failed: %v", src, p.errors.Errors)
	}
	return v, p
}

func TestExprPrecedence(t *testing.T) {
	v, _ := evalExpr(t, "2 + 3 * 4")
	if v != 14 {
		t.Errorf("2 + 3 * 4 = %d, want 14", v)
	}
}

func TestExprLeftAssociativity(t *testing.T) {
	v, _ := evalExpr(t, "10 - 3 - 2")
	if v != 5 {
		t.Errorf("10 - 3 - 2 = %d, want 5", v)
	}
	v, _ = evalExpr(t, "100 / 10 / 2")
	if v != 5 {
		t.Errorf("100 / 10 / 2 = %d, want 5", v)
	}
}

func TestExprParentheses(t *testing.T) {
	v, _ := evalExpr(t, "(2 + 3) * 4")
	if v != 20 {
		t.Errorf("(2 + 3) * 4 = %d, want 20", v)
	}
}

func TestExprUnaryMinus(t *testing.T) {
	v, _ := evalExpr(t, "-5 + 3")
	if v != -2 {
		t.Errorf("-5 + 3 = %d, want -2", v)
	}
}

func TestExprHexAndBinaryLiterals(t *testing.T) {
	v, _ := evalExpr(t, "0x10")
	if v != 16 {
		t.Errorf("0x10 = %d, want 16", v)
	}
	v, _ = evalExpr(t, "0b101")
	if v != 5 {
		t.Errorf("0b101 = %d, want 5", v)
	}
}

func TestExprDivisionByZero(t *testing.T) {
	p := NewParser("5 / 0", "test.s")
	_, ok := p.parseExpression()
	if ok {
		t.Fatal("expected division by zero to fail")
	}
	if !p.errors.HasErrors() {
		t.Fatal("expected an error to be recorded")
	}
	if p.errors.Errors[0].Message != "division by zero" {
		t.Errorf("unexpected message: %q", p.errors.Errors[0].Message)
	}
}

func TestExprUndefinedSymbol(t *testing.T) {
	p := NewParser("undefined_symbol", "test.s")
	_, ok := p.parseExpression()
	if ok {
		t.Fatal("expected undefined symbol to fail")
	}
	if p.errors.Errors[0].Kind != ErrorUndefinedLabel {
		t.Errorf("expected ErrorUndefinedLabel, got %v", p.errors.Errors[0].Kind)
	}
}

func TestExprDefinedSymbolResolves(t *testing.T) {
	p := NewParser("foo", "test.s")
	p.program.Labels.Define("foo", 0x1000)
	v, ok := p.parseExpression()
	if !ok {
		t.Fatalf("parseExpression failed: %v", p.errors.Errors)
	}
	if v != 0x1000 {
		t.Errorf("foo = %d, want %d", v, 0x1000)
	}
}

func TestExprLocationCounter(t *testing.T) {
	p := NewParser(".", "test.s")
	p.program.SetLocationCounter(0x2000)
	v, ok := p.parseExpression()
	if !ok {
		t.Fatalf("parseExpression failed: %v", p.errors.Errors)
	}
	if v != 0x2000 {
		t.Errorf(". = %d, want %d", v, 0x2000)
	}
}

func TestExprFlonumRejected(t *testing.T) {
	p := NewParser("0e10", "test.s")
	_, ok := p.parseExpression()
	if ok {
		t.Fatal("expected a FLONUM literal to be rejected")
	}
}

func TestExprMalformedExpression(t *testing.T) {
	p := NewParser("+", "test.s")
	_, ok := p.parseExpression()
	if ok {
		t.Fatal("expected a bare '+' to fail as an expression")
	}
}

func TestExprUnclosedParen(t *testing.T) {
	p := NewParser("(1 + 2", "test.s")
	_, ok := p.parseExpression()
	if ok {
		t.Fatal("expected an unclosed paren to fail")
	}
}
