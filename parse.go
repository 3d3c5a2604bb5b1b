package symplot

import (
	"math"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
)

// ============================================================
// Infix parser
// ============================================================
//
//	expr  := term (("+" | "-") term)*
//	term  := unary (("*" | "/") unary)*
//	unary := "-" unary | power
//	power := atom ("^" unary)?
//	atom  := number | const | ident | func "(" expr ")" | "(" expr ")"
//	const := "pi" | "Inf" | "NaN"
//	func  := "sin" | "cos" | "sqrt" | "ln"

var namedConsts = map[string]float64{
	"pi":  math.Pi,
	"Inf": math.Inf(1),
	"NaN": math.NaN(),
}

var funcOps = map[string]Op{
	"sin":  OpSin,
	"cos":  OpCos,
	"sqrt": OpSqrt,
	"ln":   OpLn,
}

type parser struct {
	sc  scanner.Scanner
	tok rune
	err error
}

func newParser(src string) *parser {
	p := &parser{}
	p.sc.Init(strings.NewReader(src))
	p.sc.Mode = scanner.ScanIdents | scanner.ScanFloats | scanner.ScanInts
	p.sc.Error = func(s *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}
	p.next()
	return p
}

func (p *parser) next() { p.tok = p.sc.Scan() }

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = errors.Wrapf(errors.Errorf(format, args...), "parse: column %d", p.sc.Position.Column)
	}
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.fail("expected %s, got %q", scanner.TokenString(tok), p.sc.TokenText())
		return
	}
	p.next()
}

// Parse reads an infix expression such as "sqrt(x^2 + y^2)".
func Parse(src string) (Expr, error) {
	p := newParser(src)
	e, err := Guard(func() Expr { return p.expr() })
	if err := p.finish(err); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseVector reads a parenthesized, comma separated list of expressions
// such as "(cos(t), sin(t), t)".
func ParseVector(src string) (*Vector, error) {
	p := newParser(src)
	var elems []Expr
	_, err := Guard(func() Expr {
		p.expect('(')
		for p.err == nil {
			elems = append(elems, p.expr())
			if p.tok != ',' {
				break
			}
			p.next()
		}
		p.expect(')')
		return nil
	})
	if err := p.finish(err); err != nil {
		return nil, err
	}
	return Vec(elems...), nil
}

// finish reports syntax errors ahead of errors raised while building, since
// the placeholder nodes left by a syntax error can trip the rule table.
func (p *parser) finish(buildErr error) error {
	if p.err == nil && buildErr == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.sc.TokenText())
	}
	if p.err != nil {
		return p.err
	}
	return errors.Wrap(buildErr, "parse")
}

func (p *parser) expr() Expr {
	e := p.term()
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		r := p.term()
		if op == '+' {
			e = AddOf(e, r)
		} else {
			e = SubOf(e, r)
		}
	}
	return e
}

func (p *parser) term() Expr {
	e := p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		op := p.tok
		p.next()
		r := p.unary()
		if op == '*' {
			e = MulOf(e, r)
		} else {
			e = DivOf(e, r)
		}
	}
	return e
}

func (p *parser) unary() Expr {
	if p.tok == '-' {
		p.next()
		return NegOf(p.unary())
	}
	return p.power()
}

func (p *parser) power() Expr {
	base := p.atom()
	if p.err == nil && p.tok == '^' {
		p.next()
		return PowOf(base, p.unary())
	}
	return base
}

func (p *parser) atom() Expr {
	if p.err != nil {
		return C(0)
	}
	switch p.tok {
	case scanner.Int, scanner.Float:
		text := p.sc.TokenText()
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.fail("bad number %q", text)
			return C(0)
		}
		p.next()
		return C(v)
	case scanner.Ident:
		name := p.sc.TokenText()
		p.next()
		if op, ok := funcOps[name]; ok {
			p.expect('(')
			arg := p.expr()
			p.expect(')')
			return unary(op, arg)
		}
		if v, ok := namedConsts[name]; ok {
			return C(v)
		}
		return V(name)
	case '(':
		p.next()
		e := p.expr()
		p.expect(')')
		return e
	}
	if p.tok == scanner.EOF {
		p.fail("unexpected end of input")
	} else {
		p.fail("unexpected %q", p.sc.TokenText())
	}
	return C(0)
}
