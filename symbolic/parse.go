package symbolic

import (
	"fmt"
	"strings"
	"text/scanner"
)

// Parse converts a normalized expression string into an expression tree.
//
// Grammar (standard precedence, ** binds tightest and associates right):
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ("+" | "-") factor | power
//	power  = atom [ "**" factor ]
//	atom   = number | ident [ "(" expr ")" ] | "(" expr ")"
//
// The parser is purely syntactic: any identifier is accepted as a symbol or
// function name, and the allow-list is applied later at evaluation time.
func Parse(input string) (Expr, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(input))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(_ *scanner.Scanner, msg string) { p.fail("%s", msg) }

	p.next()
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok != tokEOF {
		return nil, fmt.Errorf("unexpected %q after expression", p.text)
	}
	return e.Simplify(), nil
}

type token int

const (
	tokEOF token = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokInvalid
)

type parser struct {
	s    scanner.Scanner
	tok  token
	text string
	err  error
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *parser) next() {
	r := p.s.Scan()
	p.text = p.s.TokenText()
	switch r {
	case scanner.EOF:
		p.tok = tokEOF
	case scanner.Int, scanner.Float:
		p.tok = tokNumber
	case scanner.Ident:
		p.tok = tokIdent
	case '+':
		p.tok = tokPlus
	case '-':
		p.tok = tokMinus
	case '*':
		if p.s.Peek() == '*' {
			p.s.Next()
			p.tok = tokPow
			p.text = "**"
		} else {
			p.tok = tokStar
		}
	case '/':
		p.tok = tokSlash
	case '(':
		p.tok = tokLParen
	case ')':
		p.tok = tokRParen
	default:
		p.tok = tokInvalid
		p.fail("unexpected character %q", p.text)
	}
}

func (p *parser) expr() (Expr, error) {
	e, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok {
		case tokPlus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			e = AddOf(e, rhs)
		case tokMinus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			e = AddOf(e, MulOf(N(-1), rhs))
		default:
			return e, nil
		}
	}
}

func (p *parser) term() (Expr, error) {
	e, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok {
		case tokStar:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			e = MulOf(e, rhs)
		case tokSlash:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			e = MulOf(e, PowOf(rhs, N(-1)))
		default:
			return e, nil
		}
	}
}

func (p *parser) factor() (Expr, error) {
	switch p.tok {
	case tokPlus:
		p.next()
		return p.factor()
	case tokMinus:
		p.next()
		e, err := p.factor()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.tok != tokPow {
		return base, nil
	}
	p.next()
	// Right-associative, and the exponent may carry a sign: 2**-3.
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) atom() (Expr, error) {
	if p.err != nil {
		return nil, p.err
	}
	switch p.tok {
	case tokNumber:
		n, ok := NumFromString(p.text)
		if !ok {
			return nil, fmt.Errorf("malformed number %q", p.text)
		}
		p.next()
		return n, nil

	case tokIdent:
		name := p.text
		p.next()
		if p.tok != tokLParen {
			return S(name), nil
		}
		p.next()
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok != tokRParen {
			return nil, fmt.Errorf("missing ')' after argument of %s", name)
		}
		p.next()
		return FuncOf(name, arg), nil

	case tokLParen:
		p.next()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok != tokRParen {
			return nil, fmt.Errorf("missing ')'")
		}
		p.next()
		return e, nil

	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected %q", p.text)
}
