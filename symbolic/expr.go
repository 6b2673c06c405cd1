// Package symbolic is a small deterministic symbolic math kernel for the
// calculator: exact rational numbers, named symbols, sums, products, powers
// and single-argument function applications, with rule-based simplification,
// symbolic differentiation and LaTeX output.
//
// The kernel is deliberately closed-world on structure but open on names: a
// *Func may carry any function name. Whether a name means anything numerically
// is decided later, by the namespaces given to Lambdify.
package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is a parsed, immutable expression node. Simplify returns a
// canonical-ish form; it never mutates the receiver.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
}

// Diff returns the simplified derivative of expr with respect to varName.
func Diff(expr Expr, varName string) Expr { return expr.Diff(varName).Simplify() }

// Sub substitutes value for varName and simplifies.
func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

// ============================================================
// Num — exact rational constant
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NumFromString parses a decimal or rational literal ("42", "2.5", "1/3").
func NumFromString(s string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return &Num{val: r}, true
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return sign + "\\frac{" + v.Num().String() + "}{" + v.Denom().String() + "}"
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbolic: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// ============================================================
// Sym — free symbol
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }
func (s *Sym) Name() string   { return s.name }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Fold constants and collect like symbols by coefficient.
	constant := N(0)
	coeffs := map[string]*Num{}
	var order []string
	var rest []Expr
	for _, t := range flat {
		switch v := t.(type) {
		case *Num:
			constant = numAdd(constant, v)
		case *Sym:
			if _, seen := coeffs[v.name]; !seen {
				order = append(order, v.name)
				coeffs[v.name] = N(0)
			}
			coeffs[v.name] = numAdd(coeffs[v.name], N(1))
		default:
			rest = append(rest, t)
		}
	}

	sort.Strings(order)
	out := make([]Expr, 0, len(order)+len(rest)+1)
	for _, name := range order {
		c := coeffs[name]
		switch {
		case c.IsZero():
		case c.IsOne():
			out = append(out, S(name))
		default:
			out = append(out, MulOf(c, S(name)))
		}
	}
	out = append(out, rest...)
	if !constant.IsZero() {
		out = append(out, constant)
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(varName, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(varName string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(varName)
	}
	return AddOf(out...)
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	var rest []Expr
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			rest = append(rest, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(rest) == 0 {
		return coeff
	}

	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })

	if coeff.IsOne() {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Mul{factors: rest}
	}
	return &Mul{factors: append([]Expr{coeff}, rest...)}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "\\left(" + f.LaTeX() + "\\right)"
		} else {
			parts[i] = f.LaTeX()
		}
	}
	return strings.Join(parts, " ")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(varName, value)
	}
	return MulOf(out...)
}

// Diff applies the generalized product rule: sum over i of f_i' * prod_{j!=i} f_j.
func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[i].Diff(varName))
		for j, f := range m.factors {
			if j != i {
				parts = append(parts, f)
			}
		}
		terms[i] = MulOf(parts...)
	}
	return AddOf(terms...)
}

// ============================================================
// Pow — base ** exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			// 0**0 and 0**negative stay symbolic; both are numeric-domain
			// problems, surfaced at evaluation time.
			if en, ok2 := exp.(*Num); ok2 && !en.IsNegative() && !en.IsZero() {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		// Fold small integer powers exactly.
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= -16 && e <= 16 {
				acc := N(1)
				steps := e
				if steps < 0 {
					steps = -steps
				}
				for i := int64(0); i < steps; i++ {
					acc = numMul(acc, bn)
				}
				if e < 0 {
					acc = numRecip(acc)
				}
				return acc
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

// String prints the canonical two-character power operator. Bases and
// exponents that would not re-parse with the right precedence get parens.
func (p *Pow) String() string {
	baseStr := p.base.String()
	if needsParens(p.base) {
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	if expNeedsParens(p.exp) {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "**" + expStr
}

func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return !v.IsInteger() || v.IsNegative()
	}
	return false
}

func expNeedsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul:
		return true
	case *Num:
		return !v.IsInteger()
	}
	return false
}

func (p *Pow) LaTeX() string {
	baseStr := p.base.LaTeX()
	if needsParens(p.base) {
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		// Power rule: d(u^n) = n * u^(n-1) * u'
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		// d(a^v) = a^v * ln(a) * v'
		return MulOf(PowOf(p.base, p.exp), Ln(p.base), dv)
	}
	// General case: d(u^v) = u^v * (v' ln u + v u'/u)
	return MulOf(
		PowOf(p.base, p.exp),
		AddOf(MulOf(dv, Ln(p.base)), MulOf(p.exp, du, PowOf(p.base, N(-1)))),
	)
}

// ============================================================
// Func — named single-argument function application
// ============================================================

type Func struct {
	name string
	arg  Expr
}

// FuncOf builds a function application without checking the name: resolution
// against the calculator's allow-list happens at Lambdify time.
func FuncOf(name string, arg Expr) Expr { return (&Func{name: name, arg: arg}).Simplify() }

func Sin(arg Expr) Expr  { return FuncOf("sin", arg) }
func Cos(arg Expr) Expr  { return FuncOf("cos", arg) }
func Tan(arg Expr) Expr  { return FuncOf("tan", arg) }
func Exp(arg Expr) Expr  { return FuncOf("exp", arg) }
func Ln(arg Expr) Expr   { return FuncOf("ln", arg) }
func Sqrt(arg Expr) Expr { return FuncOf("sqrt", arg) }
func Abs(arg Expr) Expr  { return FuncOf("abs", arg) }

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "sin", "tan", "sinh", "tanh", "asin", "atan":
			if n.IsZero() {
				return N(0)
			}
		case "cos", "cosh", "exp":
			if n.IsZero() {
				return N(1)
			}
		case "ln":
			if n.IsOne() {
				return N(0)
			}
		case "abs":
			if n.IsNegative() {
				return &Num{val: new(big.Rat).Neg(n.val)}
			}
			return n
		case "sqrt":
			if n.IsZero() {
				return N(0)
			}
			if n.IsOne() {
				return N(1)
			}
		}
	}
	if inner, ok := arg.(*Func); ok {
		if f.name == "ln" && inner.name == "exp" {
			return inner.arg
		}
		if f.name == "exp" && inner.name == "ln" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	inner := f.arg.LaTeX()
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "log", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + inner + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + inner + "\\right)"
	case "acos":
		return "\\arccos\\left(" + inner + "\\right)"
	case "atan":
		return "\\arctan\\left(" + inner + "\\right)"
	case "sqrt":
		return "\\sqrt{" + inner + "}"
	case "abs":
		return "\\left|" + inner + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + inner + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return FuncOf(f.name, f.arg.Sub(varName, value))
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = Cos(f.arg)
	case "cos":
		outer = MulOf(N(-1), Sin(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(Tan(f.arg), N(2)))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = FuncOf("cosh", f.arg)
	case "cosh":
		outer = FuncOf("sinh", f.arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(FuncOf("tanh", f.arg), N(2))))
	case "exp":
		outer = Exp(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "log":
		// d log10(u) = 1 / (u ln 10)
		outer = MulOf(PowOf(f.arg, N(-1)), PowOf(Ln(N(10)), N(-1)))
	case "sqrt":
		outer = MulOf(F(1, 2), PowOf(f.arg, F(-1, 2)))
	case "abs":
		outer = FuncOf("sign", f.arg)
	default:
		// No closed-form derivative (factorial, unknown names). The D[...]
		// marker never resolves numerically, so evaluation fails cleanly.
		return MulOf(FuncOf("D["+f.name+"]", f.arg), du)
	}
	return MulOf(outer, du).Simplify()
}

// ============================================================
// Free symbols
// ============================================================

// FreeSymbols returns the set of unbound variable names in e. Function names
// are not symbols; only their arguments are walked.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}
