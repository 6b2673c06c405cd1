package symbolic

import (
	"fmt"
	"math"
)

// Namespace resolves function and constant names during numeric evaluation.
// The calculator's registry is one implementation; the built-in math layer is
// the implicit last element of every chain.
type Namespace interface {
	Func(name string) (func(float64) float64, bool)
	Const(name string) (float64, bool)
}

// UnresolvedError reports a name that no namespace in the chain could resolve.
type UnresolvedError struct{ Name string }

func (e *UnresolvedError) Error() string { return fmt.Sprintf("unknown symbol %q", e.Name) }

// DomainError reports a numeric operation that left the real domain
// (sqrt of a negative, factorial of 2.5, log of zero).
type DomainError struct {
	Name string
	Arg  float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s(%g) is undefined", e.Name, e.Arg)
}

// Evaluator is a numeric callable produced by Lambdify. vars binds free
// symbols by name; names absent from vars fall back to namespace constants.
type Evaluator func(vars map[string]float64) (float64, error)

// Lambdify converts an expression tree into a numeric function. Name lookup
// walks the given namespaces in order and ends at the built-in math layer, so
// calculator-specific names (ln, factorial) and standard primitives both
// resolve; anything else fails with *UnresolvedError on invocation.
func Lambdify(e Expr, namespaces ...Namespace) Evaluator {
	chain := make([]Namespace, 0, len(namespaces)+1)
	chain = append(chain, namespaces...)
	chain = append(chain, builtinNamespace{})
	return func(vars map[string]float64) (float64, error) {
		return evalNumeric(e, vars, chain)
	}
}

func resolveFunc(name string, chain []Namespace) (func(float64) float64, bool) {
	for _, ns := range chain {
		if fn, ok := ns.Func(name); ok {
			return fn, true
		}
	}
	return nil, false
}

func resolveConst(name string, chain []Namespace) (float64, bool) {
	for _, ns := range chain {
		if v, ok := ns.Const(name); ok {
			return v, true
		}
	}
	return 0, false
}

func evalNumeric(e Expr, vars map[string]float64, chain []Namespace) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil

	case *Sym:
		if val, ok := vars[v.name]; ok {
			return val, nil
		}
		if val, ok := resolveConst(v.name, chain); ok {
			return val, nil
		}
		return 0, &UnresolvedError{Name: v.name}

	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := evalNumeric(t, vars, chain)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil

	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := evalNumeric(f, vars, chain)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil

	case *Pow:
		base, err := evalNumeric(v.base, vars, chain)
		if err != nil {
			return 0, err
		}
		exp, err := evalNumeric(v.exp, vars, chain)
		if err != nil {
			return 0, err
		}
		r := math.Pow(base, exp)
		if math.IsNaN(r) {
			return 0, &DomainError{Name: "pow", Arg: base}
		}
		return r, nil

	case *Func:
		arg, err := evalNumeric(v.arg, vars, chain)
		if err != nil {
			return 0, err
		}
		fn, ok := resolveFunc(v.name, chain)
		if !ok {
			return 0, &UnresolvedError{Name: v.name}
		}
		r := fn(arg)
		if math.IsNaN(r) {
			return 0, &DomainError{Name: v.name, Arg: arg}
		}
		return r, nil
	}
	return 0, fmt.Errorf("cannot evaluate %T", e)
}

// builtinNamespace is the terminal resolution layer: Go's math package plus
// the constants pi and e. It plays the role the numeric-array library plays
// for the registry in the original design.
type builtinNamespace struct{}

var builtinFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"log":   math.Log,
	"ln":    math.Log,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"sign": func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	},
}

func (builtinNamespace) Func(name string) (func(float64) float64, bool) {
	fn, ok := builtinFuncs[name]
	return fn, ok
}

func (builtinNamespace) Const(name string) (float64, bool) {
	switch name {
	case "pi":
		return math.Pi, true
	case "e":
		return math.E, true
	}
	return 0, false
}
