package calculator

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry is the fixed allow-list of function and constant names an
// expression may resolve to at evaluation time. It is read-only after
// construction and safe to share across concurrent evaluations.
//
// It implements symbolic.Namespace and is always installed ahead of the
// built-in math layer, so calculator semantics win where the two overlap
// (log means base 10 here, not natural log).
type Registry struct {
	funcs  map[string]func(float64) float64
	consts map[string]float64
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the shared process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// NewRegistry builds the calculator vocabulary: trig and hyperbolic
// functions with their inverses, log (base 10), ln, sqrt, exp, abs,
// factorial, and the constants pi and e.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]func(float64) float64{
			"sin":       math.Sin,
			"cos":       math.Cos,
			"tan":       math.Tan,
			"asin":      math.Asin,
			"acos":      math.Acos,
			"atan":      math.Atan,
			"sinh":      math.Sinh,
			"cosh":      math.Cosh,
			"tanh":      math.Tanh,
			"log":       math.Log10,
			"ln":        math.Log,
			"sqrt":      math.Sqrt,
			"exp":       math.Exp,
			"abs":       math.Abs,
			"factorial": factorial,
		},
		consts: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
}

// Func resolves a function name; part of the symbolic.Namespace contract.
func (r *Registry) Func(name string) (func(float64) float64, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Const resolves a constant name; part of the symbolic.Namespace contract.
func (r *Registry) Const(name string) (float64, bool) {
	v, ok := r.consts[name]
	return v, ok
}

// FuncNames returns the sorted function vocabulary.
func (r *Registry) FuncNames() []string {
	names := maps.Keys(r.funcs)
	slices.Sort(names)
	return names
}

// ConstNames returns the sorted constant vocabulary.
func (r *Registry) ConstNames() []string {
	names := maps.Keys(r.consts)
	slices.Sort(names)
	return names
}

// factorial is defined on non-negative integers only; anything else is a
// domain error (NaN), which evaluation converts to a typed failure.
// 170! is the largest factorial representable in a float64.
func factorial(x float64) float64 {
	if x < 0 || x != math.Trunc(x) || x > 170 {
		return math.NaN()
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r
}
