package calculator

import "fmt"

// ErrorKind classifies every failure the evaluation core can produce. All
// errors crossing the core boundary are *EvalError; nothing propagates as an
// uncaught fault, and caller-visible state is never touched on failure.
type ErrorKind int

const (
	// InvalidExpression: the expression or variable token failed to parse,
	// or direct evaluation hit a runtime problem (domain error, non-finite
	// result).
	InvalidExpression ErrorKind = iota + 1
	// UnknownSymbol: a name resolved to nothing in the registry or the
	// built-in math layer.
	UnknownSymbol
	// IntegrationFailed: quadrature could not produce a value.
	IntegrationFailed
	// DifferentiationFailed: the derivative or its value at the requested
	// point could not be evaluated.
	DifferentiationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidExpression:
		return "invalid expression"
	case UnknownSymbol:
		return "unknown symbol"
	case IntegrationFailed:
		return "integration failed"
	case DifferentiationFailed:
		return "differentiation failed"
	}
	return "evaluation error"
}

// EvalError is the typed failure returned by Evaluate.
type EvalError struct {
	Kind ErrorKind
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Expr, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Expr)
}

func (e *EvalError) Unwrap() error { return e.Err }

func evalErr(kind ErrorKind, expr string, err error) *EvalError {
	return &EvalError{Kind: kind, Expr: expr, Err: err}
}
