package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/KripaluSonar06/Scientific-Calculator/quadrature"
	"github.com/KripaluSonar06/Scientific-Calculator/symbolic"
)

// Evaluate runs one operation against the registry allow-list. Each call is
// pure, synchronous and independent; reg may be shared freely. A nil reg
// means DefaultRegistry().
func Evaluate(req Request, reg *Registry) (*Result, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	switch q := req.(type) {
	case EvaluateRequest:
		return evaluateDirect(q, reg)
	case IntegrateRequest:
		return integrate(q, reg)
	case DifferentiateRequest:
		return differentiate(q, reg)
	}
	return nil, evalErr(InvalidExpression, "", fmt.Errorf("unsupported request type %T", req))
}

func evaluateDirect(q EvaluateRequest, reg *Registry) (*Result, error) {
	expr, err := symbolic.Parse(q.Expr)
	if err != nil {
		return nil, evalErr(InvalidExpression, q.Expr, err)
	}

	// Free symbols bind to registry constants when named there; anything
	// else binds to zero, matching the original calculator's behavior for
	// stray identifiers. Unknown *function* names still fail below.
	vars := map[string]float64{}
	for name := range symbolic.FreeSymbols(expr) {
		if _, ok := reg.Const(name); !ok {
			vars[name] = 0
		}
	}

	fn := symbolic.Lambdify(expr, reg)
	v, err := fn(vars)
	if err != nil {
		var unresolved *symbolic.UnresolvedError
		if errors.As(err, &unresolved) {
			return nil, evalErr(UnknownSymbol, q.Expr, err)
		}
		return nil, evalErr(InvalidExpression, q.Expr, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, evalErr(InvalidExpression, q.Expr, fmt.Errorf("result is not finite"))
	}
	return &Result{Value: v}, nil
}

// parseVariable accepts exactly one symbol token ("x", "theta").
func parseVariable(token string) (string, error) {
	expr, err := symbolic.Parse(token)
	if err != nil {
		return "", err
	}
	sym, ok := expr.(*symbolic.Sym)
	if !ok {
		return "", fmt.Errorf("%q is not a single variable", token)
	}
	return sym.Name(), nil
}

func integrate(q IntegrateRequest, reg *Registry) (*Result, error) {
	variable, err := parseVariable(q.Variable)
	if err != nil {
		return nil, evalErr(InvalidExpression, q.Variable, err)
	}
	expr, err := symbolic.Parse(q.Expr)
	if err != nil {
		return nil, evalErr(InvalidExpression, q.Expr, err)
	}

	fn := symbolic.Lambdify(expr, reg)
	integrand := func(x float64) float64 {
		v, err := fn(map[string]float64{variable: x})
		if err != nil {
			return math.NaN()
		}
		return v
	}

	value, absErr, err := quadrature.Quad(integrand, q.Lower, q.Upper)
	if err != nil {
		return nil, evalErr(IntegrationFailed, q.Expr, err)
	}
	return &Result{Value: value, AbsError: absErr}, nil
}

func differentiate(q DifferentiateRequest, reg *Registry) (*Result, error) {
	variable, err := parseVariable(q.Variable)
	if err != nil {
		return nil, evalErr(InvalidExpression, q.Variable, err)
	}
	expr, err := symbolic.Parse(q.Expr)
	if err != nil {
		return nil, evalErr(InvalidExpression, q.Expr, err)
	}

	derivative := symbolic.Diff(expr, variable)

	fn := symbolic.Lambdify(derivative, reg)
	v, err := fn(map[string]float64{variable: q.Point})
	if err != nil {
		return nil, evalErr(DifferentiationFailed, q.Expr, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, evalErr(DifferentiationFailed, q.Expr,
			fmt.Errorf("derivative is not finite at %s=%g", variable, q.Point))
	}
	return &Result{
		Value:           v,
		Derivative:      derivative.String(),
		DerivativeLaTeX: derivative.LaTeX(),
	}, nil
}
