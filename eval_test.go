package calculator_test

import (
	"errors"
	"math"
	"testing"

	calculator "github.com/KripaluSonar06/Scientific-Calculator"
)

func evaluate(t *testing.T, expr string) float64 {
	t.Helper()
	res, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: expr}, nil)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", expr, err)
	}
	return res.Value
}

func wantKind(t *testing.T, err error, kind calculator.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %v error, got nil", kind)
	}
	var ee *calculator.EvalError
	if !errors.As(err, &ee) {
		t.Fatalf("want *EvalError, got %T: %v", err, err)
	}
	if ee.Kind != kind {
		t.Errorf("want kind %v, got %v (%v)", kind, ee.Kind, err)
	}
}

// ============================================================
// Direct evaluation
// ============================================================

func TestEvaluate_Arithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"2**10", 1024},
		{"10-4/2", 8},
		{"sqrt(16)", 4},
		{"factorial(5)", 120},
		{"abs(-7)", 7},
	}
	for _, c := range cases {
		if got := evaluate(t, c.expr); got != c.want {
			t.Errorf("%q: want %g, got %g", c.expr, c.want, got)
		}
	}
}

func TestEvaluate_RegistryFunctions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"sin(pi/2)", 1},
		{"ln(e)", 1},
		{"log(100)", 2}, // log is base 10 in the calculator vocabulary
		{"exp(0)", 1},
	}
	for _, c := range cases {
		got := evaluate(t, c.expr)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%q: want %g, got %g", c.expr, c.want, got)
		}
	}
}

func TestEvaluate_Constants(t *testing.T) {
	if got := evaluate(t, "pi"); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("pi: want %g, got %g", math.Pi, got)
	}
	if got := evaluate(t, "2*e"); math.Abs(got-2*math.E) > 1e-15 {
		t.Errorf("2*e: want %g, got %g", 2*math.E, got)
	}
}

func TestEvaluate_StraySymbolBindsToZero(t *testing.T) {
	// Free symbols outside the constant vocabulary evaluate as zero rather
	// than failing, so "x+2" is 2.
	if got := evaluate(t, "x+2"); got != 2 {
		t.Errorf("x+2: want 2, got %g", got)
	}
}

func TestEvaluate_NilRegistryUsesDefault(t *testing.T) {
	res, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: "factorial(4)"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Value != 24 {
		t.Errorf("want 24, got %g", res.Value)
	}
}

func TestEvaluate_InvalidExpression(t *testing.T) {
	for _, expr := range []string{"2+", "2++", "(2+3", ""} {
		_, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: expr}, nil)
		wantKind(t, err, calculator.InvalidExpression)
	}
}

func TestEvaluate_UnknownFunction(t *testing.T) {
	_, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: "foo(2)"}, nil)
	wantKind(t, err, calculator.UnknownSymbol)
}

func TestEvaluate_DomainFailure(t *testing.T) {
	for _, expr := range []string{"factorial(5.5)", "factorial(-1)", "sqrt(-4)"} {
		_, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: expr}, nil)
		wantKind(t, err, calculator.InvalidExpression)
	}
}

func TestEvaluate_NonFiniteResult(t *testing.T) {
	_, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: "2/0"}, nil)
	wantKind(t, err, calculator.InvalidExpression)
}

// ============================================================
// Definite integration
// ============================================================

func TestIntegrate_Polynomial(t *testing.T) {
	res, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "x**2", Variable: "x", Lower: 0, Upper: 1,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Value-1.0/3.0) > 1e-9 {
		t.Errorf("want 1/3, got %g", res.Value)
	}
	if res.AbsError > 1e-9 {
		t.Errorf("error estimate too large: %g", res.AbsError)
	}
}

func TestIntegrate_Trig(t *testing.T) {
	res, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "sin(x)", Variable: "x", Lower: 0, Upper: math.Pi,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Value-2) > 1e-8 {
		t.Errorf("want 2, got %g", res.Value)
	}
}

func TestIntegrate_LargeMagnitude(t *testing.T) {
	res, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "exp(x)", Variable: "x", Lower: 0, Upper: 30,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Exp(30) - 1
	if math.Abs(res.Value-want) > want*1e-8 {
		t.Errorf("want %g, got %g", want, res.Value)
	}
}

func TestIntegrate_ReversedLimits(t *testing.T) {
	res, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "x**2", Variable: "x", Lower: 1, Upper: 0,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Value+1.0/3.0) > 1e-9 {
		t.Errorf("want -1/3, got %g", res.Value)
	}
}

func TestIntegrate_BadExpression(t *testing.T) {
	_, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "x**", Variable: "x", Lower: 0, Upper: 1,
	}, nil)
	wantKind(t, err, calculator.InvalidExpression)
}

func TestIntegrate_BadVariable(t *testing.T) {
	_, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "x**2", Variable: "x+1", Lower: 0, Upper: 1,
	}, nil)
	wantKind(t, err, calculator.InvalidExpression)
}

func TestIntegrate_SingularIntegrand(t *testing.T) {
	_, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "1/x", Variable: "x", Lower: 0, Upper: 1,
	}, nil)
	wantKind(t, err, calculator.IntegrationFailed)
}

func TestIntegrate_InfiniteLimit(t *testing.T) {
	_, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr: "exp(-1*x)", Variable: "x", Lower: 0, Upper: math.Inf(1),
	}, nil)
	wantKind(t, err, calculator.IntegrationFailed)
}

// ============================================================
// Symbolic differentiation
// ============================================================

func TestDifferentiate_Sin(t *testing.T) {
	res, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr: "sin(x)", Variable: "x", Point: 0,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Derivative != "cos(x)" {
		t.Errorf("want derivative cos(x), got %s", res.Derivative)
	}
	if math.Abs(res.Value-1) > 1e-12 {
		t.Errorf("d/dx sin(x) at 0: want 1, got %g", res.Value)
	}
	if res.DerivativeLaTeX != `\cos\left(x\right)` {
		t.Errorf("unexpected LaTeX %q", res.DerivativeLaTeX)
	}
}

func TestDifferentiate_Polynomial(t *testing.T) {
	res, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr: "x**3", Variable: "x", Point: 2,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Derivative != "3*x**2" {
		t.Errorf("want 3*x**2, got %s", res.Derivative)
	}
	if res.Value != 12 {
		t.Errorf("want 12, got %g", res.Value)
	}
}

func TestDifferentiate_BadExpression(t *testing.T) {
	_, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr: "sin(", Variable: "x", Point: 0,
	}, nil)
	wantKind(t, err, calculator.InvalidExpression)
}

func TestDifferentiate_NoClosedForm(t *testing.T) {
	_, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr: "factorial(x)", Variable: "x", Point: 2,
	}, nil)
	wantKind(t, err, calculator.DifferentiationFailed)
}

func TestDifferentiate_SingularPoint(t *testing.T) {
	// d/dx ln(x) = 1/x, infinite at zero.
	_, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr: "ln(x)", Variable: "x", Point: 0,
	}, nil)
	wantKind(t, err, calculator.DifferentiationFailed)
}
