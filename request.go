package calculator

// Request is the closed set of operations the core accepts. Modeling the
// modes as a tagged variant keeps the contract independent of any particular
// front end's button layout.
type Request interface{ isRequest() }

// EvaluateRequest computes the numeric value of a normalized expression.
type EvaluateRequest struct {
	Expr string
}

// IntegrateRequest numerically integrates Expr over [Lower, Upper] with
// respect to Variable. Reversed limits are allowed and flip the sign.
type IntegrateRequest struct {
	Expr     string
	Variable string
	Lower    float64
	Upper    float64
}

// DifferentiateRequest computes the exact symbolic derivative of Expr with
// respect to Variable and evaluates it at Point.
type DifferentiateRequest struct {
	Expr     string
	Variable string
	Point    float64
}

func (EvaluateRequest) isRequest()      {}
func (IntegrateRequest) isRequest()     {}
func (DifferentiateRequest) isRequest() {}

// Result carries the outcome of a successful request. Value is always set;
// AbsError only for integration; Derivative and DerivativeLaTeX only for
// differentiation.
type Result struct {
	Value           float64
	AbsError        float64
	Derivative      string
	DerivativeLaTeX string
}
