package symbolic_test

import (
	"testing"

	"github.com/KripaluSonar06/Scientific-Calculator/symbolic"
)

func mustParse(t *testing.T, input string) symbolic.Expr {
	t.Helper()
	e, err := symbolic.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return e
}

func TestParse_Precedence(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"10-2-3", "5"},
		{"2**3**2", "512"}, // right-associative
		{"-2**2", "-4"},    // unary minus binds looser than **
		{"2**-3", "1/8"},
		{"6/3", "2"},
		{"1/3+1/6", "1/2"},
	}
	for _, c := range cases {
		got := mustParse(t, c.input).String()
		if got != c.want {
			t.Errorf("Parse(%q): want %s, got %s", c.input, c.want, got)
		}
	}
}

func TestParse_UnaryMinus(t *testing.T) {
	if got := mustParse(t, "-x").String(); got != "-1*x" {
		t.Errorf("want -1*x, got %s", got)
	}
	if got := mustParse(t, "--5").String(); got != "5" {
		t.Errorf("want 5, got %s", got)
	}
}

func TestParse_FunctionCall(t *testing.T) {
	e := mustParse(t, "sin(x + 1)")
	f, ok := e.(*symbolic.Func)
	if !ok {
		t.Fatalf("want *Func, got %T", e)
	}
	if f.FuncName() != "sin" {
		t.Errorf("want function sin, got %s", f.FuncName())
	}
	if f.Arg().String() != "x + 1" {
		t.Errorf("want argument 'x + 1', got %s", f.Arg().String())
	}
}

func TestParse_IdentWithoutCallIsSymbol(t *testing.T) {
	e := mustParse(t, "theta")
	if _, ok := e.(*symbolic.Sym); !ok {
		t.Fatalf("want *Sym, got %T", e)
	}
}

func TestParse_DivisionBecomesNegativePower(t *testing.T) {
	// a/b is represented as a * b**-1, so symbolic division of symbols
	// survives as a power term.
	if got := mustParse(t, "x/y").String(); got != "x*y**-1" {
		t.Errorf("want x*y**-1, got %s", got)
	}
}

func TestParse_PowerOfCall(t *testing.T) {
	if got := mustParse(t, "sin(x)**2").String(); got != "sin(x)**2" {
		t.Errorf("want sin(x)**2, got %s", got)
	}
}

func TestParse_Decimal(t *testing.T) {
	if got := mustParse(t, "2.5*2").String(); got != "5" {
		t.Errorf("want 5, got %s", got)
	}
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"2+",
		"2++",
		"*3",
		"(2+3",
		"sin(x",
		"sin()",
		"2 3 4 !",
		"2 @ 3",
	}
	for _, input := range bad {
		if _, err := symbolic.Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestParse_TrailingInput(t *testing.T) {
	if _, err := symbolic.Parse("2+3 x"); err == nil {
		t.Errorf("trailing token should be rejected")
	}
}
