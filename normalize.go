// Package calculator is the expression-evaluation core of the scientific
// calculator: a normalizer that rewrites user-facing tokens into the form the
// symbolic parser accepts, a fixed function/constant registry acting as the
// evaluation allow-list, and a stateless Evaluate covering direct evaluation,
// definite integration and symbolic differentiation.
package calculator

import "strings"

// normalizer rewrites presentation tokens into canonical form. The token
// sets are disjoint, so substitution order does not affect the result.
var normalizer = strings.NewReplacer(
	"➕", "+",
	"➖", "-",
	"✖️", "*",
	"➗", "/",
	"×", "*",
	"÷", "/",
	"π", "pi",
	"^", "**",
)

// displayer is the presentation-side counterpart: canonical and shorthand
// tokens become human-friendly math glyphs. "**" is listed before "*" so the
// power operator is matched whole.
var displayer = strings.NewReplacer(
	"➕", "+",
	"➖", "-",
	"✖️", "×",
	"➗", "÷",
	"**", "^",
	"*", "×",
	"/", "÷",
)

// Normalize maps a raw input string into the canonical textual form accepted
// by the symbolic parser. It is a total function: any string in, some string
// out, and it is idempotent on its own output.
func Normalize(raw string) string { return normalizer.Replace(raw) }

// ToDisplay converts an expression to its on-screen rendering. It is never
// applied to the string that reaches evaluation.
func ToDisplay(expr string) string { return displayer.Replace(expr) }
