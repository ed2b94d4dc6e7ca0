// Package calc is the arithmetic micro-interpreter: it rewrites
// natural-language math phrases into infix expressions and accumulates a
// running total across turns. Numeric evaluation is delegated to an
// Evaluator collaborator.
package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ResultCleared is the confirmation reply for the "clear result" phrase.
const ResultCleared = "The calculator result has been cleared."

// wordOps rewrites math words into operators. Order matters: longer phrases
// run before their substrings ("multiply by" before "multiply").
var wordOps = []struct{ word, op string }{
	{"multiply by", "*"},
	{"divide by", "/"},
	{"subtract", "-"},
	{"multiply", "*"},
	{"modulus", "%"},
	{"divide", "/"},
	{"times", "*"},
	{"minus", "-"},
	{"plus", "+"},
	{"add", "+"},
}

// Preprocess lower-cases text, rewrites math words into operators, and
// strips all whitespace.
func Preprocess(text string) string {
	out := strings.ToLower(text)
	for _, r := range wordOps {
		out = strings.ReplaceAll(out, r.word, r.op)
	}
	var sb strings.Builder
	for _, r := range out {
		if !unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Interpreter holds the per-session running total. Callers serialize access;
// one conversation never evaluates two inputs at once.
type Interpreter struct {
	eval  Evaluator
	total string
}

// New creates an interpreter. A nil evaluator gets the govaluate-backed one.
func New(eval Evaluator) *Interpreter {
	if eval == nil {
		eval = GovalEvaluator{}
	}
	return &Interpreter{eval: eval, total: "0"}
}

// Total returns the string form of the last valid numeric result.
func (in *Interpreter) Total() string {
	return in.total
}

// Evaluate runs expr through the evaluator and classifies the outcome.
func (in *Interpreter) Evaluate(expr string) (string, error) {
	v, err := in.eval.Evaluate(expr)
	if err != nil {
		return "", ErrParse
	}

	low := strings.ToLower(expr)
	switch {
	case math.IsInf(v, 0):
		return "", ErrDivideByZero
	case math.IsNaN(v) && strings.Contains(low, "sqrt(-"):
		return "", ErrNegativeSqrt
	case math.IsNaN(v) && strings.Contains(low, "acos("):
		return "", ErrAcosDomain
	case math.IsNaN(v) && strings.Contains(low, "asin("):
		return "", ErrAsinDomain
	case math.IsNaN(v):
		return "", ErrIllegalMath
	}

	// FormatFloat always uses "." as the decimal separator regardless of
	// locale, and -1 drops trailing zeros for integral results.
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// WriteInput folds one preprocessed input into the running total. A leading
// "=" starts a fresh expression; a leading operator continues the total;
// anything else is implicitly added. Failures leave the total unchanged.
func (in *Interpreter) WriteInput(raw string) error {
	p := Preprocess(raw)

	var expr string
	switch {
	case strings.HasPrefix(p, "="):
		expr = p[1:]
	case strings.HasPrefix(p, "+"), strings.HasPrefix(p, "-"),
		strings.HasPrefix(p, "*"), strings.HasPrefix(p, "/"):
		expr = in.total + p
	default:
		if p == "value" {
			return nil
		}
		expr = in.total + "+" + p
	}

	res, err := in.Evaluate(expr)
	if err != nil {
		return err
	}
	in.total = res
	return nil
}

// UseCalculator decides whether text is calculator input and, if so,
// processes it. The second return is false when the text is not calculator
// input at all (no digits), which is distinct from an evaluation failure:
// failures return the fixed user-facing message with true.
func (in *Interpreter) UseCalculator(text string) (string, bool) {
	if in.total == "" {
		in.total = "0"
	}

	// "value" is a placeholder for the current total, substituted before
	// anything else looks at the text.
	text = strings.ReplaceAll(text, "value", in.total)

	if strings.TrimSpace(strings.ToLower(text)) == "clear result" {
		in.total = "0"
		return ResultCleared, true
	}

	if !strings.ContainsFunc(text, unicode.IsDigit) {
		return "", false
	}

	if err := in.WriteInput(text); err != nil {
		var ce Error
		if errors.As(err, &ce) {
			return ce.Message(), true
		}
		return ErrIllegalMath.Message(), true
	}
	return in.total, true
}
