package calc

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Evaluator is the arithmetic-expression collaborator. It must return the
// raw float64 result (including NaN and infinities) so failures can be
// classified, and a SyntaxError for anything it cannot parse.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// SyntaxError wraps an evaluator-level parse failure.
type SyntaxError struct {
	Cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %v", e.Cause)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// exprFunctions exposes the math functions the tutor supports inside
// expressions. All of them pass NaN through so domain failures surface in
// the result rather than as errors.
var exprFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt": unaryFunc(math.Sqrt),
	"acos": unaryFunc(math.Acos),
	"asin": unaryFunc(math.Asin),
	"atan": unaryFunc(math.Atan),
	"abs":  unaryFunc(math.Abs),
	"log":  unaryFunc(math.Log),
}

func unaryFunc(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %T", args[0])
		}
		return fn(v), nil
	}
}

// GovalEvaluator evaluates infix arithmetic with govaluate.
type GovalEvaluator struct{}

// Evaluate parses and evaluates one expression.
func (GovalEvaluator) Evaluate(expr string) (float64, error) {
	ee, err := govaluate.NewEvaluableExpressionWithFunctions(expr, exprFunctions)
	if err != nil {
		return 0, &SyntaxError{Cause: err}
	}
	v, err := ee.Evaluate(nil)
	if err != nil {
		return 0, &SyntaxError{Cause: err}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &SyntaxError{Cause: fmt.Errorf("non-numeric result %T", v)}
	}
	return f, nil
}
