package calc

import (
	"errors"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5 plus 3", "5+3"},
		{"12 minus 89", "12-89"},
		{"7 times 6", "7*6"},
		{"divide by 4", "/4"},
		{"multiply by 3", "*3"},
		{"10 modulus 3", "10%3"},
		{"add 5", "+5"},
		{"subtract 2", "-2"},
		{"  = 35 * 6 ", "=35*6"},
		{"5 PLUS 3", "5+3"},
	}
	for _, tt := range tests {
		if got := Preprocess(tt.in); got != tt.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccumulation(t *testing.T) {
	in := New(nil)
	steps := []struct {
		input string
		want  string
	}{
		{"=0", "0"},
		{"5", "5"},
		{"8", "13"},
		{"11", "24"},
	}
	for _, s := range steps {
		out, ok := in.UseCalculator(s.input)
		if !ok {
			t.Fatalf("UseCalculator(%q) not recognized", s.input)
		}
		if out != s.want {
			t.Errorf("UseCalculator(%q) = %q, want %q", s.input, out, s.want)
		}
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"=12-89", "-77"},
		{"=1024/8", "128"},
		{"=35*6", "210"},
		{"=(35*6/10+6)-60", "-33"},
		{"=sqrt(121)", "11"},
		{"=10 modulus 3", "1"},
		{"=2.5+2.5", "5"},
	}
	for _, tt := range tests {
		in := New(nil)
		out, ok := in.UseCalculator(tt.expr)
		if !ok {
			t.Fatalf("UseCalculator(%q) not recognized", tt.expr)
		}
		if out != tt.want {
			t.Errorf("UseCalculator(%q) = %q, want %q", tt.expr, out, tt.want)
		}
	}
}

func TestOperatorContinuesTotal(t *testing.T) {
	in := New(nil)
	in.UseCalculator("=10")
	out, ok := in.UseCalculator("*4")
	if !ok || out != "40" {
		t.Errorf("UseCalculator(*4) = %q, %v, want 40, true", out, ok)
	}
	out, ok = in.UseCalculator("minus 15")
	if !ok || out != "25" {
		t.Errorf("UseCalculator(minus 15) = %q, %v, want 25, true", out, ok)
	}
}

func TestValueSubstitution(t *testing.T) {
	in := New(nil)
	in.UseCalculator("=6")
	out, ok := in.UseCalculator("=value*7")
	if !ok || out != "42" {
		t.Errorf("UseCalculator(=value*7) = %q, %v, want 42, true", out, ok)
	}
}

func TestClearResult(t *testing.T) {
	in := New(nil)
	in.UseCalculator("=99")
	out, ok := in.UseCalculator("clear result")
	if !ok {
		t.Fatal("clear result not recognized")
	}
	if out != ResultCleared {
		t.Errorf("got %q, want %q", out, ResultCleared)
	}
	if in.Total() != "0" {
		t.Errorf("total = %q, want 0", in.Total())
	}
}

func TestNotCalculatorInput(t *testing.T) {
	in := New(nil)
	out, ok := in.UseCalculator("what is an acute triangle")
	if ok {
		t.Errorf("expected not-calculator, got %q", out)
	}
}

func TestErrorsLeaveTotalUnchanged(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"=5/0", ErrDivideByZero.Message()},
		{"=sqrt(-4)", ErrNegativeSqrt.Message()},
		{"=acos(2)", ErrAcosDomain.Message()},
		{"=asin(-3)", ErrAsinDomain.Message()},
		{"=5++*3", ErrIllegalMath.Message()},
	}
	for _, tt := range tests {
		in := New(nil)
		in.UseCalculator("=17")

		out, ok := in.UseCalculator(tt.expr)
		if !ok {
			t.Fatalf("UseCalculator(%q) not recognized", tt.expr)
		}
		if out != tt.want {
			t.Errorf("UseCalculator(%q) = %q, want %q", tt.expr, out, tt.want)
		}
		if in.Total() != "17" {
			t.Errorf("total after %q = %q, want 17", tt.expr, in.Total())
		}
	}
}

func TestEvaluateClassification(t *testing.T) {
	in := New(nil)
	_, err := in.Evaluate("sqrt(-9)")
	if !errors.Is(err, error(ErrNegativeSqrt)) {
		t.Errorf("sqrt(-9): got %v, want %v", err, ErrNegativeSqrt)
	}
	_, err = in.Evaluate("1/0")
	if !errors.Is(err, error(ErrDivideByZero)) {
		t.Errorf("1/0: got %v, want %v", err, ErrDivideByZero)
	}
	_, err = in.Evaluate("not math at all")
	if !errors.Is(err, error(ErrParse)) {
		t.Errorf("parse failure: got %v, want %v", err, ErrParse)
	}
}

func TestGovalEvaluatorFunctions(t *testing.T) {
	var ev GovalEvaluator
	v, err := ev.Evaluate("abs(-3)+atan(0)")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v != 3 {
		t.Errorf("got %v, want 3", v)
	}
}
