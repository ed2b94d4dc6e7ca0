package calc

// Error classifies a failed evaluation. The running total is never mutated
// when an Error is returned.
type Error int

const (
	// ErrDivideByZero: the result was positive or negative infinity.
	ErrDivideByZero Error = iota
	// ErrNegativeSqrt: NaN result from a square root of a negative number.
	ErrNegativeSqrt
	// ErrAcosDomain: acos called outside [-1, 1].
	ErrAcosDomain
	// ErrAsinDomain: asin called outside [-1, 1].
	ErrAsinDomain
	// ErrIllegalMath: the evaluator produced NaN for some other reason.
	ErrIllegalMath
	// ErrParse: the evaluator could not parse the expression.
	ErrParse
)

func (e Error) Error() string {
	switch e {
	case ErrDivideByZero:
		return "divide by zero"
	case ErrNegativeSqrt:
		return "square root of a negative number"
	case ErrAcosDomain:
		return "acos outside its domain"
	case ErrAsinDomain:
		return "asin outside its domain"
	case ErrIllegalMath:
		return "illegal math operation"
	case ErrParse:
		return "unparseable expression"
	}
	return "calculator error"
}

// Message returns the fixed user-facing reply for the error.
func (e Error) Message() string {
	switch e {
	case ErrDivideByZero:
		return "You cannot divide by zero."
	case ErrNegativeSqrt:
		return "You cannot take the square root of a negative number."
	case ErrAcosDomain:
		return "acos is only defined between -1 and 1."
	case ErrAsinDomain:
		return "asin is only defined between -1 and 1."
	}
	return "Please perform a correct operation."
}
