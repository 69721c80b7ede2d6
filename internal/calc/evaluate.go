package calc

import (
	"math"
	"strconv"

	"github.com/mlavoie/calcli/internal/locale"
)

// Operators is the fixed, closed set of operator symbols in declaration
// order. The order is significant: the parser scans this string front to
// back when locating the split point of an expression.
const Operators = "+-*/^="

// IsOperator reports whether c is one of the supported operator symbols.
func IsOperator(c byte) bool {
	for i := 0; i < len(Operators); i++ {
		if Operators[i] == c {
			return true
		}
	}
	return false
}

// Result is the success value of an evaluation. Most operators produce a
// number; the equality operator is the outlier and produces a localized
// display string ("Oui"/"Non") instead.
type Result struct {
	// Value is the numeric result, meaningful when Display is empty.
	Value float64
	// Display is the human-readable result of the equality operator.
	Display string
}

// String renders the result for the user: the display string when present,
// otherwise the shortest decimal representation of the value.
func (r Result) String() string {
	if r.Display != "" {
		return r.Display
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Evaluate computes op applied to the operands a and b. The expression is
// carried along only so that failures can echo it back to the user.
//
// Division by zero, 0^0, and a negative base raised to a non-integer
// exponent are evaluation errors, as is any operator outside the supported
// set. Equality comparison uses exact IEEE equality with no tolerance.
//
// Parameters:
//   - op: The operator symbol.
//   - a: The left operand.
//   - b: The right operand.
//   - expression: The original trimmed input, for error context.
//
// Returns:
//   - Result: The computed result on success.
//   - *CalcError: The failure value, nil on success.
func Evaluate(op byte, a, b float64, expression string) (Result, *CalcError) {
	msgs := locale.Current()

	switch op {
	case '+':
		return Result{Value: a + b}, nil
	case '-':
		return Result{Value: a - b}, nil
	case '*':
		return Result{Value: a * b}, nil
	case '/':
		if b == 0 {
			return Result{}, NewEvaluationError(expression, msgs.DivisionByZero)
		}
		return Result{Value: a / b}, nil
	case '^':
		return evaluatePower(a, b, expression)
	case '=':
		if a == b {
			return Result{Display: msgs.Yes}, nil
		}
		return Result{Display: msgs.No}, nil
	default:
		return Result{}, NewEvaluationError(expression, msgs.UnsupportedOperation)
	}
}

// evaluatePower computes a^b. The domain checks run against the original
// sign of b; only afterwards is a negative exponent rewritten as
// 1 / (a ^ |b|).
func evaluatePower(a, b float64, expression string) (Result, *CalcError) {
	msgs := locale.Current()

	if a == 0 && b == 0 {
		return Result{}, NewEvaluationError(expression, msgs.ZeroPowerZero)
	}
	if a < 0 && !isWholeNumber(b) {
		return Result{}, NewEvaluationError(expression, msgs.NegativeBasePower)
	}
	if b < 0 {
		return Result{Value: 1 / math.Pow(a, math.Abs(b))}, nil
	}
	return Result{Value: math.Pow(a, b)}, nil
}

// isWholeNumber reports whether f has no fractional part.
func isWholeNumber(f float64) bool {
	return f == math.Trunc(f)
}
