package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/mlavoie/calcli/internal/locale"
)

// ParseAndEvaluate is the single entry point of the calculator core. It
// trims the raw input line, decomposes it into <operand><operator><operand>,
// parses both operands as finite decimal numbers, and delegates to Evaluate;
// the evaluator's result or error is returned unchanged.
//
// Operator detection scans the fixed Operators list in declaration order and
// partitions the expression at the first occurrence of the first operator
// symbol whose split yields two parsable operands. There is no tokenizer and
// no notion of precedence; see the package documentation for the unary-minus
// limitation this entails.
//
// Parameters:
//   - rawInput: One user-entered line.
//
// Returns:
//   - Result: The evaluation result on success.
//   - *CalcError: A syntax or evaluation error, nil on success.
func ParseAndEvaluate(rawInput string) (Result, *CalcError) {
	msgs := locale.Current()

	expression := strings.TrimSpace(rawInput)
	if expression == "" {
		return Result{}, NewSyntaxError(expression, msgs.EmptyExpression)
	}

	operatorSeen := false
	for i := 0; i < len(Operators); i++ {
		op := Operators[i]
		idx := strings.IndexByte(expression, op)
		if idx < 0 {
			continue
		}
		operatorSeen = true

		// Both operands are parsed eagerly; the evaluator is only
		// invoked once the whole expression is structurally valid.
		a, okLeft := parseOperand(expression[:idx])
		b, okRight := parseOperand(expression[idx+1:])
		if !okLeft || !okRight {
			continue
		}

		return Evaluate(op, a, b, expression)
	}

	if operatorSeen {
		return Result{}, NewSyntaxError(expression, msgs.InvalidExpression)
	}
	return Result{}, NewSyntaxError(expression, msgs.OperationNotFound)
}

// OperatorOf reports the operator symbol ParseAndEvaluate would select for
// the given input, applying the same fixed-order scan and operand checks.
// It exists so that instrumentation can label outcomes per operator without
// re-evaluating the expression.
func OperatorOf(rawInput string) (byte, bool) {
	expression := strings.TrimSpace(rawInput)
	for i := 0; i < len(Operators); i++ {
		op := Operators[i]
		idx := strings.IndexByte(expression, op)
		if idx < 0 {
			continue
		}
		if _, ok := parseOperand(expression[:idx]); !ok {
			continue
		}
		if _, ok := parseOperand(expression[idx+1:]); !ok {
			continue
		}
		return op, true
	}
	return 0, false
}

// parseOperand trims an operand substring and parses it as a finite decimal
// floating-point number. Partial parses, empty operands, infinities and NaN
// are all rejected.
func parseOperand(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
