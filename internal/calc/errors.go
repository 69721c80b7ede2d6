package calc

import (
	"fmt"

	"github.com/mlavoie/calcli/internal/locale"
)

// ErrorCode is the coarse category of a calculator failure.
type ErrorCode string

// The two error categories of the calculator core. Syntax errors are
// detected by the parser before any evaluation is attempted; evaluation
// errors are raised by the evaluator for structurally valid expressions
// whose operation is mathematically undefined.
const (
	SyntaxError     ErrorCode = "SYNTAX_ERROR"
	EvaluationError ErrorCode = "EVALUATION_ERROR"
)

// CalcError is the structured failure value returned by the calculator core.
// It is constructed at the point of detection, is immutable afterwards, and
// carries everything the output layer needs to render the failure: the coarse
// Code, a short human Description, the originating Expression (echoed back to
// the user with a caret underline), and the full explanatory Details message.
//
// CalcError carries no behavior beyond the error interface; callers must
// preserve the Code/Description/Details distinction when rendering.
type CalcError struct {
	// Code is the coarse error category.
	Code ErrorCode
	// Description is the short localized label for the category.
	Description string
	// Expression is the trimmed input that failed, kept for error context.
	Expression string
	// Details is the full localized explanation of the failure.
	Details string
}

// Error returns the description and details joined for use in logs and
// wrapped error chains. Interactive rendering goes through the presenter,
// which keeps the fields separate.
func (e *CalcError) Error() string {
	return fmt.Sprintf("%s: %s", e.Description, e.Details)
}

// NewSyntaxError creates a CalcError for a malformed expression.
//
// Parameters:
//   - expression: The trimmed input that could not be decomposed.
//   - details: The localized explanation.
//
// Returns:
//   - *CalcError: A new syntax error value.
func NewSyntaxError(expression, details string) *CalcError {
	return &CalcError{
		Code:        SyntaxError,
		Description: locale.Current().DescSyntaxError,
		Expression:  expression,
		Details:     details,
	}
}

// NewEvaluationError creates a CalcError for a structurally valid expression
// whose operation is mathematically undefined for the given operands.
//
// Parameters:
//   - expression: The trimmed input being evaluated.
//   - details: The localized explanation.
//
// Returns:
//   - *CalcError: A new evaluation error value.
func NewEvaluationError(expression, details string) *CalcError {
	return &CalcError{
		Code:        EvaluationError,
		Description: locale.Current().DescEvaluationError,
		Expression:  expression,
		Details:     details,
	}
}
