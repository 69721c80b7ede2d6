package calc

import (
	"fmt"
	"math"
	"testing"

	"github.com/mlavoie/calcli/internal/locale"
)

func TestParseAndEvaluate_Success(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"addition", "2 + 3", 5},
		{"addition no spaces", "2+3", 5},
		{"addition extra whitespace", "  2   +   3  ", 5},
		{"subtraction", "10 - 4", 6},
		{"multiplication", "6 * 7", 42},
		{"division", "10 / 4", 2.5},
		{"power", "2 ^ 10", 1024},
		{"negative exponent", "2 ^ -2", 0.25},
		{"negative left operand", "-5 + 3", -2},
		{"negative right operand", "5 + -3", 2},
		{"negative operand with multiplication", "5 * -3", -15},
		{"decimal operands", "1.5 * 2", 3},
		{"scientific notation", "1e2 + 1", 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, calcErr := ParseAndEvaluate(tt.input)
			if calcErr != nil {
				t.Fatalf("ParseAndEvaluate(%q) unexpected error: %v", tt.input, calcErr)
			}
			if math.Abs(result.Value-tt.want) > 1e-12 {
				t.Errorf("ParseAndEvaluate(%q) = %v, want %v", tt.input, result.Value, tt.want)
			}
		})
	}
}

func TestParseAndEvaluate_Equality(t *testing.T) {
	msgs := locale.Current()

	result, calcErr := ParseAndEvaluate("3 = 3")
	if calcErr != nil {
		t.Fatalf("unexpected error: %v", calcErr)
	}
	if result.String() != msgs.Yes {
		t.Errorf("ParseAndEvaluate(\"3 = 3\") = %q, want %q", result.String(), msgs.Yes)
	}

	result, calcErr = ParseAndEvaluate("3 = 4")
	if calcErr != nil {
		t.Fatalf("unexpected error: %v", calcErr)
	}
	if result.String() != msgs.No {
		t.Errorf("ParseAndEvaluate(\"3 = 4\") = %q, want %q", result.String(), msgs.No)
	}
}

func TestParseAndEvaluate_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "   "},
		{"non-numeric operand", "abc + 2"},
		{"missing right operand", "2 +"},
		{"missing left operand", "/ 2"},
		{"stray characters", "2 + 3x"},
		{"no operator", "42"},
		{"words only", "bonjour"},
		{"infinity operand", "Inf + 1"},
		{"nan operand", "NaN + 1"},
		{"double operator", "2 + + 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, calcErr := ParseAndEvaluate(tt.input)
			if calcErr == nil {
				t.Fatalf("ParseAndEvaluate(%q) expected syntax error, got none", tt.input)
			}
			if calcErr.Code != SyntaxError {
				t.Errorf("ParseAndEvaluate(%q) Code = %q, want %q", tt.input, calcErr.Code, SyntaxError)
			}
		})
	}
}

func TestParseAndEvaluate_EvaluationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"division by zero", "5 / 0"},
		{"division by float zero", "5 / 0.0"},
		{"zero power zero", "0 ^ 0"},
		{"negative base fractional exponent", "-2 ^ 0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, calcErr := ParseAndEvaluate(tt.input)
			if calcErr == nil {
				t.Fatalf("ParseAndEvaluate(%q) expected evaluation error, got none", tt.input)
			}
			if calcErr.Code != EvaluationError {
				t.Errorf("ParseAndEvaluate(%q) Code = %q, want %q", tt.input, calcErr.Code, EvaluationError)
			}
		})
	}
}

// TestParseAndEvaluate_UnaryMinusLimitation pins the documented limitation of
// the fixed-order operator scan: when the subtraction operator is preceded by
// a negative left operand, the first '-' found is the literal's sign and the
// expression cannot be decomposed.
func TestParseAndEvaluate_UnaryMinusLimitation(t *testing.T) {
	_, calcErr := ParseAndEvaluate("-5 - 3")
	if calcErr == nil {
		t.Fatal("expected syntax error for \"-5 - 3\" (known scan limitation)")
	}
	if calcErr.Code != SyntaxError {
		t.Errorf("Code = %q, want %q", calcErr.Code, SyntaxError)
	}
}

// TestParseAndEvaluate_ErrorContext verifies that errors carry the trimmed
// expression with description and details intact.
func TestParseAndEvaluate_ErrorContext(t *testing.T) {
	_, calcErr := ParseAndEvaluate("  5 / 0  ")
	if calcErr == nil {
		t.Fatal("expected error")
	}
	if calcErr.Expression != "5 / 0" {
		t.Errorf("Expression = %q, want trimmed %q", calcErr.Expression, "5 / 0")
	}
	if calcErr.Description == "" || calcErr.Details == "" {
		t.Errorf("Description/Details must be populated, got %q / %q", calcErr.Description, calcErr.Details)
	}
	if calcErr.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

// TestParseAndEvaluate_Idempotent verifies that the core is pure: the same
// input evaluated twice yields identical results.
func TestParseAndEvaluate_Idempotent(t *testing.T) {
	inputs := []string{"2 + 3", "5 / 0", "3 = 3", "", "abc + 2"}
	for _, input := range inputs {
		first, firstErr := ParseAndEvaluate(input)
		second, secondErr := ParseAndEvaluate(input)

		if first != second {
			t.Errorf("ParseAndEvaluate(%q) not idempotent: %v vs %v", input, first, second)
		}
		if (firstErr == nil) != (secondErr == nil) {
			t.Fatalf("ParseAndEvaluate(%q) error not idempotent", input)
		}
		if firstErr != nil && *firstErr != *secondErr {
			t.Errorf("ParseAndEvaluate(%q) errors differ: %+v vs %+v", input, firstErr, secondErr)
		}
	}
}

// TestParseAndEvaluate_MatchesDirectEvaluate checks that going through the
// parser agrees with invoking the evaluator directly.
func TestParseAndEvaluate_MatchesDirectEvaluate(t *testing.T) {
	operands := []struct{ a, b float64 }{
		{1, 2}, {10, 3}, {2.5, 4}, {7, 1}, {100, 25},
	}
	for _, op := range []byte{'+', '-', '*', '/', '^'} {
		for _, pair := range operands {
			input := fmt.Sprintf("%v %c %v", pair.a, op, pair.b)

			parsed, parsedErr := ParseAndEvaluate(input)
			direct, directErr := Evaluate(op, pair.a, pair.b, input)

			if (parsedErr == nil) != (directErr == nil) {
				t.Fatalf("%q: parser error %v, direct error %v", input, parsedErr, directErr)
			}
			if parsedErr == nil && parsed.Value != direct.Value {
				t.Errorf("%q: parsed %v, direct %v", input, parsed.Value, direct.Value)
			}
		}
	}
}

func TestOperatorOf(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOp byte
		wantOK bool
	}{
		{"addition", "2 + 3", '+', true},
		{"plus chosen before minus", "-5 + 3", '+', true},
		{"power despite negative exponent", "2 ^ -2", '^', true},
		{"multiplication with negative operand", "5 * -3", '*', true},
		{"equality", "3 = 3", '=', true},
		{"no valid operator", "abc + 2", 0, false},
		{"no operator at all", "42", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := OperatorOf(tt.input)
			if ok != tt.wantOK || op != tt.wantOp {
				t.Errorf("OperatorOf(%q) = (%c, %v), want (%c, %v)", tt.input, op, ok, tt.wantOp, tt.wantOK)
			}
		})
	}
}
