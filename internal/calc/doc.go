// Package calc implements the calculator core: a parser and evaluator for
// single binary arithmetic expressions of the form <number> <operator> <number>.
//
// The package is pure: it performs no I/O, holds no state between calls, and
// reports every failure through the CalcError value type rather than through
// panics or sentinel errors. The host loop (REPL, TUI, batch runner) is a
// separate collaborator that calls ParseAndEvaluate once per input line.
//
// Known limitation: operator detection is a fixed-order substring scan, not a
// tokenizer. Because '-' is both an operator and the sign of a negative
// literal, an expression whose subtraction operator is preceded by a negative
// left operand (e.g. "-5 - 3") cannot be decomposed and is reported as a
// syntax error.
package calc
