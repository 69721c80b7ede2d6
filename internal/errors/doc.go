// Package apperrors defines structured application error types, allowing
// for a clear distinction between error classes (configuration, read loop,
// etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapped errors support errors.Is() and errors.As().
//
// Calculator domain failures (syntax and evaluation errors) are not defined
// here: they live in the calc package as plain CalcError values, since they
// are part of the core's data contract rather than application faults.
package apperrors
