// Package errors provides structured error types for the units engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure the engine can report has its own code:
//   - INVALID_*: Input validation failures (symbols, names, coefficients)
//   - DUPLICATE_*: Registration collisions
//   - UNIT_NOT_FOUND: Lookup or parse referenced an unknown unit
//   - INCOMPATIBLE_UNITS, NON_LINEAR_COMPOSITE: Conversion failures
//   - MALFORMED_EXPRESSION: Unit expression grammar violations
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnitNotFound, "unknown symbol %q", sym)
//	if errors.Is(err, errors.ErrCodeUnitNotFound) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "load definitions from %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidSymbol Code = "INVALID_SYMBOL"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// Registration collisions
	ErrCodeDuplicateSymbol Code = "DUPLICATE_SYMBOL"
	ErrCodeDuplicateName   Code = "DUPLICATE_NAME"

	// Resource not found errors
	ErrCodeUnitNotFound Code = "UNIT_NOT_FOUND"

	// Conversion errors
	ErrCodeIncompatibleUnits  Code = "INCOMPATIBLE_UNITS"
	ErrCodeNonLinearComposite Code = "NON_LINEAR_COMPOSITE"

	// Expression grammar errors
	ErrCodeMalformedExpression Code = "MALFORMED_EXPRESSION"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Only the outermost *Error is consulted, so a wrapped code is hidden by the wrapper.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ParseError reports a grammar violation in a unit expression.
// Offset is the byte position of the offending token in Input.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Reason, e.Offset, e.Input)
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeMalformedExpression
}

// Malformed wraps a ParseError in an *Error carrying ErrCodeMalformedExpression.
func Malformed(input string, offset int, reason string) *Error {
	pe := &ParseError{Input: input, Offset: offset, Reason: reason}
	return Wrap(ErrCodeMalformedExpression, pe, "malformed unit expression")
}
