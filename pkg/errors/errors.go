// Package errors provides structured error types for layoutkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAxis, "unknown axis token %q", token)
//	if errors.Is(err, errors.ErrCodeInvalidAxis) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "decode %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidSize      Code = "INVALID_SIZE"
	ErrCodeInvalidAxis      Code = "INVALID_AXIS"
	ErrCodeInvalidDirective Code = "INVALID_DIRECTIVE"
	ErrCodeInvalidIndex     Code = "INVALID_INDEX"
	ErrCodeInvalidScene     Code = "INVALID_SCENE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidRole      Code = "INVALID_ROLE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeUnknownWidget Code = "UNKNOWN_WIDGET"

	// Backend errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// coder is implemented by typed errors that carry their own code.
type coder interface {
	Code() Code
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error or typed error exposing
// Code() in err's chain, or "" when none carries one.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() when there is none.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// SizeError reports a child whose declared size cannot be allocated.
type SizeError struct {
	Index int     // Position of the child in its container
	Child any     // The offending child node
	Axis  string  // Axis property that was read ("width" or "height")
	Size  float64 // The declared value
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("cannot allocate size: child %d (%v) has %s %v", e.Index, e.Child, e.Axis, e.Size)
}

// Code returns the error code for this error type.
func (e *SizeError) Code() Code {
	return ErrCodeInvalidSize
}

// IndexError reports a row or child index outside the valid range.
type IndexError struct {
	Op    string // Operation that was attempted, e.g. "insert"
	Index int
	Len   int  // Number of rows at the time of the call
	Incl  bool // Whether Len itself is a valid index (insertion points)
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	closing := ")"
	if e.Incl {
		closing = "]"
	}
	return fmt.Sprintf("%s: index %d out of range [0, %d%s", e.Op, e.Index, e.Len, closing)
}

// Code returns the error code for this error type.
func (e *IndexError) Code() Code {
	return ErrCodeInvalidIndex
}
