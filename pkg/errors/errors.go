// Package errors provides structured error types for boxbake.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - IMPOSSIBLE_LAYOUT: A layout that cannot be baked
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidName, "invalid node name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidName) {
//	    // Handle validation error
//	}
//
//	// Lift errors from the layout engine
//	err = errors.FromLayout(bakeErr)
package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/boxbake/pkg/layout"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument   Code = "INVALID_DOCUMENT"
	ErrCodeInvalidName       Code = "INVALID_NAME"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Layout errors
	ErrCodeImpossibleLayout Code = "IMPOSSIBLE_LAYOUT"
	ErrCodeDuplicateName    Code = "DUPLICATE_NAME"
	ErrCodeUnmeasurable     Code = "UNMEASURABLE"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeNodeNotFound   Code = "NODE_NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
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

// layoutCodes maps engine sentinels to codes. Order matters: the first
// sentinel found in the chain wins.
var layoutCodes = []struct {
	sentinel error
	code     Code
	message  string
}{
	{layout.ErrImpossibleLayout, ErrCodeImpossibleLayout, "layout cannot be baked"},
	{layout.ErrNodeNotFound, ErrCodeNodeNotFound, "node not found"},
	{layout.ErrDuplicateName, ErrCodeDuplicateName, "node names must be unique"},
	{layout.ErrUnmeasurable, ErrCodeUnmeasurable, "flex and flow children need constant sizes"},
	{layout.ErrUnregisteredEdge, ErrCodeInternal, "internal layout error"},
}

// FromLayout lifts an error returned by the layout engine into a coded
// *Error. Errors that already carry a code, and nil, are returned unchanged.
// Anything unrecognized becomes ErrCodeInternal.
func FromLayout(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	for _, lc := range layoutCodes {
		if errors.Is(err, lc.sentinel) {
			return Wrap(lc.code, err, "%s", lc.message)
		}
	}
	return Wrap(ErrCodeInternal, err, "bake failed")
}
