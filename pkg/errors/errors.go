// Package errors provides structured error types for coilpos.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes fall into three categories:
//   - CONFIG_*: configuration errors — always fatal, never retried
//   - GEOMETRY_*: precondition violations in caller-supplied geometry — fatal
//   - TRACK_*: recoverable lookup misses — callers degrade and continue
//
// # Usage
//
//	err := errors.New(errors.CodeNotConvex, "region %s is not convex", name)
//	if errors.Is(err, errors.CodeNotConvex) {
//	    // reject the region
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.CodeConfigInvalid, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the positioning core.
const (
	// Configuration errors. Fatal, surfaced immediately.
	CodeConfigInvalid  Code = "CONFIG_INVALID"
	CodeUnknownLayout  Code = "CONFIG_UNKNOWN_CS_LAYOUT"
	CodeBadKey         Code = "CONFIG_BAD_COIL_KEY"
	CodeMissingRegions Code = "CONFIG_MISSING_REGIONS"

	// Geometry errors. Fatal, the caller-supplied geometry violates a
	// precondition of the mapper.
	CodeNotConvex   Code = "GEOMETRY_NOT_CONVEX"
	CodeBadCrossing Code = "GEOMETRY_BAD_CROSSING_COUNT"
	CodeEmptyTrack  Code = "GEOMETRY_EMPTY_TRACK"

	// Recoverable lookup misses.
	CodeNoProjection Code = "TRACK_NO_PROJECTION"
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

// Is reports whether err carries the given error code.
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

// IsGeometry reports whether err is any geometry-precondition error.
func IsGeometry(err error) bool {
	switch GetCode(err) {
	case CodeNotConvex, CodeBadCrossing, CodeEmptyTrack:
		return true
	}
	return false
}

// IsConfig reports whether err is any configuration error.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case CodeConfigInvalid, CodeUnknownLayout, CodeBadKey, CodeMissingRegions:
		return true
	}
	return false
}
