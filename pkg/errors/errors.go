// Package errors provides structured error types for tilegrid.
//
// These are the structural, fatal-to-the-call errors: malformed tiles, broken
// tiling invariants, corrupted snapshots, unknown strategy keys and missing
// decision graphs. Expected business-rule rejections (a locked tile, a
// minimum-size breach) are never reported through this package; they are
// returned as decision.Violation values inside operation results.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - TILING_*: Tiling invariant failures detected at construction
//   - *_NOT_FOUND: Programmer errors (unknown keys, missing graphs)
//   - STORE_*: Persistence failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTile, "tile %s: width must be positive", id)
//	if errors.Is(err, errors.ErrCodeInvalidTile) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "failed to save %s", key)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidTile     Code = "INVALID_TILE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"
	ErrCodeDuplicateTile   Code = "DUPLICATE_TILE"

	// Tiling invariant errors
	ErrCodeOverlap     Code = "TILING_OVERLAP"
	ErrCodeOutOfBounds Code = "TILING_OUT_OF_BOUNDS"
	ErrCodeCoverageGap Code = "TILING_COVERAGE_GAP"

	// Seam errors
	ErrCodeSeamNotFound    Code = "SEAM_NOT_FOUND"
	ErrCodeSeamNotCovered  Code = "SEAM_NOT_COVERED"
	ErrCodeDeltaOutOfRange Code = "DELTA_OUT_OF_RANGE"

	// Programmer errors
	ErrCodeStrategyNotFound Code = "STRATEGY_NOT_FOUND"
	ErrCodeGraphNotFound    Code = "GRAPH_NOT_FOUND"

	// Repair errors
	ErrCodeAdjustFailed Code = "ADJUST_FAILED"

	// Persistence errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeStore    Code = "STORE_ERROR"

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

// IsStructural reports whether err signals a broken tiling or malformed
// tile, as opposed to an I/O or programmer error.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidTile, ErrCodeDuplicateTile, ErrCodeOverlap, ErrCodeOutOfBounds, ErrCodeCoverageGap:
		return true
	}
	return false
}
