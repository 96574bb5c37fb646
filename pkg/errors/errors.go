// Package errors provides structured error types for handlermap.
//
// Errors carry a machine-readable [Code] so the CLI, the HTTP surface and the
// export event stream can all decide how to present a failure without string
// matching:
//
//   - INVALID_*: input validation failures (bad filename, bad row file)
//   - *NOT_FOUND: missing remote resources or local files
//   - NETWORK_ERROR, UNAUTHORIZED, FORBIDDEN: remote API failures
//   - RENDER_FAILED, INTERNAL_ERROR: local processing failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "filename %q escapes the output directory", name)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // reject request
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Remote API errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"

	// Local processing errors
	ErrCodeRender   Code = "RENDER_FAILED"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// UserMessage returns a single-line, user-facing description of err.
// For *Error values the code prefix is dropped and the cause, if any, is
// appended the same way.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
		if e.Cause != nil {
			msg += ": " + UserMessage(e.Cause)
		}
	}
	return strings.Join(strings.Fields(msg), " ")
}

// Annotate wraps err with context while keeping its code. Errors without a
// code get fallback.
func Annotate(err error, fallback Code, format string, args ...any) *Error {
	code := GetCode(err)
	if code == "" {
		code = fallback
	}
	return Wrap(code, err, format, args...)
}

// FromStatus maps a non-2xx HTTP status from the remote API to a coded error.
func FromStatus(status int, url string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return New(ErrCodeUnauthorized, "%s: status %d (check username and password)", url, status)
	case http.StatusForbidden:
		return New(ErrCodeForbidden, "%s: status %d", url, status)
	case http.StatusNotFound:
		return New(ErrCodeNotFound, "%s: status %d", url, status)
	default:
		return New(ErrCodeNetwork, "%s: status %d", url, status)
	}
}

// HTTPStatus returns the HTTP status a server should answer with for err.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
