package ecode

import (
	"errors"
	"fmt"
)

// Error is a coded error. Two Errors match under errors.Is when their codes are equal.
type Error struct {
	Code    int
	Message string
	Fields  map[string]string // per-field validation messages
	cause   error
}

// Sentinels for errors.Is checks
var (
	ErrUnauthenticated   = &Error{Code: NoLogin}
	ErrForbidden         = &Error{Code: AccessDenied}
	ErrNotFound          = &Error{Code: NothingFound}
	ErrBadRequest        = &Error{Code: RequestErr}
	ErrDanglingReference = &Error{Code: DanglingReference}
	ErrServer            = &Error{Code: ServerErr}
)

// New creates a coded error. An empty message falls back to Text(code).
func New(code int, message string) *Error {
	if message == "" {
		message = Text(code)
	}
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code int, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a coded error keeping cause in the chain.
func Wrap(code int, message string, cause error) *Error {
	e := New(code, message)
	e.cause = cause
	return e
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = Text(e.Code)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.cause }

// Is matches on code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithFields attaches validation messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

// Unauthenticated returns a NoLogin error
func Unauthenticated(message string) *Error { return New(NoLogin, message) }

// Forbidden returns an AccessDenied error
func Forbidden(message string) *Error { return New(AccessDenied, message) }

// NotFound returns a NothingFound error
func NotFound(message string) *Error { return New(NothingFound, message) }

// BadRequest returns a RequestErr error
func BadRequest(message string) *Error { return New(RequestErr, message) }

// Dangling returns a DanglingReference error
func Dangling(message string) *Error { return New(DanglingReference, message) }

// CodeOf extracts the code of err, or ServerErr when err carries none.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ServerErr
}
