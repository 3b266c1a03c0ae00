// Package apperrors provides the application error type used across the
// client. Errors carry an optional HTTP status code, wrap causes so that
// errors.Is and errors.As keep working, and support deriving more specific
// errors from a base error.
package apperrors

import "strings"

// Error extends the standard error interface with status codes and
// derivation. Methods return Error to support chaining.
type Error interface {
	error
	Unwrap() []error

	// New derives a new error with msg that wraps the current error, so the
	// derived error still matches the base via errors.Is.
	New(msg string) Error
	// Err attaches additional causes to the error.
	Err(errs ...error) Error
	// SetStatusCode returns a copy of the error carrying the given HTTP
	// status code.
	SetStatusCode(code int) Error
	// StatusCode returns the status code, or 0 when none is set.
	StatusCode() int
}

type appError struct {
	msg        string
	wrapped    []error
	statusCode int
}

// New creates a new base error with the given message.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) Unwrap() []error {
	return e.wrapped
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		wrapped:    []error{e},
		statusCode: e.statusCode,
	}
}

func (e *appError) Err(errs ...error) Error {
	causes := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			causes = append(causes, err)
		}
	}
	if len(causes) == 0 {
		return e
	}
	// The receiver goes into the chain so errors.Is still matches the base.
	return &appError{
		msg:        e.msg,
		wrapped:    append([]error{e}, causes...),
		statusCode: e.statusCode,
	}
}

func (e *appError) SetStatusCode(code int) Error {
	clone := *e
	clone.statusCode = code
	return &clone
}

func (e *appError) StatusCode() int {
	return e.statusCode
}

// ErrorAll renders the error message followed by the messages of all wrapped
// causes, skipping consecutive repeats. Useful for verbose CLI output.
func ErrorAll(err error) string {
	var parts []string
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if msg := err.Error(); len(parts) == 0 || parts[len(parts)-1] != msg {
			parts = append(parts, msg)
		}
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, cause := range x.Unwrap() {
				walk(cause)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return strings.Join(parts, ": ")
}
