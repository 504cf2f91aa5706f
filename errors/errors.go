// Package errors provides coded, structured errors so callers and tests can
// branch on a stable code instead of message text.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category.
type Code string

const (
	ErrUnknown      Code = "UNKNOWN"
	ErrInvalidInput Code = "INVALID_INPUT"
	ErrNotFound     Code = "NOT_FOUND"

	// Registration
	ErrAlreadyExists  Code = "ALREADY_EXISTS"
	ErrRegistrySealed Code = "REGISTRY_SEALED"

	// Configuration and content
	ErrConfigLoad     Code = "CONFIG_LOAD"
	ErrContentLoad    Code = "CONTENT_LOAD"
	ErrContentInvalid Code = "CONTENT_INVALID"

	// Dispatch
	ErrChanceLookup   Code = "CHANCE_LOOKUP"
	ErrUnknownCommand Code = "UNKNOWN_COMMAND"
)

// Error is a structured error with a code and optional details.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetail attaches a key/value detail and returns the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err. A nil err yields nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps err with a formatted message. A nil err yields nil.
func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// CodeOf returns the code of err, or ErrUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// As is errors.As, re-exported so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}
