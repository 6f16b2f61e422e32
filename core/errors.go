package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(msg string) error { return &NotFoundError{msg: msg} }

func (err NotFoundError) Error() string { return err.msg }

// ConflictError indicates a duplicate identity.
type ConflictError struct {
	msg string
}

func NewConflictError(msg string) error { return &ConflictError{msg: msg} }

func (err ConflictError) Error() string { return err.msg }

// InvariantError indicates that an operation would break a domain invariant,
// eg. a subject's assessment contributions claiming more than 100%.
type InvariantError struct {
	msg string
}

func NewInvariantError(msg string) error { return &InvariantError{msg: msg} }

func (err InvariantError) Error() string { return err.msg }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
