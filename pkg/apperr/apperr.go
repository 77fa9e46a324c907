// Package apperr defines the three failure kinds every operation reports to
// its caller: a malformed request, a wrong admin password, or a reference to
// a record that does not exist.
//
//	if !gate.Allows(password) {
//	    return apperr.Unauthorized("invalid admin password")
//	}
//	return apperr.NotFound("booking", id)
//
// Handlers translate them to HTTP status codes through ctx.Context.Fail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// HTTPStatus is the response code used for errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, human-readable failure.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or malformed field. fields may be nil.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Field is shorthand for a validation failure on a single field.
func Field(field, message string) *Error {
	return Validation(message, map[string]string{field: message})
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound reports that no entity with the given id exists, e.g.
// "booking 7 not found".
func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", entity, id)}
}

// Wrap attaches a cause to a classified error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
