// Package errx is the error taxonomy shared by every service. Domain errors
// wrap one of the kind sentinels so that the HTTP layer can map them to a
// status code with errors.Is, without knowing about the domain.
package errx

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication failed")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

var kinds = []error{
	ErrInvalidRequest,
	ErrValidation,
	ErrUnauthenticated,
	ErrForbidden,
	ErrNotFound,
	ErrConflict,
	ErrInternal,
}

// Error is a domain error of a given kind. Msg is safe to show to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newKind(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...any) error {
	return newKind(ErrInvalidRequest, format, args...)
}

func Unauthenticated(format string, args ...any) error {
	return newKind(ErrUnauthenticated, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newKind(ErrForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newKind(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return newKind(ErrConflict, format, args...)
}

// Internal wraps cause so that it is logged but never shown to clients.
func Internal(cause error, msg string) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(ErrInternal, cause))
}

// ValidationError lists the offending fields with a message each.
type ValidationError struct {
	Fields map[string]string
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// KindOf returns the taxonomy sentinel err belongs to. Errors outside the
// taxonomy are reported as ErrInternal.
func KindOf(err error) error {
	for _, k := range kinds {
		if k == ErrInternal {
			continue
		}
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// Message returns the client-safe text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != ErrInternal {
		return e.Msg
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrValidation.Error()
	}

	kind := KindOf(err)
	if kind == ErrInternal {
		return "internal server error"
	}
	return kind.Error()
}
