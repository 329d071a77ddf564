// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; handlers translate them to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrCancelled    = errors.New("operation cancelled")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	// ErrRefreshTokenExpired covers both unknown and expired refresh tokens;
	// the two cases are deliberately indistinguishable to the caller.
	ErrRefreshTokenExpired = errors.New("The refresh token has expired")
)

// ValidationError carries per-field failure messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Validation wraps a field→messages map into an error, or returns nil when
// the map is empty.
func Validation(fields map[string][]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

type notFoundError struct{ entity string }

func (e *notFoundError) Error() string {
	return e.entity + " not found or you do not have access"
}

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound returns an ErrNotFound-compatible error whose message names the
// entity without leaking whether it exists in another tenant.
func NotFound(entity string) error {
	return &notFoundError{entity: entity}
}

type conflictError struct{ msg string }

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Is(target error) bool { return target == ErrConflict }

// Conflict returns an ErrConflict-compatible error naming the blocking
// relationship.
func Conflict(msg string) error {
	return &conflictError{msg: msg}
}

// AsValidation extracts a *ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
