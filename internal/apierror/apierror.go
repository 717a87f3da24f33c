// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Domain sentinels. Services wrap them with context; handlers only look at
// the chain through Status.
var (
	ErrNotFound     = errors.New("no encontrado")
	ErrForbidden    = errors.New("operacion no permitida")
	ErrConflict     = errors.New("conflicto")
	ErrUnauthorized = errors.New("credenciales invalidas")
)

// Invalid is a business-rule violation whose message is safe to show.
type Invalid struct{ Msg string }

func (e *Invalid) Error() string { return e.Msg }

func Invalidf(format string, args ...any) error {
	return &Invalid{Msg: fmt.Sprintf(format, args...)}
}

// NotFound wraps ErrNotFound with the missing entity's name.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Forbidden wraps ErrForbidden with the reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// Conflict wraps ErrConflict with the reason.
func Conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

// Status maps an error chain to an HTTP status. Unknown errors are 500.
func Status(err error) int {
	var inv *Invalid
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inv):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// From builds the client envelope. 500s get the generic fallback instead of
// the error text.
func From(err error, fallback string) (int, *APIError) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		return status, New(fallback)
	}
	return status, New(err.Error())
}
