// Package apperrors defines the service-level error taxonomy and its
// mapping onto HTTP status codes, so handlers stay free of policy logic.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("unauthorized")
	ErrBlocked           = errors.New("cannot swipe on this user")
	ErrProfileIncomplete = errors.New("please complete your profile first")
	ErrNotFound          = errors.New("not found")
	ErrQuotaExceeded     = errors.New("daily swipe limit reached. Upgrade to Premium for unlimited swipes!")
)

// ValidationError carries a client-facing message describing the schema or
// domain violation. Surfaced verbatim with a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status maps a service error to its HTTP status. Anything outside the
// taxonomy collapses to 500.
func Status(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrBlocked),
		errors.Is(err, ErrProfileIncomplete):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
