package auth

import (
	"errors"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("authorization is not configured")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// StatusCode maps a Verify error to its HTTP status. Unknown errors are
// server faults.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
