// Package errs defines the error taxonomy shared across services. Callers
// classify failures with errors.Is and map them to user-visible messages at
// the route boundary.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks missing or empty required input.
	ErrValidation = errors.New("missing required input")
	// ErrConflict marks an attempt to create a duplicate record.
	ErrConflict = errors.New("record already exists")
	// ErrAuth marks failed credential verification. The message never says
	// which of email or password was wrong.
	ErrAuth = errors.New("invalid email or password")
	// ErrFetch marks a network or non-2xx failure while fetching a page.
	ErrFetch = errors.New("fetch failed")
	// ErrParse marks absent or unexpected markup on a fetched page.
	ErrParse = errors.New("parse failed")
	// ErrAgent marks any failure from the LLM agent collaborator.
	ErrAgent = errors.New("agent request failed")
)

// HTTPStatus maps a classified error to a response status. Unclassified
// errors fall through to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAgent):
		return http.StatusBadGateway
	case errors.Is(err, ErrFetch), errors.Is(err, ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
