package api

import (
	"errors"
	"fmt"
)

// NetworkError is a transport-level failure: no HTTP response was
// received. The only error class the client retries.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is a 401. The session has already been invalidated by the
// time the caller sees it; retrying is pointless.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication required: %s", e.Message)
}

// ServerError is any other non-2xx response, carrying the message the
// server sent (or the raw status text when no JSON body was present).
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// serverErrorResponse is the JSON error body shape used across the
// storefront services.
type serverErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func IsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	ok := errors.As(err, &netErr)
	return netErr, ok
}

func IsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	ok := errors.As(err, &authErr)
	return authErr, ok
}

func IsServerError(err error) (*ServerError, bool) {
	var srvErr *ServerError
	ok := errors.As(err, &srvErr)
	return srvErr, ok
}

// IsNotFound reports whether the server answered 404 for the resource.
func IsNotFound(err error) bool {
	srvErr, ok := IsServerError(err)
	return ok && srvErr.StatusCode == 404
}
