package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error with a caller-facing message and HTTP status. Services
// return these for request and upstream failures; anything else surfaces as a
// generic 500.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// BadRequest builds a 400 request error.
func BadRequest(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 error.
func NotFound(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a database or storage failure. The upstream message is
// surfaced to the caller rather than swallowed.
func Upstream(message string, err error) *APIError {
	return &APIError{Status: http.StatusBadGateway, Message: message, Err: err}
}

// AsAPIError unwraps err into an *APIError if possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
