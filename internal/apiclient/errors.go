package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a request was rejected with 401 and the
// session could not be refreshed. The session has been cleared when this is returned.
var ErrUnauthenticated = errors.New("session expired, please log in again")

// HTTPError is a non-2xx response. Body holds the raw payload, which is usually
// the backend's own error envelope.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error // set to ErrUnauthenticated when a 401 could not be recovered
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: HTTP status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: HTTP status %d", e.Method, e.Path, e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// TransportError means no response was received (connection refused, timeout, cancelled).
type TransportError struct {
	Method string
	Path   string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// DecodeError means a 2xx response body could not be parsed.
type DecodeError struct {
	Method string
	Path   string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: failed to decode response: %v", e.Method, e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
