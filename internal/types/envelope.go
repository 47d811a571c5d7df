//nolint:revive // types is a standard Go package name pattern
package types

import "net/http"

// ErrorValidation marks envelopes produced by client-side admission checks.
const ErrorValidation = "validation"

// Envelope is the uniform wrapper around every backend call result.
type Envelope[T any] struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       *T     `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK returns a successful envelope around data.
func OK[T any](statusCode int, data T, message string) Envelope[T] {
	return Envelope[T]{Success: true, StatusCode: statusCode, Data: &data, Message: message}
}

// Fail returns a failure envelope.
func Fail[T any](statusCode int, message, errText string) Envelope[T] {
	return Envelope[T]{Success: false, StatusCode: statusCode, Message: message, Error: errText}
}

// Invalid returns the envelope used for client-side validation failures.
// No request has been sent when this envelope is returned.
func Invalid[T any](message string) Envelope[T] {
	return Fail[T](http.StatusBadRequest, message, ErrorValidation)
}

// HasData reports whether the call succeeded and carried a payload.
func (e Envelope[T]) HasData() bool {
	return e.Success && e.Data != nil
}

// IsLocal reports whether the envelope was produced by a client-side check.
func (e Envelope[T]) IsLocal() bool {
	return !e.Success && e.Error == ErrorValidation
}

// MessageOr returns the envelope message, or fallback when the backend sent none.
func (e Envelope[T]) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
