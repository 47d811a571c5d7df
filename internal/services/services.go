// Package services wraps each backend operation in a typed call that always
// returns an Envelope. Transport failures never escape as Go errors: backend
// error envelopes are passed through and anything else becomes a synthesized
// failure envelope.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/jobpilot/internal/apiclient"
	"github.com/jonathan/jobpilot/internal/types"
)

// API is the subset of the HTTP client the services need.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
	DoAnonymous(ctx context.Context, method, path string, body, out any) error
	Upload(ctx context.Context, path string, file apiclient.File, out any) error
}

// call runs send and normalizes its outcome into an envelope.
func call[T any](send func(out *types.Envelope[T]) error, fallback string) types.Envelope[T] {
	var env types.Envelope[T]
	if err := send(&env); err != nil {
		return normalize[T](err, fallback)
	}
	if env.StatusCode == 0 {
		env.StatusCode = http.StatusOK
	}
	return env
}

// normalize converts a client error into an envelope. A non-2xx response whose
// body is the backend's own envelope is returned unchanged.
func normalize[T any](err error, fallback string) types.Envelope[T] {
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		var env types.Envelope[T]
		if json.Unmarshal(httpErr.Body, &env) == nil && (env.Message != "" || env.StatusCode != 0 || env.Error != "") {
			env.Success = false
			if env.StatusCode == 0 {
				env.StatusCode = httpErr.StatusCode
			}
			return env
		}
	}
	return types.Fail[T](http.StatusInternalServerError, fallback, err.Error())
}

// Services groups the four domain services over one client.
type Services struct {
	Auth         *AuthService
	Resume       *ResumeService
	Jobs         *JobService
	Applications *ApplicationService
}

// New builds all services over api. store receives the session on login/register.
func New(api API, store SessionStore) *Services {
	return &Services{
		Auth:         NewAuthService(api, store),
		Resume:       NewResumeService(api),
		Jobs:         NewJobService(api),
		Applications: NewApplicationService(api),
	}
}
