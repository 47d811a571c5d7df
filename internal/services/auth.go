package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// SessionStore is where successful logins are persisted.
type SessionStore interface {
	Save(session.Session) error
	Clear() error
}

// AuthService covers login, registration and the profile endpoint.
type AuthService struct {
	api   API
	store SessionStore
}

// NewAuthService creates an AuthService.
func NewAuthService(api API, store SessionStore) *AuthService {
	return &AuthService{api: api, store: store}
}

// Login exchanges credentials for a session and persists it.
func (s *AuthService) Login(ctx context.Context, email, password string) types.Envelope[types.AuthData] {
	input := types.LoginInput{Email: email, Password: password}
	if err := input.Validate(); err != nil {
		return types.Invalid[types.AuthData]("Please enter a valid email and password")
	}

	env := call(func(out *types.Envelope[types.AuthData]) error {
		return s.api.DoAnonymous(ctx, http.MethodPost, "/auth/login", input, out)
	}, "Login failed")
	return s.persist(env)
}

// Register creates an account and persists the returned session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) types.Envelope[types.AuthData] {
	input := types.RegisterInput{Name: name, Email: email, Password: password}
	if err := input.Validate(); err != nil {
		return types.Invalid[types.AuthData]("Please provide a name, a valid email and a password of at least 6 characters")
	}

	env := call(func(out *types.Envelope[types.AuthData]) error {
		return s.api.DoAnonymous(ctx, http.MethodPost, "/auth/register", input, out)
	}, "Registration failed")
	return s.persist(env)
}

// GetProfile returns the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context) types.Envelope[types.User] {
	return call(func(out *types.Envelope[types.User]) error {
		return s.api.Do(ctx, http.MethodGet, "/auth/profile", nil, out)
	}, "Failed to fetch profile")
}

// Logout forgets the local session. The backend keeps no session state to revoke.
func (s *AuthService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *AuthService) persist(env types.Envelope[types.AuthData]) types.Envelope[types.AuthData] {
	if !env.HasData() || env.Data.AccessToken == "" {
		return env
	}
	if err := s.store.Save(session.FromAuth(*env.Data)); err != nil {
		return types.Fail[types.AuthData](http.StatusInternalServerError, "Failed to save session", err.Error())
	}
	return env
}
