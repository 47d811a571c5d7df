package devserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobpilot/internal/devserver/middleware"
	"github.com/jonathan/jobpilot/internal/types"
)

// issue signs a fresh token pair for userID.
func (s *Server) issue(userID uuid.UUID, user *types.User) (types.AuthData, error) {
	access, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return types.AuthData{}, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(userID)
	if err != nil {
		return types.AuthData{}, err
	}
	return types.AuthData{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	user, id, err := s.users.Register(&req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	auth, err := s.issue(id, &user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.WithField("user_id", id).Info("user registered")
	respond(s, w, http.StatusCreated, auth, "Registration successful")
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	user, id, err := s.users.Login(&req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	auth, err := s.issue(id, &user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, http.StatusOK, auth, "Login successful")
}

// handleRefresh handles POST /auth/refresh. Both tokens are rotated.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req types.RefreshInput
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.users.Profile(claims.UserID); err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: "unknown user"})
		return
	}
	auth, err := s.issue(claims.UserID, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, http.StatusOK, auth, "Token refreshed")
}

// handleProfile handles GET /auth/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, &ErrInvalidToken{Reason: err.Error()})
		return
	}
	user, err := s.users.Profile(userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, http.StatusOK, user, "")
}
