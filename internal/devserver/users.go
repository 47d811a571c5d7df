package devserver

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	store          *Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store *Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwordConfig: passwordConfig}
}

// Register creates a new user with password authentication
func (s *UserService) Register(req *types.RegisterInput) (types.User, uuid.UUID, error) {
	if existing := s.store.UserByEmail(req.Email); existing != nil {
		return types.User{}, uuid.Nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return types.User{}, uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.store.CreateUser(req.Name, req.Email, passwordHash)
	if err != nil {
		return types.User{}, uuid.Nil, err
	}
	return u.public(), u.ID, nil
}

// Login authenticates a user and returns user data.
// Unknown emails and wrong passwords yield the same error.
func (s *UserService) Login(req *types.LoginInput) (types.User, uuid.UUID, error) {
	u := s.store.UserByEmail(req.Email)
	if u == nil {
		return types.User{}, uuid.Nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, u.PasswordHash) {
		return types.User{}, uuid.Nil, &ErrInvalidCredentials{}
	}
	return u.public(), u.ID, nil
}

// Profile returns the public view of the user.
func (s *UserService) Profile(id uuid.UUID) (types.User, error) {
	u, err := s.store.User(id)
	if err != nil {
		return types.User{}, err
	}
	return u.public(), nil
}
