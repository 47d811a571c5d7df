package devserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/devserver/middleware"
)

// Token types carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims represents JWT claims with user ID.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
	jwt.RegisteredClaims
}

// GetUserID returns the user ID from the claims.
// This implements the middleware.UserIDGetter interface.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// AsTokenValidator returns a middleware.TokenValidator that accepts access tokens only.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.UserIDGetter, error) {
	claims, err := v.service.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTService issues and validates access and refresh tokens.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateAccessToken signs a short-lived token for API calls.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, TokenAccess, s.config.AccessTTL(), s.config.Secret)
}

// GenerateRefreshToken signs a long-lived token accepted only by the refresh endpoint.
func (s *JWTService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, TokenRefresh, s.config.RefreshTTL(), s.config.RefreshTokenSecret)
}

func (s *JWTService) sign(userID uuid.UUID, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, TokenAccess, s.config.Secret)
}

// ValidateRefreshToken validates a refresh token and returns the claims.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, TokenRefresh, s.config.RefreshTokenSecret)
}

func (s *JWTService) validate(tokenString, tokenType, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, &ErrInvalidToken{Reason: "token string is empty"}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, &ErrInvalidToken{Reason: "signature invalid"}
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &ErrInvalidToken{Reason: "token expired"}
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, &ErrInvalidToken{Reason: "malformed token"}
		}
		return nil, &ErrInvalidToken{Reason: err.Error()}
	}

	if !token.Valid {
		return nil, &ErrInvalidToken{Reason: "token is not valid"}
	}
	if claims.TokenType != tokenType {
		return nil, &ErrInvalidToken{Reason: fmt.Sprintf("expected %s token, got %q", tokenType, claims.TokenType)}
	}
	return claims, nil
}
