package devserver

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, TokenAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	got, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.GetUserID())
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	cfg := testJWTConfig()
	cfg.RefreshTokenSecret = cfg.Secret
	svc := NewJWTService(cfg)
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	var invalid *ErrInvalidToken
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "expected refresh token")

	_, err = svc.AsTokenValidator().ValidateToken(refresh)
	assert.ErrorAs(t, err, &invalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	var invalid *ErrInvalidToken
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "signature invalid", invalid.Reason)
}

func TestJWTService_Expiry(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	require.NoError(t, err, "valid at issue time")

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(token)
	var invalid *ErrInvalidToken
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "token expired", invalid.Reason)

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err, "refresh tokens outlive access tokens")
}

func TestJWTService_Malformed(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	_, err := svc.ValidateAccessToken("")
	var invalid *ErrInvalidToken
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "token string is empty", invalid.Reason)

	_, err = svc.ValidateAccessToken("not.a.jwt")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "malformed token", invalid.Reason)
}
