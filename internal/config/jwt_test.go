package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_ACCESS_MINUTES", "")
	t.Setenv("JWT_REFRESH_HOURS", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, "test-secret-key", cfg.RefreshTokenSecret, "refresh secret falls back to JWT_SECRET")
}

func TestNewJWTConfig_Custom(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ACCESS_MINUTES", "5")
	t.Setenv("JWT_REFRESH_HOURS", "2")
	t.Setenv("JWT_REFRESH_SECRET", "r")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 2*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, "r", cfg.RefreshTokenSecret)
}

func TestNewJWTConfig_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWTConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("non-numeric access minutes", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("JWT_ACCESS_MINUTES", "soon")
		_, err := NewJWTConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JWT_ACCESS_MINUTES")
	})

	t.Run("zero refresh hours", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("JWT_ACCESS_MINUTES", "")
		t.Setenv("JWT_REFRESH_HOURS", "0")
		_, err := NewJWTConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_REFRESH_HOURS must be at least 1 hour")
	})
}
