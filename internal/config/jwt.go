// Package config provides JWT configuration for the development backend.
package config

import (
	"fmt"
	"os"
	"time"
)

// JWTConfig holds configuration for access and refresh token signing.
type JWTConfig struct {
	Secret             string
	AccessTTLMinutes   int
	RefreshTTLHours    int
	RefreshTokenSecret string // defaults to Secret when empty
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ACCESS_MINUTES (default: 15),
// JWT_REFRESH_HOURS (default: 168) and JWT_REFRESH_SECRET (optional).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	accessMinutes, err := envInt("JWT_ACCESS_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	refreshHours, err := envInt("JWT_REFRESH_HOURS", 168)
	if err != nil {
		return nil, err
	}

	config := &JWTConfig{
		Secret:             secret,
		AccessTTLMinutes:   accessMinutes,
		RefreshTTLHours:    refreshHours,
		RefreshTokenSecret: os.Getenv("JWT_REFRESH_SECRET"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.AccessTTLMinutes < 1 {
		return fmt.Errorf("JWT_ACCESS_MINUTES must be at least 1 minute, got: %d", c.AccessTTLMinutes)
	}
	if c.RefreshTTLHours < 1 {
		return fmt.Errorf("JWT_REFRESH_HOURS must be at least 1 hour, got: %d", c.RefreshTTLHours)
	}
	if c.RefreshTokenSecret == "" {
		c.RefreshTokenSecret = c.Secret
	}
	return nil
}

// AccessTTL returns the access token lifetime.
func (c *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (c *JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLHours) * time.Hour
}
