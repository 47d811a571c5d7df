package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// refreshKey is the single-flight key; every refresh is the same operation.
const refreshKey = "refresh"

// refresh returns a usable access token after staleToken was rejected.
// Concurrent callers share one refresh call. A caller that arrives after the
// token was already rotated gets the rotated token without another round trip.
func (c *Client) refresh(ctx context.Context, staleToken string) (string, error) {
	// Detached so one caller's cancellation does not fail the others waiting on it.
	refreshCtx := context.WithoutCancel(ctx)

	v, err, shared := c.refreshes.Do(refreshKey, func() (any, error) {
		sess, err := c.store.Load()
		if err != nil {
			return "", fmt.Errorf("failed to load session: %w", err)
		}
		if sess.AccessToken != "" && sess.AccessToken != staleToken {
			return sess.AccessToken, nil
		}
		return c.exchange(refreshCtx, sess)
	})
	if shared {
		c.log.Debug("joined in-flight token refresh")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// exchange calls the refresh endpoint and persists the new access token.
// On any failure the session is cleared and the user is sent to login.
func (c *Client) exchange(ctx context.Context, sess session.Session) (string, error) {
	if sess.RefreshToken == "" {
		c.log.Info("no refresh token, session cleared")
		c.expire()
		return "", ErrUnauthenticated
	}

	r, err := newJSONRequest(http.MethodPost, RefreshPath, types.RefreshInput{RefreshToken: sess.RefreshToken})
	if err != nil {
		return "", err
	}

	status, payload, err := c.roundTrip(ctx, r, "")
	if err != nil {
		c.log.WithError(err).Warn("token refresh failed")
		c.expire()
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var env types.Envelope[types.AuthData]
	decodeErr := json.Unmarshal(payload, &env)
	if status < 200 || status >= 300 || decodeErr != nil || !env.HasData() || env.Data.AccessToken == "" {
		c.log.WithField("status", status).Warn("token refresh rejected")
		c.expire()
		return "", fmt.Errorf("%w: refresh rejected with status %d", ErrUnauthenticated, status)
	}

	sess.AccessToken = env.Data.AccessToken
	if env.Data.RefreshToken != "" {
		sess.RefreshToken = env.Data.RefreshToken
	}
	if err := c.store.Save(sess); err != nil {
		return "", fmt.Errorf("failed to persist refreshed session: %w", err)
	}

	c.log.Info("access token refreshed")
	return sess.AccessToken, nil
}

// expire clears the stored session and redirects to login.
func (c *Client) expire() {
	if err := c.store.Clear(); err != nil {
		c.log.WithError(err).Warn("failed to clear session")
	}
	c.navigator.Navigate(session.RouteLogin)
}
