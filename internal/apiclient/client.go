// Package apiclient is the HTTP client for the JobPilot backend.
// It attaches the session's bearer token and recovers from an expired access
// token by refreshing once and replaying the request.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string sent with every request.
const DefaultUserAgent = "jobpilot-cli/1.0"

// RefreshPath is the endpoint that exchanges a refresh token for a new access token.
const RefreshPath = "/auth/refresh"

// Client talks to the backend on behalf of the session held in its Store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	navigator  session.Navigator
	log        logrus.FieldLogger
	userAgent  string

	refreshes singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithNavigator sets where the client sends the user when the session is lost.
func WithNavigator(n session.Navigator) Option {
	return func(c *Client) {
		if n != nil {
			c.navigator = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = logger.OrDiscard(l)
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for baseURL using store for tokens.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
		navigator:  session.NopNavigator,
		log:        logger.Discard(),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the session store the client reads tokens from.
func (c *Client) Store() session.Store {
	return c.store
}

// request is a replayable outgoing call.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	// anonymous requests never carry a bearer token and never trigger a refresh.
	anonymous bool
}

// Do sends a JSON request. body is encoded when non-nil; out is decoded from a 2xx response when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	r, err := newJSONRequest(method, path, body)
	if err != nil {
		return err
	}
	return c.execute(ctx, r, out)
}

// DoAnonymous is Do without the session: no bearer token, no refresh on 401.
// Used for login and registration, where 401 means bad credentials.
func (c *Client) DoAnonymous(ctx context.Context, method, path string, body, out any) error {
	r, err := newJSONRequest(method, path, body)
	if err != nil {
		return err
	}
	r.anonymous = true
	return c.execute(ctx, r, out)
}

func newJSONRequest(method, path string, body any) (*request, error) {
	r := &request{method: method, path: path}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		r.body = data
		r.contentType = "application/json"
	}
	return r, nil
}

// execute sends r, refreshing and replaying it at most once on 401.
func (c *Client) execute(ctx context.Context, r *request, out any) error {
	token := ""
	if !r.anonymous {
		sess, err := c.store.Load()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		token = sess.AccessToken
	}

	status, payload, err := c.roundTrip(ctx, r, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !r.anonymous {
		fresh, refreshErr := c.refresh(ctx, token)
		if refreshErr != nil {
			return &HTTPError{Method: r.method, Path: r.path, StatusCode: status, Body: payload, Err: refreshErr}
		}
		// Replayed once. A second 401 is returned as-is.
		status, payload, err = c.roundTrip(ctx, r, fresh)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &HTTPError{Method: r.method, Path: r.path, StatusCode: status, Body: payload}
	}

	if out != nil && len(bytes.TrimSpace(payload)) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return &DecodeError{Method: r.method, Path: r.path, Cause: err}
		}
	}
	return nil
}

// roundTrip performs one HTTP exchange and returns the status and body.
func (c *Client) roundTrip(ctx context.Context, r *request, token string) (int, []byte, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return 0, nil, &TransportError{Method: r.method, Path: r.path, Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":     r.method,
			"path":       r.path,
			"request_id": requestID,
		}).WithError(err).Debug("request failed")
		return 0, nil, &TransportError{Method: r.method, Path: r.path, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Method: r.method, Path: r.path, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.log.WithFields(logrus.Fields{
		"method":     r.method,
		"path":       r.path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start).String(),
	}).Debug("request completed")

	return resp.StatusCode, payload, nil
}
