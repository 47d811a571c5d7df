package devserver

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/devserver/ratelimit"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/types"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:             "test-secret",
		AccessTTLMinutes:   15,
		RefreshTTLHours:    24,
		RefreshTokenSecret: "test-refresh-secret",
	}
}

type serverOption func(*Config)

func withAnalyzer(a Analyzer) serverOption { return func(c *Config) { c.Analyzer = a } }

func withRateLimit(rl *ratelimit.Config) serverOption { return func(c *Config) { c.RateLimit = rl } }

func withSeed() serverOption { return func(c *Config) { c.Seed = true } }

func newTestServer(t *testing.T, opts ...serverOption) (*Server, *httptest.Server) {
	t.Helper()
	cfg := Config{
		JWT:      testJWTConfig(),
		Password: &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		Logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(s.rateLimiter.Stop)
	return s, ts
}

// call sends a JSON request and decodes the envelope.
func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, types.Envelope[json.RawMessage]) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (int, types.Envelope[json.RawMessage]) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env types.Envelope[json.RawMessage]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func dataAs[T any](t *testing.T, env types.Envelope[json.RawMessage]) T {
	t.Helper()
	require.NotNil(t, env.Data, "envelope has no data: %+v", env)
	var v T
	require.NoError(t, json.Unmarshal(*env.Data, &v))
	return v
}

// register creates an account and returns its tokens.
func register(t *testing.T, ts *httptest.Server, email string) types.AuthData {
	t.Helper()
	status, env := call(t, ts, http.MethodPost, "/auth/register", "", types.RegisterInput{
		Name: "Ada Lovelace", Email: email, Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	return dataAs[types.AuthData](t, env)
}

func upload(t *testing.T, ts *httptest.Server, token, filename string, content []byte) (int, types.Envelope[json.RawMessage]) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(resumeField, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/resume/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return send(t, req)
}

// makePDF builds a single-page PDF whose content stream draws lines of text.
func makePDF(t *testing.T, lines []string, compress bool) []byte {
	t.Helper()
	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td ")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("0 -14 Td ")
		}
		escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(line)
		fmt.Fprintf(&content, "(%s) Tj ", escaped)
	}
	content.WriteString("ET")

	stream := []byte(content.String())
	dict := fmt.Sprintf("<< /Length %d >>", len(stream))
	if compress {
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		_, err := zw.Write(stream)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		stream = z.Bytes()
		dict = fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>", len(stream))
	}

	var pdf bytes.Buffer
	pdf.WriteString("%PDF-1.4\n4 0 obj\n")
	pdf.WriteString(dict)
	pdf.WriteString("\nstream\n")
	pdf.Write(stream)
	pdf.WriteString("\nendstream\nendobj\n%%EOF\n")
	return pdf.Bytes()
}

var resumeLines = []string{
	"Ada Lovelace",
	"ada@example.com",
	"Backend engineer: Go, Kubernetes, PostgreSQL, Docker (5 years)",
}
