package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/devserver"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/pages"
)

// flagCommand declares the persistent flags loadConfig inspects on a bare command.
func flagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "")
	return cmd
}

func resetGlobals(t *testing.T) {
	t.Helper()
	configPath, apiURL, verbose, noColor = "", "", false, false
	t.Cleanup(func() { configPath, apiURL, verbose, noColor = "", "", false, false })
}

func TestLoadConfig_Layering(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "jobpilot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_url": "http://file.example",
		"session_file": "/tmp/from-file.json",
		"page_size": 4,
		"log_level": "warn"
	}`), 0o600))
	configPath = path

	t.Setenv(config.EnvAPIURL, "http://env.example")
	t.Setenv(config.EnvSessionFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "json")

	cfg, err := loadConfig(flagCommand())
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.APIURL, "environment beats file")
	assert.Equal(t, "/tmp/from-file.json", cfg.SessionFile)
	assert.Equal(t, 4, cfg.PageSize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, config.DefaultTimeoutSeconds, cfg.TimeoutSeconds, "defaults fill the rest")
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	resetGlobals(t)
	t.Setenv(config.EnvAPIURL, "http://env.example")

	cmd := flagCommand()
	require.NoError(t, cmd.Flags().Set("api-url", "http://flag.example"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example", cfg.APIURL)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	resetGlobals(t)
	t.Setenv(config.EnvAPIURL, "")

	_, err := loadConfig(flagCommand())
	assert.ErrorContains(t, err, "'api_url' is required")

	configPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = loadConfig(flagCommand())
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"login"}, {"register"}, {"logout"}, {"profile"}, {"dashboard"},
		{"jobs"}, {"jobs", "apply"}, {"jobs", "create"},
		{"applications"}, {"applications", "set-status"},
		{"analyze"}, {"resume"}, {"resume", "upload"}, {"serve-dev"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

// runCLI executes the root command against ts and returns stdout and stderr.
func runCLI(t *testing.T, ts *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(append([]string{"--api-url", ts.URL}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLI_AgainstDevServer(t *testing.T) {
	resetGlobals(t)
	t.Setenv(config.EnvSessionFile, filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("NO_COLOR", "1")

	srv, err := devserver.New(devserver.Config{
		JWT:      &config.JWTConfig{Secret: "cli-secret", AccessTTLMinutes: 15, RefreshTTLHours: 24},
		Password: &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		Logger:   logger.Discard(),
		Seed:     true,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	_, stderr, err := runCLI(t, ts, "dashboard")
	assert.ErrorIs(t, err, pages.ErrLoginRequired)
	assert.Contains(t, stderr, "jobpilot login")

	out, _, err := runCLI(t, ts, "register", "--name", "Ada Lovelace", "--email", "ada@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created for ada@example.com")

	out, _, err = runCLI(t, ts, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "Email:  ada@example.com")

	out, _, err = runCLI(t, ts, "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "JOBS (12)")
	assert.Contains(t, out, "Upload a resume to see match scores")

	out, _, err = runCLI(t, ts, "jobs", "--keyword", "kafka")
	require.NoError(t, err)
	assert.Contains(t, out, "JOBS (3)")
	assert.Contains(t, out, "Filters: keyword=kafka")

	_, _, err = runCLI(t, ts, "analyze", "--text", "We need Go, Kafka and Kubernetes experience for this backend role.")
	assert.ErrorIs(t, err, pages.ErrResumeRequired)

	out, _, err = runCLI(t, ts, "applications", "--status", "interview")
	require.NoError(t, err)
	assert.Contains(t, out, "[Interview 0]")
	assert.Contains(t, out, "No applications")

	_, _, err = runCLI(t, ts, "applications", "set-status", "missing", "offer")
	assert.ErrorContains(t, err, "Application missing not found")

	_, _, err = runCLI(t, ts, "applications", "set-status", "missing", "ghosted")
	assert.ErrorContains(t, err, "unknown application status")

	out, _, err = runCLI(t, ts, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out Ada Lovelace <ada@example.com>")

	out, _, err = runCLI(t, ts, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored session")
}
