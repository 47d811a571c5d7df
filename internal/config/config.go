// Package config provides configuration loading and validation for the jobpilot CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL      = "JOBPILOT_API_URL"
	EnvSessionFile = "JOBPILOT_SESSION_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultTimeoutSeconds  = 30
	DefaultPageSize        = 10
	DefaultLoadMoreDelayMS = 300
	DefaultFlashTTLMS      = 5000
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	APIURL      string `json:"api_url,omitempty"`      // Backend base URL
	SessionFile string `json:"session_file,omitempty"` // Where access/refresh tokens are persisted

	// Limits
	TimeoutSeconds  int `json:"timeout,omitempty"`            // HTTP timeout per request
	PageSize        int `json:"page_size,omitempty"`          // Jobs shown per "load more"
	LoadMoreDelayMS int `json:"load_more_delay_ms,omitempty"` // Pause before revealing the next page
	FlashTTLMS      int `json:"flash_ttl_ms,omitempty"`       // Lifetime of transient messages

	// Behavior
	LogLevel   string `json:"log_level,omitempty"`
	LogFormat  string `json:"log_format,omitempty"`
	Verbose    bool   `json:"verbose,omitempty"`     // Print request-level detail
	UseBrowser bool   `json:"use_browser,omitempty"` // Render job pages in headless Chrome when fetching by URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns the values that the environment supplies.
func FromEnv() Config {
	return Config{
		APIURL:      os.Getenv(EnvAPIURL),
		SessionFile: os.Getenv(EnvSessionFile),
		LogLevel:    os.Getenv(EnvLogLevel),
		LogFormat:   os.Getenv(EnvLogFormat),
	}
}

// Defaults returns the built-in defaults. The session file lives in the user's home directory.
func Defaults() Config {
	sessionFile := ".jobpilot/session.json"
	if home, err := os.UserHomeDir(); err == nil {
		sessionFile = filepath.Join(home, ".jobpilot", "session.json")
	}
	return Config{
		SessionFile:     sessionFile,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		PageSize:        DefaultPageSize,
		LoadMoreDelayMS: DefaultLoadMoreDelayMS,
		FlashTTLMS:      DefaultFlashTTLMS,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config error: 'api_url' is required (set %s)", EnvAPIURL)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: 'api_url' must be an absolute http(s) URL, got %q", c.APIURL)
	}
	if c.SessionFile == "" {
		return fmt.Errorf("config error: 'session_file' must not be empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config error: 'page_size' must be at least 1")
	}
	if c.LoadMoreDelayMS < 0 {
		return fmt.Errorf("config error: 'load_more_delay_ms' must be non-negative")
	}
	if c.FlashTTLMS < 0 {
		return fmt.Errorf("config error: 'flash_ttl_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied twice by the CLI: environment over file, then built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.SessionFile == "" {
		result.SessionFile = defaults.SessionFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.PageSize == 0 {
		result.PageSize = defaults.PageSize
	}
	if result.LoadMoreDelayMS == 0 {
		result.LoadMoreDelayMS = defaults.LoadMoreDelayMS
	}
	if result.FlashTTLMS == 0 {
		result.FlashTTLMS = defaults.FlashTTLMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadMoreDelay returns the artificial load-more pause.
func (c *Config) LoadMoreDelay() time.Duration {
	return time.Duration(c.LoadMoreDelayMS) * time.Millisecond
}

// FlashTTL returns how long transient messages stay visible.
func (c *Config) FlashTTL() time.Duration {
	return time.Duration(c.FlashTTLMS) * time.Millisecond
}

// envInt reads an integer environment variable, returning def when unset.
func envInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
