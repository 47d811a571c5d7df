// Package llm wraps the generative model used by the development backend to
// score a résumé against a job description.
package llm

import "os"

// ModelTier is the capability level of a model.
type ModelTier string

const (
	// TierLite is for cheap classification and extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as a match analysis.
	TierStandard ModelTier = "standard"
)

// Provider is an LLM vendor.
type Provider string

// ProviderGemini is Google Gemini, the only supported provider.
const ProviderGemini Provider = "gemini"

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey = "GEMINI_API_KEY"
	EnvModel  = "GEMINI_MODEL"
)

// Config holds the model configuration.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// ConfigFromEnv returns DefaultConfig with the standard model overridden by GEMINI_MODEL.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv(EnvModel); model != "" {
		cfg = cfg.WithModel(TierStandard, model)
	}
	return cfg
}

// GetModel returns the model name for a tier, falling back to standard then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
