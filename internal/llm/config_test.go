package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "fallback-model"},
	}
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, config.Temperature, newConfig.Temperature)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvModel, "gemini-exp")
	assert.Equal(t, "gemini-exp", ConfigFromEnv().GetModel(TierStandard))

	t.Setenv(EnvModel, "")
	assert.Equal(t, "gemini-2.5-flash", ConfigFromEnv().GetModel(TierStandard))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), nil, "")
	assert.ErrorContains(t, err, EnvAPIKey)

	_, err = NewClient(t.Context(), &Config{Provider: "openai"}, "key")
	assert.ErrorContains(t, err, "unsupported")
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt(JobMatchSchema("Compare the résumé to the job."),
		Section{Label: "Resume", Text: "  Go, Kafka  "},
		Section{Label: "Job description", Text: "Backend engineer"},
	)

	assert.True(t, strings.HasPrefix(prompt, "Compare the résumé to the job."))
	assert.Contains(t, prompt, `"overallScore": integer 0-100 (required)`)
	assert.Contains(t, prompt, "Resume:\n\"\"\"\nGo, Kafka\n\"\"\"")
	assert.Less(t, strings.Index(prompt, "Resume:"), strings.Index(prompt, "Job description:"))
}
