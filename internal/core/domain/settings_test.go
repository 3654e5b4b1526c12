package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		want     bool
	}{
		{AIProviderOllama, true},
		{AIProviderOpenAI, true},
		{AIProviderAnthropic, true},
		{AIProviderGemini, true},
		{AIProvider("litellm"), false},
		{AIProvider(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}

func TestAIProvider_APIKeyEnvVar(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", AIProviderOpenAI.APIKeyEnvVar())
	assert.Equal(t, "ANTHROPIC_API_KEY", AIProviderAnthropic.APIKeyEnvVar())
	assert.Equal(t, "GEMINI_API_KEY", AIProviderGemini.APIKeyEnvVar())
	assert.Empty(t, AIProviderOllama.APIKeyEnvVar())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, unknownDescription, AIProvider("bogus").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{
			name:     "empty settings",
			settings: LLMSettings{},
			want:     false,
		},
		{
			name:     "ollama needs no key",
			settings: LLMSettings{Provider: AIProviderOllama},
			want:     true,
		},
		{
			name:     "openai without key",
			settings: LLMSettings{Provider: AIProviderOpenAI},
			want:     false,
		},
		{
			name:     "openai with key",
			settings: LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"},
			want:     true,
		},
		{
			name:     "unknown provider",
			settings: LLMSettings{Provider: "bogus", APIKey: "key"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultGenerationSettings(t *testing.T) {
	defaults := DefaultGenerationSettings()
	assert.InDelta(t, 0.7, defaults.Temperature, 0.001)
	assert.Equal(t, 32768, defaults.MaxTokens)
	assert.InDelta(t, 1.0, defaults.TopP, 0.001)
}
