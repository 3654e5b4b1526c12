package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-engine/promptchain/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    domain.LLMSettings
		wantErr     bool
		errContains string
		wantModel   string
	}{
		{
			name: "ollama needs no key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
			wantModel: "llama3.2",
		},
		{
			name: "openai with key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "sk-test",
			},
			wantModel: "gpt-4o-mini",
		},
		{
			name: "openai without key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr:     true,
			errContains: "API key",
		},
		{
			name: "anthropic with key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name: "gemini with key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
			},
			wantModel: "gemini-2.0-flash",
		},
		{
			name: "gemini without key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderGemini,
			},
			wantErr:     true,
			errContains: "API key",
		},
		{
			name: "unsupported provider",
			settings: domain.LLMSettings{
				Provider: "litellm",
			},
			wantErr:     true,
			errContains: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings, 0)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConfigInvalid)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}
