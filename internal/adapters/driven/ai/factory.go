// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/chai-engine/promptchain/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/chai-engine/promptchain/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/chai-engine/promptchain/internal/adapters/driven/llm/ollama"
	openaillm "github.com/chai-engine/promptchain/internal/adapters/driven/llm/openai"
	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings domain.LLMSettings, timeout time.Duration) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	case domain.AIProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrConfigInvalid, settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity with a bounded Ping. Invalid credentials surface here,
// before any combination is processed.
func CreateAndValidateLLMService(settings domain.LLMSettings, timeout time.Duration) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings, timeout)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("LLM service validation failed: %w", err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a
// service and pinging it. Used by the settings wizard to validate
// credentials on configuration.
func ValidateLLMConfig(settings domain.LLMSettings) error {
	svc, err := CreateLLMService(settings, 0)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
