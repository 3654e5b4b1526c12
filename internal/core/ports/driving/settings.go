package driving

import "github.com/chai-engine/promptchain/internal/core/domain"

// SettingsService manages persistent provider settings.
type SettingsService interface {
	// Get retrieves the stored LLM settings, with environment
	// variables taking precedence for API keys.
	Get() (domain.LLMSettings, error)

	// Save persists LLM settings.
	Save(settings domain.LLMSettings) error
}
