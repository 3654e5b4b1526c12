package services

import (
	"fmt"
	"os"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driven"
	"github.com/chai-engine/promptchain/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider = "llm.provider"
	keyLLMModel    = "llm.model"
	keyLLMBaseURL  = "llm.base_url"
	keyLLMAPIKey   = "llm.api_key"
)

// SettingsService manages persistent provider settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves the stored LLM settings. An API key present in the
// provider's environment variable takes precedence over the stored one,
// so exported credentials always win.
func (s *SettingsService) Get() (domain.LLMSettings, error) {
	settings := domain.LLMSettings{
		Provider: domain.AIProvider(s.configStore.GetString(keyLLMProvider)),
		Model:    s.configStore.GetString(keyLLMModel),
		BaseURL:  s.configStore.GetString(keyLLMBaseURL),
		APIKey:   s.configStore.GetString(keyLLMAPIKey),
	}

	if env := settings.Provider.APIKeyEnvVar(); env != "" {
		if key := os.Getenv(env); key != "" {
			settings.APIKey = key
		}
	}

	return settings, nil
}

// Save persists LLM settings to the config store.
func (s *SettingsService) Save(settings domain.LLMSettings) error {
	if !settings.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrConfigInvalid, settings.Provider)
	}

	if err := s.configStore.Set(keyLLMProvider, settings.Provider.String()); err != nil {
		return fmt.Errorf("save LLM provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.Model); err != nil {
		return fmt.Errorf("save LLM model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("save LLM base URL: %w", err)
	}
	if err := s.configStore.Set(keyLLMAPIKey, settings.APIKey); err != nil {
		return fmt.Errorf("save LLM API key: %w", err)
	}

	return nil
}

// ResolveLLMSettings merges the run-config [llm] section with stored
// settings and environment credentials. Run-config fields win when set;
// the API key comes from the environment first, then the store.
func ResolveLLMSettings(runCfg domain.LLMSettings, stored domain.LLMSettings) (domain.LLMSettings, error) {
	merged := stored
	if runCfg.Provider != "" {
		merged.Provider = runCfg.Provider
		// A provider switch invalidates the stored model, base URL,
		// and key.
		if runCfg.Provider != stored.Provider {
			merged.Model = ""
			merged.BaseURL = ""
			merged.APIKey = ""
		}
	}
	if runCfg.Model != "" {
		merged.Model = runCfg.Model
	}
	if runCfg.BaseURL != "" {
		merged.BaseURL = runCfg.BaseURL
	}

	if !merged.Provider.IsValid() {
		return domain.LLMSettings{}, fmt.Errorf("%w: no LLM provider configured (set llm.provider or run 'promptchain settings wizard')",
			domain.ErrConfigInvalid)
	}

	if env := merged.Provider.APIKeyEnvVar(); env != "" {
		if key := os.Getenv(env); key != "" {
			merged.APIKey = key
		}
	}

	if merged.Provider.RequiresAPIKey() && merged.APIKey == "" {
		return domain.LLMSettings{}, fmt.Errorf("%w: %s requires an API key (set %s)",
			domain.ErrConfigInvalid, merged.Provider.Description(), merged.Provider.APIKeyEnvVar())
	}

	return merged, nil
}
