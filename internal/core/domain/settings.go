package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available LLM providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// APIKeyEnvVar returns the environment variable the provider's API key
// is read from, or empty for local providers.
func (p AIProvider) APIKeyEnvVar() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// AllProviders lists the supported providers in wizard display order.
func AllProviders() []AIProvider {
	return []AIProvider{AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini, AIProviderOllama}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the model name. Empty selects the provider default.
	Model string

	// BaseURL is the API endpoint. Empty selects the provider default.
	BaseURL string

	// APIKey is the API key (cloud providers only).
	APIKey string
}

// IsConfigured returns true if the provider is set up.
func (s LLMSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// GenerationSettings holds model generation parameters, applied to
// every combination in a run.
type GenerationSettings struct {
	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// TopP is the nucleus sampling parameter.
	TopP float64

	// Stop are sequences that stop generation when encountered.
	Stop []string
}

// DefaultGenerationSettings returns the generation defaults applied
// when a run configuration leaves them unset.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		Temperature: 0.7,
		MaxTokens:   32768,
		TopP:        1.0,
	}
}

// RunSettings holds run-level pacing configuration.
type RunSettings struct {
	// RequestsPerMinute throttles model calls. Zero disables throttling.
	RequestsPerMinute int

	// RequestTimeout bounds each model call.
	RequestTimeout time.Duration
}

// DefaultRunSettings returns conservative pacing defaults.
func DefaultRunSettings() RunSettings {
	return RunSettings{
		RequestsPerMinute: 0,
		RequestTimeout:    120 * time.Second,
	}
}

// RunConfig is the full configuration for one run: the five input
// paths plus provider, generation, and pacing settings.
type RunConfig struct {
	// VarADir is the variant A context directory.
	VarADir string

	// VarBDir is the variant B context directory.
	VarBDir string

	// OutputDir receives one response file per combination.
	OutputDir string

	// SystemPromptPath is the system prompt file.
	SystemPromptPath string

	// TaskPromptPath is the task prompt file.
	TaskPromptPath string

	// LLM is the provider configuration.
	LLM LLMSettings

	// Generation holds model generation parameters.
	Generation GenerationSettings

	// Run holds pacing configuration.
	Run RunSettings
}
