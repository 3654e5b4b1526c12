package driven

import "context"

// LLMService provides text completion through a configured provider.
// It is the only component that performs network I/O; the pipeline is
// polymorphic over implementations so providers can be swapped without
// changing caller code.
//
// Implementations include:
//   - OpenAI (chat completions)
//   - Anthropic (messages)
//   - Google Gemini (generateContent)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion for a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used pre-flight so invalid credentials fail the run
	// before any combination is processed.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling parameter. Zero means provider default.
	TopP float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
