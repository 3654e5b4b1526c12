package file

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chai-engine/promptchain/internal/core/domain"
)

// DefaultRunConfigPath is the run-config file looked up when --config
// is not given.
const DefaultRunConfigPath = "promptchain.toml"

// runConfigFile is the on-disk TOML shape of a run configuration.
type runConfigFile struct {
	VarADir      string `toml:"var_a_dir"`
	VarBDir      string `toml:"var_b_dir"`
	OutputDir    string `toml:"output_dir"`
	SystemPrompt string `toml:"system_prompt"`
	TaskPrompt   string `toml:"task_prompt"`

	LLM struct {
		Provider string `toml:"provider"`
		Model    string `toml:"model"`
		BaseURL  string `toml:"base_url"`
	} `toml:"llm"`

	Generation struct {
		Temperature float64  `toml:"temperature"`
		MaxTokens   int      `toml:"max_tokens"`
		TopP        float64  `toml:"top_p"`
		Stop        []string `toml:"stop"`
	} `toml:"generation"`

	Run struct {
		RequestsPerMinute     int `toml:"requests_per_minute"`
		RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
	} `toml:"run"`
}

// LoadRunConfig reads and validates a run configuration from a TOML
// file. Field-level path validation (directories exist, prompt files
// readable) happens later in the input loader; this only checks the
// file parses and the five required paths are present.
func LoadRunConfig(path string) (domain.RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("%w: read run config %q: %v (run 'promptchain init' to create a template)",
			domain.ErrConfigInvalid, path, err)
	}

	var raw runConfigFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return domain.RunConfig{}, fmt.Errorf("%w: parse run config %q: %v", domain.ErrConfigInvalid, path, err)
	}

	required := map[string]string{
		"var_a_dir":     raw.VarADir,
		"var_b_dir":     raw.VarBDir,
		"output_dir":    raw.OutputDir,
		"system_prompt": raw.SystemPrompt,
		"task_prompt":   raw.TaskPrompt,
	}
	for key, value := range required {
		if value == "" {
			return domain.RunConfig{}, fmt.Errorf("%w: run config %q is missing required field %q",
				domain.ErrConfigInvalid, path, key)
		}
	}

	cfg := domain.RunConfig{
		VarADir:          raw.VarADir,
		VarBDir:          raw.VarBDir,
		OutputDir:        raw.OutputDir,
		SystemPromptPath: raw.SystemPrompt,
		TaskPromptPath:   raw.TaskPrompt,
		LLM: domain.LLMSettings{
			Provider: domain.AIProvider(raw.LLM.Provider),
			Model:    raw.LLM.Model,
			BaseURL:  raw.LLM.BaseURL,
		},
		Generation: domain.DefaultGenerationSettings(),
		Run:        domain.DefaultRunSettings(),
	}

	if raw.Generation.Temperature > 0 {
		cfg.Generation.Temperature = raw.Generation.Temperature
	}
	if raw.Generation.MaxTokens > 0 {
		cfg.Generation.MaxTokens = raw.Generation.MaxTokens
	}
	if raw.Generation.TopP > 0 {
		cfg.Generation.TopP = raw.Generation.TopP
	}
	if len(raw.Generation.Stop) > 0 {
		cfg.Generation.Stop = raw.Generation.Stop
	}
	if raw.Run.RequestsPerMinute > 0 {
		cfg.Run.RequestsPerMinute = raw.Run.RequestsPerMinute
	}
	if raw.Run.RequestTimeoutSeconds > 0 {
		cfg.Run.RequestTimeout = time.Duration(raw.Run.RequestTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

// runConfigTemplate is written by 'promptchain init'.
const runConfigTemplate = `# promptchain run configuration.
# Fill in the five paths below, then run 'promptchain run'.

var_a_dir = "<path/to/variable_a_context_directory>"
var_b_dir = "<path/to/variable_b_context_directory>"
output_dir = "<path/to/output_directory>"
system_prompt = "<path/to/system_prompt.txt>"
task_prompt = "<path/to/task_prompt.txt>"

[llm]
# One of: openai, anthropic, gemini, ollama.
# API keys come from OPENAI_API_KEY / ANTHROPIC_API_KEY / GEMINI_API_KEY,
# or from 'promptchain settings wizard'.
provider = "openai"
model = ""
base_url = ""

[generation]
temperature = 0.7
max_tokens = 32768
top_p = 1.0

[run]
# 0 disables throttling between model calls.
requests_per_minute = 0
request_timeout_seconds = 120
`

// WriteRunConfigTemplate writes a template run-config file for the
// user to fill in. Refuses to overwrite an existing file.
func WriteRunConfigTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %q already exists", domain.ErrConfigInvalid, path)
	}
	return os.WriteFile(path, []byte(runConfigTemplate), 0o644)
}
