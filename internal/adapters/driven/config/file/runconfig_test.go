package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-engine/promptchain/internal/core/domain"
)

func writeRunConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "promptchain.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalRunConfig = `
var_a_dir = "/tmp/a"
var_b_dir = "/tmp/b"
output_dir = "/tmp/out"
system_prompt = "/tmp/system.txt"
task_prompt = "/tmp/task.txt"
`

func TestLoadRunConfig_Minimal(t *testing.T) {
	path := writeRunConfig(t, minimalRunConfig)

	cfg, err := LoadRunConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/a", cfg.VarADir)
	assert.Equal(t, "/tmp/b", cfg.VarBDir)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "/tmp/system.txt", cfg.SystemPromptPath)
	assert.Equal(t, "/tmp/task.txt", cfg.TaskPromptPath)

	// Defaults applied when sections are absent.
	assert.Equal(t, domain.DefaultGenerationSettings(), cfg.Generation)
	assert.Equal(t, domain.DefaultRunSettings(), cfg.Run)
}

func TestLoadRunConfig_FullSections(t *testing.T) {
	path := writeRunConfig(t, minimalRunConfig+`
[llm]
provider = "gemini"
model = "gemini-2.0-flash"

[generation]
temperature = 0.2
max_tokens = 1024
top_p = 0.9

[run]
requests_per_minute = 30
request_timeout_seconds = 60
`)

	cfg, err := LoadRunConfig(path)

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.Generation.Temperature, 0.001)
	assert.Equal(t, 1024, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.9, cfg.Generation.TopP, 0.001)
	assert.Equal(t, 30, cfg.Run.RequestsPerMinute)
	assert.Equal(t, 60*time.Second, cfg.Run.RequestTimeout)
}

func TestLoadRunConfig_MissingRequiredField(t *testing.T) {
	path := writeRunConfig(t, `
var_a_dir = "/tmp/a"
var_b_dir = "/tmp/b"
output_dir = "/tmp/out"
system_prompt = "/tmp/system.txt"
`)

	_, err := LoadRunConfig(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "task_prompt")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.toml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "promptchain init")
}

func TestWriteRunConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptchain.toml")

	require.NoError(t, WriteRunConfigTemplate(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "var_a_dir")
	assert.Contains(t, string(content), "[generation]")

	// Refuses to clobber an existing config.
	err = WriteRunConfigTemplate(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
}
