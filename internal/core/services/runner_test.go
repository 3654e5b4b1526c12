package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driven"
	"github.com/chai-engine/promptchain/internal/logger"
)

// stubLLM is a test double for the provider port. When err is nil it
// echoes the prompt it was given.
type stubLLM struct {
	mu      sync.Mutex
	err     error
	prompts []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.prompts = append(s.prompts, prompt)
	return prompt, nil
}

func (s *stubLLM) ModelName() string          { return "stub-model" }
func (s *stubLLM) Ping(context.Context) error { return nil }
func (s *stubLLM) Close() error               { return nil }

// recordingObserver captures progress callbacks.
type recordingObserver struct {
	runID string
	total int
	pairs []string
}

func (o *recordingObserver) RunStarted(runID string, total int) {
	o.runID = runID
	o.total = total
}

func (o *recordingObserver) CombinationDone(result domain.RunResult, _, _ int) {
	o.pairs = append(o.pairs, result.Pair())
}

func runnerConfig(t *testing.T, aFiles, bFiles map[string]string) domain.RunConfig {
	t.Helper()

	aDir, bDir := t.TempDir(), t.TempDir()
	for name, content := range aFiles {
		writeFile(t, aDir, name, content)
	}
	for name, content := range bFiles {
		writeFile(t, bDir, name, content)
	}

	promptDir := t.TempDir()
	return domain.RunConfig{
		VarADir:          aDir,
		VarBDir:          bDir,
		OutputDir:        filepath.Join(t.TempDir(), "out"),
		SystemPromptPath: writeFile(t, promptDir, "system.txt", "SYS"),
		TaskPromptPath:   writeFile(t, promptDir, "task.txt", "TASK"),
		Generation:       domain.DefaultGenerationSettings(),
		Run:              domain.DefaultRunSettings(),
	}
}

func TestRunner_SingleCombinationEchoProvider(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "Hello"},
		map[string]string{"b1.txt": "World"},
	)

	runner := NewRunner(&stubLLM{}, nil)
	summary, err := runner.Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.True(t, summary.AllSucceeded())
	assert.NotEmpty(t, summary.RunID)

	content, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a1__b1.txt"))
	require.NoError(t, err)
	want := "SYS\n\nVARIABLE A CONTEXT:\nHello\n\nVARIABLE B CONTEXT:\nWorld\n\nTASK:\nTASK"
	assert.Equal(t, want, string(content))
}

func TestRunner_ProcessesCartesianProductInOrder(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "one", "a2.txt": "two"},
		map[string]string{"b1.txt": "x", "b2.txt": "y", "b3.txt": "z"},
	)

	observer := &recordingObserver{}
	runner := NewRunner(&stubLLM{}, observer)
	summary, err := runner.Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 6, summary.Succeeded)
	assert.Equal(t, summary.RunID, observer.runID)
	assert.Equal(t, 6, observer.total)

	// Outer loop over A, inner over B, sorted by filename.
	assert.Equal(t, []string{
		"a1 x b1", "a1 x b2", "a1 x b3",
		"a2 x b1", "a2 x b2", "a2 x b3",
	}, observer.pairs)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestRunner_ProviderFailuresDoNotAbortRun(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "one", "a2.txt": "two"},
		map[string]string{"b1.txt": "x"},
	)

	runner := NewRunner(&stubLLM{err: domain.ErrProviderUnavailable}, nil)
	summary, err := runner.Run(context.Background(), cfg)

	require.NoError(t, err, "per-combination failures must not abort the run")
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed())
	assert.Equal(t, []string{"a1 x b1", "a2 x b1"}, summary.FailedPairs)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed combinations must not produce output files")
}

func TestRunner_EmptyVariantDirFailsFast(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{},
		map[string]string{"b1.txt": "x"},
	)

	llm := &stubLLM{}
	runner := NewRunner(llm, nil)
	_, err := runner.Run(context.Background(), cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyVariantDir)
	assert.Empty(t, llm.prompts, "no model call may happen on configuration error")

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "no output directory on configuration error")
}

func TestRunner_CollidingOutputNamesFailFast(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a.md": "markdown", "a.txt": "text"},
		map[string]string{"b1.txt": "x"},
	)

	llm := &stubLLM{}
	runner := NewRunner(llm, nil)
	_, err := runner.Run(context.Background(), cfg)

	require.Error(t, err, "colliding output names must not silently overwrite each other")
	assert.ErrorIs(t, err, domain.ErrConfigInvalid)
	assert.Empty(t, llm.prompts, "no model call may happen on configuration error")
}

func TestRunner_RerunProducesIdenticalFilenames(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "Hello"},
		map[string]string{"b1.txt": "World"},
	)

	runner := NewRunner(&stubLLM{}, nil)

	_, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	first, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name(), second[i].Name())
	}
}

func TestRunner_VerboseSectionBanner(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "Hello"},
		map[string]string{"b1.txt": "World"},
	)

	runner := NewRunner(&stubLLM{}, nil)
	_, err := runner.Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "=== Run ===")
}

func TestRunner_CancelledContext(t *testing.T) {
	cfg := runnerConfig(t,
		map[string]string{"a1.txt": "Hello"},
		map[string]string{"b1.txt": "World"},
	)
	cfg.Run.RequestsPerMinute = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// First call consumes the limiter burst without waiting, so use a
	// provider that reports the cancellation instead.
	runner := NewRunner(&stubLLM{err: context.Canceled}, nil)
	summary, err := runner.Run(ctx, cfg)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, []string{"a1 x b1"}, summary.FailedPairs)
}
