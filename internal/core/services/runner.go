package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driven"
	"github.com/chai-engine/promptchain/internal/core/ports/driving"
	"github.com/chai-engine/promptchain/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.RunnerService = (*Runner)(nil)

// Runner executes the pipeline over the full combination set:
// Load -> Combine -> Query -> Save, one combination at a time.
type Runner struct {
	llm      driven.LLMService
	observer driving.RunObserver
}

// NewRunner creates a runner backed by the given LLM service.
// The observer may be nil.
func NewRunner(llm driven.LLMService, observer driving.RunObserver) *Runner {
	return &Runner{
		llm:      llm,
		observer: observer,
	}
}

// Run processes every (A,B) combination sequentially. Iteration order
// is fixed: outer loop over variant A, inner loop over variant B, both
// sorted by filename, so reruns are reproducible.
//
// Provider and write errors mark the combination failed and the run
// continues; only pre-flight configuration errors (bad inputs, output
// directory not creatable) return a non-nil error.
func (r *Runner) Run(ctx context.Context, cfg domain.RunConfig) (domain.RunSummary, error) {
	inputs, err := LoadRunInputs(cfg)
	if err != nil {
		return domain.RunSummary{}, err
	}
	if err := EnsureOutputDir(cfg.OutputDir); err != nil {
		return domain.RunSummary{}, err
	}

	summary := domain.RunSummary{
		RunID: uuid.New().String(),
		Total: inputs.Combinations(),
	}

	logger.Section("Run")
	logger.Info("run %s: %d x %d = %d combinations",
		summary.RunID, len(inputs.VariantsA), len(inputs.VariantsB), summary.Total)
	if r.observer != nil {
		r.observer.RunStarted(summary.RunID, summary.Total)
	}

	limiter := newCallLimiter(cfg.Run.RequestsPerMinute)
	start := time.Now()
	done := 0

	for _, a := range inputs.VariantsA {
		for _, b := range inputs.VariantsB {
			result := r.processCombination(ctx, cfg, inputs.Template, a, b, limiter)
			done++

			if result.Failed() {
				summary.FailedPairs = append(summary.FailedPairs, result.Pair())
				logger.Warn("combination %s failed: %v", result.Pair(), result.Err)
			} else {
				summary.Succeeded++
			}

			if r.observer != nil {
				r.observer.CombinationDone(result, done, summary.Total)
			}
		}
	}

	summary.Elapsed = time.Since(start)
	logger.Info("run %s complete: %d/%d succeeded in %s",
		summary.RunID, summary.Succeeded, summary.Total, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}

// processCombination runs one combination end to end. Each combination
// owns its CombinedPrompt and RunResult exclusively; there is no
// cross-combination shared mutable state.
func (r *Runner) processCombination(
	ctx context.Context,
	cfg domain.RunConfig,
	tpl domain.PromptTemplate,
	a, b domain.ContextItem,
	limiter *rate.Limiter,
) domain.RunResult {
	result := domain.RunResult{SourceA: a.Name, SourceB: b.Name}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			result.Err = err
			return result
		}
	}

	prompt := Combine(tpl, a, b)
	logger.Debug("querying model for %s (%d bytes)", result.Pair(), len(prompt.Text))

	response, err := r.query(ctx, cfg, prompt.Text)
	if err != nil {
		result.Err = err
		return result
	}
	result.Response = response

	path, err := WriteResponse(cfg.OutputDir, a.Name, b.Name, response)
	if err != nil {
		result.Err = err
		return result
	}
	result.OutputPath = path

	return result
}

// query performs one model call with the configured per-call timeout.
// Timeout expiry surfaces as a context error and is treated like any
// other provider error: the combination fails, the run continues.
func (r *Runner) query(ctx context.Context, cfg domain.RunConfig, prompt string) (string, error) {
	timeout := cfg.Run.RequestTimeout
	if timeout <= 0 {
		timeout = domain.DefaultRunSettings().RequestTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return r.llm.Generate(callCtx, prompt, driven.GenerateOptions{
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
		TopP:        cfg.Generation.TopP,
		StopWords:   cfg.Generation.Stop,
	})
}

// newCallLimiter builds a token bucket from a requests-per-minute
// setting. Burst of one keeps calls evenly spaced. Returns nil when
// throttling is disabled.
func newCallLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
}
