package driving

import (
	"context"

	"github.com/chai-engine/promptchain/internal/core/domain"
)

// RunnerService executes the full combination set for one run.
type RunnerService interface {
	// Run processes every (A,B) combination sequentially and returns
	// the run summary. Per-combination failures do not abort the run;
	// only pre-flight configuration errors return a non-nil error.
	Run(ctx context.Context, cfg domain.RunConfig) (domain.RunSummary, error)
}

// RunObserver receives progress notifications during a run.
// The CLI implements this to print per-combination progress lines.
type RunObserver interface {
	// RunStarted is called once after input loading, before the first
	// combination is processed.
	RunStarted(runID string, total int)

	// CombinationDone is called after each combination completes,
	// successfully or not. done counts completed combinations so far.
	CombinationDone(result domain.RunResult, done, total int)
}
