package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chai-engine/promptchain/internal/adapters/driven/ai"
	configfile "github.com/chai-engine/promptchain/internal/adapters/driven/config/file"
	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/core/ports/driven"
	"github.com/chai-engine/promptchain/internal/core/services"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full combination set",
	Long: `Loads the run configuration, validates all input paths and provider
credentials, then processes every (A,B) combination sequentially:
combine prompt, query the model, save the response.

Exit code is non-zero if the configuration is invalid or any
combination failed.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// newLLMService creates and validates the provider adapter.
// Overridable in tests to inject a stub provider.
var newLLMService = func(settings domain.LLMSettings, timeout time.Duration) (driven.LLMService, error) {
	return ai.CreateAndValidateLLMService(settings, timeout)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	llm, err := newLLMService(cfg.LLM, cfg.Run.RequestTimeout)
	if err != nil {
		return err
	}
	defer llm.Close()

	cmd.Printf("Using %s (%s)\n", cfg.LLM.Provider.Description(), llm.ModelName())

	runner := services.NewRunner(llm, &progressPrinter{cmd: cmd})
	summary, err := runner.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printSummary(cmd, summary)

	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d combinations failed", summary.Failed(), summary.Total)
	}
	return nil
}

// loadRunConfig reads the run-config file and resolves provider
// settings from the config store and environment.
func loadRunConfig() (domain.RunConfig, error) {
	path := configPath
	if path == "" {
		path = configfile.DefaultRunConfigPath
	}

	cfg, err := configfile.LoadRunConfig(path)
	if err != nil {
		return domain.RunConfig{}, err
	}

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("open config store: %w", err)
	}

	stored, err := services.NewSettingsService(store).Get()
	if err != nil {
		return domain.RunConfig{}, err
	}

	cfg.LLM, err = services.ResolveLLMSettings(cfg.LLM, stored)
	if err != nil {
		return domain.RunConfig{}, err
	}

	return cfg, nil
}

// progressPrinter prints per-combination progress to the command output.
type progressPrinter struct {
	cmd *cobra.Command
}

func (p *progressPrinter) RunStarted(runID string, total int) {
	p.cmd.Printf("Run %s: processing %d combinations...\n\n", runID, total)
}

func (p *progressPrinter) CombinationDone(result domain.RunResult, done, total int) {
	if result.Failed() {
		p.cmd.Printf("[%d/%d] FAILED %s: %v\n", done, total, result.Pair(), result.Err)
		return
	}
	p.cmd.Printf("[%d/%d] %s -> %s\n", done, total, result.Pair(), result.OutputPath)
}

func printSummary(cmd *cobra.Command, summary domain.RunSummary) {
	cmd.Println()
	cmd.Println("=== Processing Complete ===")
	cmd.Printf("Succeeded: %d/%d\n", summary.Succeeded, summary.Total)
	cmd.Printf("Time taken: %.2fs\n", summary.Elapsed.Seconds())
	if summary.Succeeded > 0 {
		avg := summary.Elapsed.Seconds() / float64(summary.Succeeded)
		cmd.Printf("Average per combination: %.2fs\n", avg)
	}
	if !summary.AllSucceeded() {
		cmd.Println("Failed pairs (retry manually):")
		for _, pair := range summary.FailedPairs {
			cmd.Printf("  - %s\n", pair)
		}
	}
}
