// Package cli implements the promptchain command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chai-engine/promptchain/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configPath  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "promptchain",
	Short: "Batch LLM completions over combinations of context files",
	Long: `promptchain runs one LLM completion for every pair in the cartesian
product of two directories of context files (variant A and variant B),
combined with a fixed system prompt and task prompt, and writes each
response to a deterministic output file.

A bare invocation reads promptchain.toml and executes the full
combination set non-interactively.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag || os.Getenv("PROMPTCHAIN_VERBOSE") != "" {
			logger.SetVerbose(true)
		}
	},
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "run configuration file (default promptchain.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}
