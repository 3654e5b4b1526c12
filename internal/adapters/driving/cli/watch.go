package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/chai-engine/promptchain/internal/core/domain"
	"github.com/chai-engine/promptchain/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events (editors often
// write a file several times in quick succession) into one re-run.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the combination set when input files change",
	Long: `Executes the full combination set, then watches the variant
directories and prompt files and re-runs whenever they change.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	// First pass; a configuration error aborts watch mode, per-run
	// combination failures don't.
	if err := runRun(cmd, args); err != nil {
		if domain.IsConfigError(err) {
			return err
		}
		cmd.PrintErrf("run finished with failures: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range []string{cfg.VarADir, cfg.VarBDir, cfg.SystemPromptPath, cfg.TaskPromptPath} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
	}

	cmd.Println("\nWatching for changes (Ctrl-C to stop)...")

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change detected: %s (%s)", event.Name, event.Op)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-rerun:
			cmd.Println("\nInputs changed, re-running...")
			if err := runRun(cmd, args); err != nil {
				cmd.PrintErrf("run finished with failures: %v\n", err)
			}
			cmd.Println("\nWatching for changes (Ctrl-C to stop)...")
		}
	}
}
