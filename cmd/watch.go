package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/discovery"
	"github.com/schemaforge/schemaforge/internal/manifest"
	"github.com/schemaforge/schemaforge/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Watch the schema tree and resync manifests on change",
	Long: `Watch the schema root and re-run manifest synchronization whenever
modules are added, renamed, or removed. Events are debounced so a module
materializing file by file triggers a single sync after the writes settle.

Examples:
  schemaforge watch
  schemaforge watch --debounce 2s`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before resyncing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.SchemaRoot); err != nil {
		return fmt.Errorf("schema root %s: %w", cfg.SchemaRoot, err)
	}

	w, err := watcher.New(watchDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(cfg.SchemaRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.SchemaRoot, err)
	}

	scanner := discovery.NewScanner(cfg.ReservedNames, logger)
	synchronizer := manifest.NewSynchronizer(false, logger)

	resync := func() {
		modules, err := scanner.Discover(cfg.SchemaRoot)
		if err != nil {
			logger.Error("discovery failed", "error", err)
			return
		}
		for _, outcome := range synchronizer.SyncAll(cfg.Ecosystems, modules) {
			if outcome.Err != nil {
				fmt.Fprintf(os.Stderr, "sync error: %v\n", outcome.Err)
			} else if outcome.Result == manifest.ResultChanged {
				fmt.Printf("%s: %s updated\n", outcome.Ecosystem, outcome.Manifest)
			}
		}
	}

	// One pass up front so the watch starts from a consistent state.
	resync()
	fmt.Printf("Watching %s for module changes (Ctrl+C to stop)\n", cfg.SchemaRoot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx, resync); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
