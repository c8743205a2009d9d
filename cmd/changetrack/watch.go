package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/spf13/cobra"

	lifecycleadapter "github.com/proj-coursebook/change-tracker/pkg/adapters/lifecycle"
	"github.com/proj-coursebook/change-tracker/pkg/adapters/watch"
)

var (
	watchDebounce time.Duration
	watchJSON     bool
	watchAll      bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track changes continuously as files are written",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tr, err := newTracker(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results := make(chan watch.Result)
		spec := supervisor.Spec{
			Name: "change-watcher",
			Type: string(worker.TypeGoroutine),
			Factory: func() (worker.Worker, error) {
				return watch.New(tr, watch.Config{
					Root:     cfg.Root,
					Collect:  cfg.CollectOptions(),
					Debounce: watchDebounce,
					Logger:   slog.Default(),
				}, results), nil
			},
			Backoff: supervisor.Backoff{
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2,
				ResetDuration:   time.Minute,
				MaxRestarts:     5,
				MaxDuration:     10 * time.Minute,
			},
			RestartPolicy: supervisor.RestartOnFailure,
		}

		sup := supervisor.New("changetrack", supervisor.StrategyOneForOne, spec)
		if err := sup.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sup.Stop(stopCtx); err != nil {
				slog.Error("failed to stop watcher", "error", err)
			}
		}()

		var srcOpts []lifecycleadapter.SourceOption
		if !watchAll {
			srcOpts = append(srcOpts, lifecycleadapter.ChangedOnly())
		}
		src := lifecycleadapter.NewSource(results, srcOpts...)
		if err := src.Start(ctx); err != nil {
			return err
		}

		slog.Info("watching for changes", "root", cfg.Root, "history", tr.Config().HistoryPath)
		out := cmd.OutOrStdout()
		for event := range src.Events() {
			r, ok := event.(watch.Result)
			if !ok {
				continue
			}
			if r.Err != nil {
				slog.Error("tracking pass failed", "error", r.Err)
				continue
			}
			if watchAll {
				slog.Info(r.String())
			} else {
				slog.Info("changes detected", "files", len(r.States))
			}
			if err := writeStates(out, r.States, watchJSON, false); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before re-tracking")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Output in JSON format")
	watchCmd.Flags().BoolVar(&watchAll, "all", false, "Also list unchanged files")
}
