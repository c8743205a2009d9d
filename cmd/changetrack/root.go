package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	changetracker "github.com/proj-coursebook/change-tracker"
	"github.com/proj-coursebook/change-tracker/internal/config"
	"github.com/proj-coursebook/change-tracker/pkg/logging"
)

var (
	verbose     bool
	trace       bool
	configPath  string
	historyFlag string
	rootFlag    string
	algorithm   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "changetrack",
	Short: "Report which files changed since the last run",
	Long: `changetrack fingerprints the files under a directory and compares them with
the fingerprints saved by the previous run, so pipelines can skip unchanged inputs.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(os.Stderr, verbose, trace))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "Log every file (implies --verbose)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .changetracker.{yaml,yml,toml,ini,json} in the working directory)")
	rootCmd.PersistentFlags().StringVar(&historyFlag, "history", "", "History file path (relative paths are resolved against --root)")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "Directory to scan")
	rootCmd.PersistentFlags().StringVar(&algorithm, "algorithm", "", "Fingerprint algorithm: md5 or xxh3")
}

// loadConfig reads the config file and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("get working directory: %w", err)
	}

	cfg, path, found, err := config.Load(configPath, wd)
	if err != nil {
		return config.Config{}, err
	}
	if found {
		slog.Debug("config loaded", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("history") {
		cfg.HistoryPath = historyFlag
	}
	if flags.Changed("root") {
		cfg.Root = rootFlag
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	return cfg, cfg.Validate()
}

func newTracker(cfg config.Config) (*changetracker.Tracker, error) {
	tc := cfg.TrackerConfig()
	return changetracker.New(tc.HistoryPath,
		changetracker.WithEnabled(tc.Enabled),
		changetracker.WithAlgorithm(cfg.Algorithm),
		changetracker.WithLogger(slog.Default()),
	)
}
