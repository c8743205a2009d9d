package main

import (
	"github.com/spf13/cobra"

	"github.com/proj-coursebook/change-tracker/pkg/collect"
)

var (
	trackJSON    bool
	trackChanged bool
	trackDisable bool
	trackInclude []string
	trackExclude []string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Fingerprint files and report what changed since the last run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("include") {
			cfg.Include = trackInclude
		}
		if cmd.Flags().Changed("exclude") {
			cfg.Exclude = append(cfg.Exclude, trackExclude...)
		}
		if trackDisable {
			cfg.Enabled = false
		}

		tr, err := newTracker(cfg)
		if err != nil {
			return err
		}

		files, err := collect.Collect(cfg.Root, cfg.CollectOptions())
		if err != nil {
			return err
		}

		states, err := tr.TrackChanges(cmd.Context(), files)
		if err != nil {
			return err
		}

		return writeStates(cmd.OutOrStdout(), states, trackJSON, trackChanged)
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().BoolVar(&trackJSON, "json", false, "Output in JSON format")
	trackCmd.Flags().BoolVar(&trackChanged, "changed", false, "Only list files that are not unchanged")
	trackCmd.Flags().BoolVar(&trackDisable, "disable", false, "Report every file untracked without touching the history")
	trackCmd.Flags().StringSliceVar(&trackInclude, "include", nil, "Glob patterns to include (replaces configured includes)")
	trackCmd.Flags().StringSliceVar(&trackExclude, "exclude", nil, "Glob patterns to exclude (added to configured excludes)")
}
