package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proj-coursebook/change-tracker/pkg/collect"
)

var stateJSON bool

var stateCmd = &cobra.Command{
	Use:   "state <path>",
	Short: "Run a tracking pass and print the state of one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tr, err := newTracker(cfg)
		if err != nil {
			return err
		}

		files, err := collect.Collect(cfg.Root, cfg.CollectOptions())
		if err != nil {
			return err
		}
		if _, err := tr.TrackChanges(cmd.Context(), files); err != nil {
			return err
		}

		path := filepath.ToSlash(filepath.Clean(args[0]))
		state, ok := tr.GetFileState(path)
		if !ok {
			return fmt.Errorf("%s is not tracked", path)
		}

		out := cmd.OutOrStdout()
		if stateJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(state)
		}

		prev, ok := state.PreviousFingerprint()
		if ok {
			fmt.Fprintf(out, "%s\t%s\t%s\n", state.Status(), path, prev)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", state.Status(), path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().BoolVar(&stateJSON, "json", false, "Output in JSON format")
}
