package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the history so the next run reports every file as new",
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

		if err := tr.ClearHistory(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "History cleared:", tr.Config().HistoryPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
