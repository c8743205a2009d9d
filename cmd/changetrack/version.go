package main

import (
	"fmt"

	changetracker "github.com/proj-coursebook/change-tracker"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of changetrack",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "changetrack version %s\n", changetracker.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
