// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "project-pulse",
	Short: "A CLI tool to report popularity and activity of a project's repositories.",
	Long: `project-pulse collects GitHub stats for a project's main repositories and
its language SDKs, plus Stack Overflow tag counts, and writes them as a
timestamped markdown report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Progress and per-item failures are logged to stderr unless silenced.
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Discard progress and error logging")
}
