// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-contributions",
	Short: "A service that reports a user's merged GitHub contributions.",
	Long: `github-contributions collects a GitHub user's repositories and the
pull requests merged within a trailing time window, and renders the result
as a CSV export or a JSON summary. Run "serve" to expose the HTTP API or
"report" to write a CSV report from the command line.`,
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
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
