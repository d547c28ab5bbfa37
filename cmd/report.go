package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pateldev/github-contributions/internal/export"
	"github.com/pateldev/github-contributions/internal/gateway"
	"github.com/pateldev/github-contributions/internal/usecase"
)

var (
	reportUser   string
	reportMonths int
	reportRepo   string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a merged pull request CSV report for a user",
	Long: `Fetches the merged pull requests for a GitHub user over the trailing
calendar months window and writes the report to a CSV file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags)
		if verbose {
			logger.SetOutput(os.Stderr)
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return errors.New("GITHUB_TOKEN is not set")
		}

		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			return errors.Wrap(err, "failed to create GitHub gateway")
		}
		reporter := usecase.NewReporter(githubGateway, nil, logger)

		spinner, _ := pterm.DefaultSpinner.Start("Fetching merged pull requests for ", reportUser)
		report, err := reporter.GenerateReport(context.Background(), reportUser, reportMonths, reportRepo)
		if err != nil {
			spinner.Fail("Failed to generate report")
			return err
		}
		spinner.Success("Fetched ", len(report.Rows), " merged pull requests")

		data, err := export.CSV(report)
		if err != nil {
			return errors.Wrap(err, "failed to encode report")
		}

		out := reportOut
		if out == "" {
			out = export.Filename(reportUser, reportRepo)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrap(err, "failed to write report")
		}

		pterm.Info.Println("Report window:", report.Interval.String())
		pterm.Success.Println("Report written to", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportUser, "user", "u", "", "GitHub username to report on (required)")
	reportCmd.Flags().IntVarP(&reportMonths, "months", "m", 6, "Number of trailing calendar months to include")
	reportCmd.Flags().StringVar(&reportRepo, "repo", "", "Restrict the report to a single repository name")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output CSV file (defaults to the report filename)")
	_ = reportCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(reportCmd)
}
