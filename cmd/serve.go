// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pateldev/github-contributions/internal/config"
	"github.com/pateldev/github-contributions/internal/gateway"
	"github.com/pateldev/github-contributions/internal/server"
	"github.com/pateldev/github-contributions/internal/summarize"
	"github.com/pateldev/github-contributions/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the contributions report HTTP server",
	Long: `Starts the HTTP server exposing the repositories listing, the CSV
contributions export and the JSON contribution summary endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags)
		if verbose {
			logger.SetOutput(os.Stderr)
		}

		cfg := config.Load()
		if cfg.GitHubToken == "" {
			return errors.New("GITHUB_TOKEN is not set")
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
		if err != nil {
			return errors.Wrap(err, "failed to create GitHub gateway")
		}

		var summarizer usecase.Summarizer
		if cfg.OpenAIAPIKey != "" {
			summarizer = summarize.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		} else {
			zlog.Warn().Msg("OPENAI_API_KEY is not set; the contribution-summary endpoint will report summarization failures")
		}

		reporter := usecase.NewReporter(githubGateway, summarizer, logger)
		srv, err := server.NewServer(reporter)
		if err != nil {
			return errors.Wrap(err, "failed to create server")
		}

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.Router(),
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			zlog.Info().Str("addr", cfg.HTTPAddr).Msg("Starting HTTP server")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		select {
		case err := <-errChan:
			return errors.Wrap(err, "http server error")
		case <-stop:
			zlog.Info().Msg("Shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return errors.Wrap(err, "server shutdown failed")
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
