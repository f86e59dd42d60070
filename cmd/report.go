// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/naka-gawa/project-pulse/internal/config"
	"github.com/naka-gawa/project-pulse/internal/gateway"
	"github.com/naka-gawa/project-pulse/internal/render"
	"github.com/naka-gawa/project-pulse/internal/usecase"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetches repository and community stats and writes a markdown report",
	Long: `Fetches stars, forks, weekly commits, issue counts, license and latest release
for every configured repository and SDK, plus Stack Overflow question counts for
the configured tags, and writes github-stats-<date>-<time>.md.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd)
	},
}

// runReport generates and writes the report described by the command flags.
func runReport(cmd *cobra.Command) error {
	quiet, _ := cmd.InheritedFlags().GetBool("quiet")
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	if quiet {
		logger.SetOutput(io.Discard)
	}

	configPath, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	api, _ := cmd.Flags().GetString("api")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if api != config.APIREST && api != config.APIGraphQL {
		return fmt.Errorf("invalid --api %q: use %s or %s", api, config.APIREST, config.APIGraphQL)
	}

	cfg, err := config.Load(configPath, logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.GitHubToken == "" {
		logger.Println("GITHUB_TOKEN is not set; requests are unauthenticated and heavily rate limited.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Inject dependencies and run the main business logic.
	httpClient, err := gateway.NewHTTPClient(cfg.GitHubToken, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	var fetcher gateway.StatsFetcher
	if api == config.APIGraphQL {
		fetcher = gateway.NewGraphQLGateway(httpClient, gateway.DefaultRetryPolicy(), logger)
	} else {
		fetcher = gateway.NewGitHubGateway(httpClient, gateway.DefaultRetryPolicy(), logger)
	}
	tagCounter := gateway.NewStackExchangeGateway(&http.Client{}, cfg.StackExchangeKey, logger)

	targets := usecase.Targets{Projects: cfg.Projects, SDKs: cfg.SDKs, Tags: cfg.Tags}
	generator := usecase.NewGenerator(fetcher, tagCounter, targets, concurrency, logger)

	now := time.Now()
	report := generator.Generate(ctx, now)

	path, err := usecase.WriteReport(outputDir, now, render.Markdown(report))
	if err != nil {
		logger.Printf("Error generating report: %v", err)
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report generated successfully: %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("config", "c", "", "YAML file overriding the projects, sdks and tags lists")
	reportCmd.Flags().StringP("output-dir", "o", ".", "Directory the report file is written to")
	reportCmd.Flags().String("api", config.APIREST, "GitHub API used for repository stats (rest|graphql)")
	reportCmd.Flags().Int("concurrency", 0, "Maximum concurrent repository fetches per group (0 = unlimited)")
	reportCmd.Flags().Duration("timeout", 0, "Abort the whole run after this long (0 = no timeout)")
}
