// Package gateway provides gateways to the GitHub and Stack Exchange APIs,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/go-github/v62/github"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

// releaseDateLayout renders publish dates as a short US-style date.
const releaseDateLayout = "1/2/2006"

// StatsFetcher fetches normalized stats for a single repository.
// Implementations never fail outright: errors are reported through RepoResult.Err.
type StatsFetcher interface {
	FetchRepoStats(ctx context.Context, repo domain.RepoIdentifier) domain.RepoResult
}

// GitHubGateway fetches repository stats over the GitHub REST API.
type GitHubGateway struct {
	restClient *github.Client
	retry      RetryPolicy
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(httpClient *http.Client, retry RetryPolicy, logger *log.Logger) *GitHubGateway {
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		retry:      retry,
		logger:     logger,
	}
}

// FetchRepoStats issues the metadata, commit activity, latest release and closed
// issue calls concurrently and folds them into one record. If any call fails the
// result carries the error and no partial stats.
func (g *GitHubGateway) FetchRepoStats(ctx context.Context, repo domain.RepoIdentifier) domain.RepoResult {
	g.logger.Printf("Fetching stats for %s...", repo)

	var (
		meta         *github.Repository
		activity     []*github.WeeklyCommitActivity
		releases     []*github.RepositoryRelease
		closedIssues int
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		meta, _, err = withRetry(egCtx, g.retry, g.logger, repo.String()+" metadata",
			func(ctx context.Context) (*github.Repository, *github.Response, error) {
				return g.restClient.Repositories.Get(ctx, repo.Owner, repo.Name)
			})
		if err != nil {
			return fmt.Errorf("failed to get repository metadata: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		var err error
		activity, _, err = withRetry(egCtx, g.retry, g.logger, repo.String()+" commit activity",
			func(ctx context.Context) ([]*github.WeeklyCommitActivity, *github.Response, error) {
				return g.restClient.Repositories.ListCommitActivity(ctx, repo.Owner, repo.Name)
			})
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			// GitHub is still computing the statistics; treat as no activity yet.
			g.logger.Printf("Commit activity for %s is still being computed", repo)
			activity = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get commit activity: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		var err error
		releases, _, err = withRetry(egCtx, g.retry, g.logger, repo.String()+" releases",
			func(ctx context.Context) ([]*github.RepositoryRelease, *github.Response, error) {
				return g.restClient.Repositories.ListReleases(ctx, repo.Owner, repo.Name, &github.ListOptions{PerPage: 1})
			})
		if err != nil {
			return fmt.Errorf("failed to list releases: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		opts := &github.IssueListByRepoOptions{
			State:       "closed",
			ListOptions: github.ListOptions{PerPage: 1},
		}
		issues, resp, err := withRetry(egCtx, g.retry, g.logger, repo.String()+" closed issues",
			func(ctx context.Context) ([]*github.Issue, *github.Response, error) {
				return g.restClient.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
			})
		if err != nil {
			return fmt.Errorf("failed to list closed issues: %w", err)
		}
		// With one issue per page, the last page number is the total count.
		closedIssues = len(issues)
		if resp != nil && resp.LastPage > 0 {
			closedIssues = resp.LastPage
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		g.logger.Printf("Error fetching stats for %s: %s", repo, describeError(err))
		return domain.RepoResult{Repo: repo, Err: err}
	}

	license := meta.GetLicense().GetSPDXID()
	if license == "" {
		license = domain.UnknownLicense
	}

	g.logger.Printf("Completed fetching stats for %s.", repo)
	return domain.RepoResult{
		Repo: repo,
		Stats: domain.RepoStats{
			Stars:         meta.GetStargazersCount(),
			Forks:         meta.GetForksCount(),
			WeeklyCommits: latestWeeklyTotal(activity),
			OpenIssues:    meta.GetOpenIssuesCount(),
			ClosedIssues:  closedIssues,
			License:       license,
			LastRelease:   latestReleaseDate(releases),
		},
	}
}

func latestWeeklyTotal(activity []*github.WeeklyCommitActivity) int {
	if len(activity) == 0 {
		return 0
	}
	return activity[len(activity)-1].GetTotal()
}

func latestReleaseDate(releases []*github.RepositoryRelease) string {
	if len(releases) == 0 {
		return domain.NoReleases
	}
	published := releases[0].PublishedAt
	if published == nil || published.IsZero() {
		return domain.InvalidDate
	}
	return published.Local().Format(releaseDateLayout)
}

// describeError pulls the status, message and documentation link out of a
// go-github error for logging.
func describeError(err error) string {
	var (
		errResp  *github.ErrorResponse
		rlErr    *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		status   int
		message  string
		docURL   string
	)
	switch {
	case errors.As(err, &errResp):
		message, docURL = errResp.Message, errResp.DocumentationURL
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
	case errors.As(err, &rlErr):
		message = rlErr.Message
		if rlErr.Response != nil {
			status = rlErr.Response.StatusCode
		}
	case errors.As(err, &abuseErr):
		message = abuseErr.Message
		if abuseErr.Response != nil {
			status = abuseErr.Response.StatusCode
		}
	default:
		return err.Error()
	}

	out := fmt.Sprintf("status %d: %s", status, message)
	if docURL != "" {
		out += " (" + docURL + ")"
	}
	return out
}
