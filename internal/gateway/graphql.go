package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

// weeklyWindow is how far back commit history is counted for the weekly total.
const weeklyWindow = 7 * 24 * time.Hour

// repoStatsQuery fetches everything a RepoStats needs in a single round trip.
type repoStatsQuery struct {
	Repository struct {
		StargazerCount int
		ForkCount      int
		LicenseInfo    *struct {
			SpdxID string `graphql:"spdxId"`
		}
		Issues struct {
			TotalCount int
		} `graphql:"issues(states: OPEN)"`
		ClosedIssues struct {
			TotalCount int
		} `graphql:"closedIssues: issues(states: CLOSED)"`
		Releases struct {
			Nodes []struct {
				PublishedAt *githubv4.DateTime
			}
		} `graphql:"releases(first: 1, orderBy: {field: CREATED_AT, direction: DESC})"`
		DefaultBranchRef *struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					} `graphql:"history(since: $since)"`
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GraphQLGateway fetches repository stats over the GitHub GraphQL API.
// Open issue counts exclude pull requests here, unlike the REST metadata.
// Weekly commits are the default branch commits of the last seven days rather
// than the last week of the commit activity series, and an empty repository
// with no default branch counts 0.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	retry         RetryPolicy
	logger        *log.Logger
	now           func() time.Time
}

// NewGraphQLGateway creates a GraphQLGateway on top of httpClient.
func NewGraphQLGateway(httpClient *http.Client, retry RetryPolicy, logger *log.Logger) *GraphQLGateway {
	return &GraphQLGateway{
		graphqlClient: githubv4.NewClient(httpClient),
		retry:         retry,
		logger:        logger,
		now:           time.Now,
	}
}

func (g *GraphQLGateway) FetchRepoStats(ctx context.Context, repo domain.RepoIdentifier) domain.RepoResult {
	g.logger.Printf("Fetching stats for %s via GraphQL...", repo)

	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
		"since": githubv4.GitTimestamp{Time: g.now().Add(-weeklyWindow)},
	}

	q, _, err := withRetry(ctx, g.retry, g.logger, repo.String()+" graphql",
		func(ctx context.Context) (repoStatsQuery, *github.Response, error) {
			var q repoStatsQuery
			err := g.graphqlClient.Query(ctx, &q, variables)
			return q, nil, err
		})
	if err != nil {
		err = fmt.Errorf("failed to execute GraphQL query for repository stats: %w", err)
		g.logger.Printf("Error fetching stats for %s: %v", repo, err)
		return domain.RepoResult{Repo: repo, Err: err}
	}

	r := q.Repository
	license := domain.UnknownLicense
	if r.LicenseInfo != nil && r.LicenseInfo.SpdxID != "" {
		license = r.LicenseInfo.SpdxID
	}

	lastRelease := domain.NoReleases
	if len(r.Releases.Nodes) > 0 {
		published := r.Releases.Nodes[0].PublishedAt
		if published == nil || published.IsZero() {
			lastRelease = domain.InvalidDate
		} else {
			lastRelease = published.Local().Format(releaseDateLayout)
		}
	}

	weekly := 0
	if r.DefaultBranchRef != nil {
		weekly = r.DefaultBranchRef.Target.Commit.History.TotalCount
	}

	g.logger.Printf("Completed fetching stats for %s.", repo)
	return domain.RepoResult{
		Repo: repo,
		Stats: domain.RepoStats{
			Stars:         r.StargazerCount,
			Forks:         r.ForkCount,
			WeeklyCommits: weekly,
			OpenIssues:    r.Issues.TotalCount,
			ClosedIssues:  r.ClosedIssues.TotalCount,
			License:       license,
			LastRelease:   lastRelease,
		},
	}
}
