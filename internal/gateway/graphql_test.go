package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

// setupTestGraphQLGateway creates a GraphQLGateway that communicates with a mock HTTP server.
func setupTestGraphQLGateway(t *testing.T, handler http.HandlerFunc) (*GraphQLGateway, *recordingSleeper, time.Time) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	sleeper := &recordingSleeper{}
	return &GraphQLGateway{
		graphqlClient: githubv4.NewEnterpriseClient(server.URL, server.Client()),
		retry:         testRetryPolicy(sleeper),
		logger:        log.New(io.Discard, "", 0),
		now:           func() time.Time { return now },
	}, sleeper, now
}

const (
	graphqlRateLimited = `{"errors":[{"type":"RATE_LIMITED","message":"API rate limit exceeded for user ID 1."}]}`
	graphqlMinimalRepo = `{"data":{"repository":{
				"stargazerCount":5,"forkCount":2,
				"licenseInfo":{"spdxId":"MIT"},
				"issues":{"totalCount":1},"closedIssues":{"totalCount":3},
				"releases":{"nodes":[]},
				"defaultBranchRef":{"target":{"history":{"totalCount":4}}}}}}`
)

func TestGraphQLGateway_FetchRepoStats(t *testing.T) {
	minimalStats := domain.RepoStats{
		Stars: 5, Forks: 2, WeeklyCommits: 4, OpenIssues: 1, ClosedIssues: 3,
		License: "MIT", LastRelease: domain.NoReleases,
	}

	testCases := []struct {
		name string
		// responses are served in order; the last one repeats.
		responses      []string
		expected       domain.RepoStats
		expectError    bool
		expectedErrMsg string
		expectedCalls  int
		expectedSleeps int
	}{
		{
			name: "happy path",
			// The inline fragment on Commit is flattened into target.
			responses: []string{`{"data":{"repository":{
				"stargazerCount":321,"forkCount":12,
				"licenseInfo":{"spdxId":"BSD-3-Clause"},
				"issues":{"totalCount":8},"closedIssues":{"totalCount":90},
				"releases":{"nodes":[{"publishedAt":"2024-05-01T12:00:00Z"}]},
				"defaultBranchRef":{"target":{"history":{"totalCount":17}}}}}}`},
			expected: domain.RepoStats{
				Stars: 321, Forks: 12, WeeklyCommits: 17, OpenIssues: 8, ClosedIssues: 90,
				License:     "BSD-3-Clause",
				LastRelease: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Local().Format("1/2/2006"),
			},
			expectedCalls: 1,
		},
		{
			name: "no releases and an empty license",
			responses: []string{`{"data":{"repository":{
				"stargazerCount":1,"forkCount":0,
				"licenseInfo":{"spdxId":""},
				"issues":{"totalCount":0},"closedIssues":{"totalCount":0},
				"releases":{"nodes":[]},
				"defaultBranchRef":{"target":{"history":{"totalCount":0}}}}}}`},
			expected: domain.RepoStats{
				Stars: 1, License: domain.UnknownLicense, LastRelease: domain.NoReleases,
			},
			expectedCalls: 1,
		},
		{
			name: "null license, unpublished release and empty repository",
			responses: []string{`{"data":{"repository":{
				"stargazerCount":2,"forkCount":1,
				"licenseInfo":null,
				"issues":{"totalCount":0},"closedIssues":{"totalCount":0},
				"releases":{"nodes":[{"publishedAt":null}]},
				"defaultBranchRef":null}}}`},
			expected: domain.RepoStats{
				Stars: 2, Forks: 1, WeeklyCommits: 0,
				License: domain.UnknownLicense, LastRelease: domain.InvalidDate,
			},
			expectedCalls: 1,
		},
		{
			name:           "rate limited twice then succeeds",
			responses:      []string{graphqlRateLimited, graphqlRateLimited, graphqlMinimalRepo},
			expected:       minimalStats,
			expectedCalls:  3,
			expectedSleeps: 2,
		},
		{
			name:           "rate limited three times gives up",
			responses:      []string{graphqlRateLimited},
			expectError:    true,
			expectedErrMsg: "rate limit",
			expectedCalls:  3,
			expectedSleeps: 2,
		},
		{
			name:           "error case - repository not found",
			responses:      []string{`{"data":{"repository":null},"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a Repository with the name 'o/r'."}]}`},
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query",
			expectedCalls:  1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				mu    sync.Mutex
				body  []byte
				calls int
			)
			gateway, sleeper, now := setupTestGraphQLGateway(t, func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				mu.Lock()
				body = b
				resp := tc.responses[min(calls, len(tc.responses)-1)]
				calls++
				mu.Unlock()
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, resp)
			})

			result := gateway.FetchRepoStats(context.Background(), testRepo)

			mu.Lock()
			defer mu.Unlock()
			assert.Contains(t, string(body), `"owner":"o"`)
			assert.Contains(t, string(body), now.Add(-weeklyWindow).Format(time.RFC3339))
			assert.Equal(t, tc.expectedCalls, calls)
			assert.Equal(t, tc.expectedSleeps, sleeper.count())
			if tc.expectError {
				require.Error(t, result.Err)
				assert.Contains(t, result.Err.Error(), tc.expectedErrMsg)
				for _, cell := range result.Cells() {
					assert.Equal(t, domain.ErrorValue, cell)
				}
				return
			}
			require.NoError(t, result.Err)
			assert.Equal(t, tc.expected, result.Stats)
		})
	}
}
