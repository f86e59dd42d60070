package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoIdentifier(t *testing.T) {
	testCases := []struct {
		input       string
		expected    RepoIdentifier
		expectError bool
	}{
		{input: "golang/go", expected: RepoIdentifier{Owner: "golang", Name: "go"}},
		{input: "  golang/go  ", expected: RepoIdentifier{Owner: "golang", Name: "go"}},
		{input: "golang", expectError: true},
		{input: "golang/", expectError: true},
		{input: "/go", expectError: true},
		{input: "a/b/c", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			repo, err := ParseRepoIdentifier(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, repo)
			assert.Equal(t, "golang/go", repo.String())
		})
	}
}

func TestRepoResult_Cells(t *testing.T) {
	repo := RepoIdentifier{Owner: "o", Name: "r"}

	t.Run("ok result keeps typed values", func(t *testing.T) {
		result := RepoResult{Repo: repo, Stats: RepoStats{
			Stars: 10, Forks: 2, WeeklyCommits: 42, OpenIssues: 3, ClosedIssues: 7,
			License: "MIT", LastRelease: "1/2/2024",
		}}
		assert.True(t, result.OK())
		assert.Equal(t, []any{10, 2, 42, 3, 7, "MIT", "1/2/2024"}, result.Cells())
		assert.Equal(t, "o/r", result.Row()[0])
	})

	t.Run("failed result is Error in every stat column", func(t *testing.T) {
		result := RepoResult{Repo: repo, Stats: RepoStats{Stars: 99}, Err: errors.New("boom")}
		assert.False(t, result.OK())
		cells := result.Cells()
		require.Len(t, cells, len(StatHeaders))
		for _, c := range cells {
			assert.Equal(t, ErrorValue, c)
		}
		assert.Equal(t, "o/r", result.Row()[0])
	})
}
