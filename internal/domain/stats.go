// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// Literal values written into RepoStats and report cells.
const (
	ErrorValue     = "Error"
	UnknownLicense = "Unknown"
	NoReleases     = "No releases"
	InvalidDate    = "Invalid Date"
)

// RepoIdentifier names a single GitHub repository.
type RepoIdentifier struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ParseRepoIdentifier parses an "owner/name" string.
func ParseRepoIdentifier(s string) (RepoIdentifier, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoIdentifier{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return RepoIdentifier{Owner: parts[0], Name: parts[1]}, nil
}

func (r RepoIdentifier) String() string {
	return r.Owner + "/" + r.Name
}

// RepoStats holds the popularity and activity metrics for a single repository.
// It is the core domain entity of this application.
type RepoStats struct {
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	WeeklyCommits int    `json:"weekly_commits"`
	OpenIssues    int    `json:"open_issues"`
	ClosedIssues  int    `json:"closed_issues"`
	License       string `json:"license"`
	LastRelease   string `json:"last_release"`
}

// RepoResult is the outcome of fetching stats for one repository.
// A non-nil Err means the whole record degrades to the "Error" sentinel;
// Stats is only meaningful when Err is nil.
type RepoResult struct {
	Repo  RepoIdentifier
	Stats RepoStats
	Err   error
}

// OK reports whether the stats were fetched successfully.
func (r RepoResult) OK() bool {
	return r.Err == nil
}

// Cells returns the stat columns in report order: stars, forks, weekly commits,
// open issues, closed issues, license, last release.
func (r RepoResult) Cells() []any {
	if r.Err != nil {
		cells := make([]any, len(StatHeaders))
		for i := range cells {
			cells[i] = ErrorValue
		}
		return cells
	}
	s := r.Stats
	return []any{s.Stars, s.Forks, s.WeeklyCommits, s.OpenIssues, s.ClosedIssues, s.License, s.LastRelease}
}

// Row returns the repository name followed by its stat cells.
func (r RepoResult) Row() []any {
	return append([]any{r.Repo.String()}, r.Cells()...)
}

// StatHeaders are the column headers matching RepoResult.Cells.
var StatHeaders = []string{"Stars", "Forks", "Weekly Commits", "Open Issues", "Closed Issues", "License", "Last Release"}

// CommunityStat is the number of Q&A questions carrying a tag.
type CommunityStat struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// LanguageGroup is the ordered list of SDK repositories for one language.
type LanguageGroup struct {
	Language string
	Repos    []RepoIdentifier
}
