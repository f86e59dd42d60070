// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"time"

	"github.com/naka-gawa/project-pulse/internal/domain"
	"github.com/naka-gawa/project-pulse/internal/gateway"
)

// Section titles, in report order.
const (
	MainSectionTitle      = "Main Repository Metrics"
	SDKSectionTitle       = "SDK Statistics"
	CommunitySectionTitle = "Community Engagement Metrics"
	languageSummaryTitle  = "Language Summary"
)

// Targets lists what a report covers.
type Targets struct {
	Projects []domain.RepoIdentifier
	SDKs     []domain.LanguageGroup
	Tags     []string
}

// Generator is the use case for building the stats report.
// It orchestrates the fetching and assembling of report sections.
type Generator struct {
	repos       gateway.StatsFetcher
	tags        gateway.TagCounter
	targets     Targets
	concurrency int
	logger      *log.Logger
}

// NewGenerator creates a new Generator instance. A concurrency of zero fetches
// every item of a group at once.
func NewGenerator(repos gateway.StatsFetcher, tags gateway.TagCounter, targets Targets, concurrency int, logger *log.Logger) *Generator {
	return &Generator{
		repos:       repos,
		tags:        tags,
		targets:     targets,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Generate fetches every section in order and assembles the report. Individual
// fetch failures only degrade their own rows.
func (g *Generator) Generate(ctx context.Context, now time.Time) *domain.Report {
	g.logger.Println("Usecase: Starting report generation...")

	report := &domain.Report{
		Title:       "GitHub Statistics Report - " + now.Format(dateLayout),
		GeneratedAt: now,
	}

	g.logger.Printf("[1/3] Fetching stats for %d main repositories...", len(g.targets.Projects))
	mainResults := g.fetchRepos(ctx, g.targets.Projects)
	report.Sections = append(report.Sections, domain.Section{
		Title:  MainSectionTitle,
		Tables: []domain.Table{repoTable("", "Repository", mainResults)},
	})

	g.logger.Printf("[2/3] Fetching stats for SDKs in %d languages...", len(g.targets.SDKs))
	sdkSection := domain.Section{Title: SDKSectionTitle}
	summary := domain.Table{Title: languageSummaryTitle, Headers: summaryHeaders}
	for _, group := range g.targets.SDKs {
		results := g.fetchRepos(ctx, group.Repos)
		sdkSection.Tables = append(sdkSection.Tables, repoTable(group.Language, "SDK", results))
		summary.Rows = append(summary.Rows, languageSummaryRow(group.Language, results))
	}
	if len(g.targets.SDKs) > 0 {
		sdkSection.Tables = append(sdkSection.Tables, summary)
	}
	report.Sections = append(report.Sections, sdkSection)

	g.logger.Printf("[3/3] Fetching community metrics for %d tags...", len(g.targets.Tags))
	counts := fanOut(ctx, g.concurrency, g.targets.Tags, func(ctx context.Context, tag string) domain.CommunityStat {
		return domain.CommunityStat{Tag: tag, Count: g.tags.FetchTagCount(ctx, tag)}
	})
	community := domain.Table{Headers: []string{"Tag", "Stack Overflow Questions"}}
	for _, c := range counts {
		community.Rows = append(community.Rows, []any{c.Tag, c.Count})
	}
	report.Sections = append(report.Sections, domain.Section{
		Title:  CommunitySectionTitle,
		Tables: []domain.Table{community},
	})

	g.logger.Println("Usecase: Report generation complete.")
	return report
}

func (g *Generator) fetchRepos(ctx context.Context, repos []domain.RepoIdentifier) []domain.RepoResult {
	return fanOut(ctx, g.concurrency, repos, g.repos.FetchRepoStats)
}

func repoTable(title, nameHeader string, results []domain.RepoResult) domain.Table {
	t := domain.Table{
		Title:   title,
		Headers: append([]string{nameHeader}, domain.StatHeaders...),
	}
	for _, r := range results {
		t.Rows = append(t.Rows, r.Row())
	}
	return t
}
