package usecase

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/project-pulse/internal/domain"
)

var summaryHeaders = []string{"Language", "SDKs", "Total Stars", "Median Stars", "Total Weekly Commits", "Mean Weekly Commits"}

// languageSummaryRow condenses one language's SDK results. Failed fetches are
// left out of the figures; if none succeeded the figures are nil.
func languageSummaryRow(language string, results []domain.RepoResult) []any {
	var starData, commitData stats.Float64Data
	for _, r := range results {
		if !r.OK() {
			continue
		}
		starData = append(starData, float64(r.Stats.Stars))
		commitData = append(commitData, float64(r.Stats.WeeklyCommits))
	}

	row := []any{language, len(results), nil, nil, nil, nil}
	if len(starData) == 0 {
		return row
	}

	totalStars, _ := stats.Sum(starData)
	medianStars, _ := stats.Median(starData)
	totalCommits, _ := stats.Sum(commitData)
	meanCommits, _ := stats.Mean(commitData)

	row[2] = int(totalStars)
	row[3] = roundTo(medianStars, 1)
	row[4] = int(totalCommits)
	row[5] = roundTo(meanCommits, 1)
	return row
}

func roundTo(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return math.Round(v)
	}
	return r
}
