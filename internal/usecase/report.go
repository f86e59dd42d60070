package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15-04-05"
)

// ReportFileName is the file name a report generated at now is written to.
func ReportFileName(now time.Time) string {
	return fmt.Sprintf("github-stats-%s-%s.md", now.Format(dateLayout), now.Format(timeLayout))
}

// WriteReport writes content into dir under the timestamped report name and
// returns the path written.
func WriteReport(dir string, now time.Time, content string) (string, error) {
	path := filepath.Join(dir, ReportFileName(now))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return path, nil
}
