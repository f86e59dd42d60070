package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFileName(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC)
	assert.Equal(t, "github-stats-2024-03-05-09-07-03.md", ReportFileName(now))
}

func TestWriteReport(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 7, 3, 0, time.UTC)

	t.Run("writes the content under the timestamped name", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteReport(dir, now, "# report\n")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "github-stats-2024-03-05-09-07-03.md"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# report\n", string(data))
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := WriteReport(filepath.Join(t.TempDir(), "does-not-exist"), now, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write report")
	})
}
