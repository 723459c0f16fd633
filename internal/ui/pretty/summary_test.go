package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name: "no files",
			want: "No Markdown files found\n",
		},
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "Nothing to fix (4 files checked)\n",
		},
		{
			name:  "fixed",
			stats: runner.Stats{FilesProcessed: 3, FilesModified: 1, FilesWritten: 1, FixesApplied: 1},
			want:  "1 file fixed (1 fix) (3 files checked)\n",
		},
		{
			name:   "dry run",
			stats:  runner.Stats{FilesProcessed: 1, FilesModified: 2, FixesApplied: 5},
			dryRun: true,
			want:   "2 files would change (5 fixes) (1 file checked)\n",
		},
		{
			name:  "skips and errors",
			stats: runner.Stats{FilesProcessed: 2, FilesSkipped: 1, FilesErrored: 2},
			want:  "1 skipped, 2 errors (2 files checked)\n",
		},
		{
			name:  "only errors",
			stats: runner.Stats{FilesErrored: 1},
			want:  "1 error (0 files checked)\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.dryRun))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("written", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{
			FilesDiscovered: 5, FilesProcessed: 4, FilesModified: 2, FilesWritten: 2, FixesApplied: 7, FilesErrored: 1,
		}, false)

		assert.Contains(t, out, "Summary")
		assert.Contains(t, out, "  Files found:       5\n")
		assert.Contains(t, out, "  Files fixed:       2\n")
		assert.Contains(t, out, "  Fixes applied:     7\n")
		assert.Contains(t, out, "  Errors:            1\n")
		assert.NotContains(t, out, "Skipped")
		assert.Contains(t, out, "Completed with errors")
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{FilesProcessed: 1, FilesModified: 1, FixesApplied: 2}, true)
		assert.Contains(t, out, "  Would change:      1\n")
		assert.Contains(t, out, "Changes pending")
	})

	t.Run("clean", func(t *testing.T) {
		t.Parallel()
		out := styles.FormatSummary(runner.Stats{FilesProcessed: 1}, false)
		assert.Contains(t, out, "Done")
	})
}
