package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fsutil"
	"github.com/yaklabco/mdfix/pkg/runner"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"clean.md":      "# Clean\n\ntext\n",
		"dirty.md":      "# Title\nSome text",
		"docs/other.md": "_a_ http://example.com\n",
		"binary.md":     "a\x00b",
	})

	result, err := newRunner(t).Run(context.Background(), runner.Options{
		Paths:      []string{".", "missing.md"},
		WorkingDir: dir,
		Jobs:       2,
		Pipeline:   fixer.DefaultPipelineOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesModified:   2,
		FilesWritten:    2,
		FilesErrored:    2,
		FixesApplied:    4,
	}, result.Stats)
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasChanges())

	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = runner.Relative(dir, f.Path)
	}
	assert.Equal(t, []string{"binary.md", "clean.md", "dirty.md", "docs/other.md", "missing.md"},
		filepathSlash(paths))

	byPath := make(map[string]runner.FileOutcome)
	for _, f := range result.Files {
		byPath[filepath.ToSlash(runner.Relative(dir, f.Path))] = f
	}
	require.ErrorIs(t, byPath["binary.md"].Error, fixer.ErrDecode)
	require.ErrorIs(t, byPath["missing.md"].Error, fixer.ErrNotFound)
	assert.Equal(t, "ok", byPath["clean.md"].Result.Summary())
	assert.Equal(t, "fixed", byPath["dirty.md"].Result.Summary())

	content, err := os.ReadFile(filepath.Join(dir, "docs", "other.md"))
	require.NoError(t, err)
	assert.Equal(t, "*a* <http://example.com>\n", string(content))
}

func filepathSlash(paths []string) []string {
	for i, p := range paths {
		paths[i] = filepath.ToSlash(p)
	}
	return paths
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"dirty.md": "text  \n"})
	opts := fixer.DefaultPipelineOptions()
	opts.DryRun = true

	result, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Pipeline: opts})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Zero(t, result.Stats.FilesWritten)
	require.Len(t, result.Files, 1)
	assert.NotNil(t, result.Files[0].Result.Diff)

	content, err := os.ReadFile(filepath.Join(dir, "dirty.md"))
	require.NoError(t, err)
	assert.Equal(t, "text  \n", string(content))
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasChanges())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "x\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_ManyFiles(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 50 {
		files[filepath.Join("d", string(rune('a'+i%26))+string(rune('a'+i/26))+".md")] = "# T\ntext"
	}
	dir := tree(t, files)

	result, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Stats.FilesWritten)
	for i := 1; i < len(result.Files); i++ {
		assert.Less(t, result.Files[i-1].Path, result.Files[i].Path)
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "text  \n", "b.md": "# B\n"})
	opts := fixer.DefaultPipelineOptions()
	opts.Backup = true

	_, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Pipeline: opts})
	require.NoError(t, err)
	assert.True(t, fsutil.HasBackup(filepath.Join(dir, "a.md")))
	assert.False(t, fsutil.HasBackup(filepath.Join(dir, "b.md")))

	restored, err := runner.Restore(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, rels(t, dir, restored))

	content, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "text  \n", string(content))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "docs/a.md", filepath.ToSlash(runner.Relative("/repo", "/repo/docs/a.md")))
	assert.Equal(t, "/elsewhere/a.md", runner.Relative("/repo", "/elsewhere/a.md"))
	assert.Equal(t, "rel.md", runner.Relative("/repo", "rel.md"))
	assert.Equal(t, "/repo/a.md", runner.Relative("", "/repo/a.md"))
}
