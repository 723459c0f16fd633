package diff_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/diff"
)

func TestComputeEqual(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Compute("a.md", "", ""))
	assert.Nil(t, diff.Compute("a.md", "same\n", "same\n"))

	var d *diff.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestComputeSingleChange(t *testing.T) {
	t.Parallel()

	d := diff.Compute("docs/a.md", "hello\nworld\n", "hello\nearth\n")
	require.NotNil(t, d)

	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)
	want := "--- a/docs/a.md\n+++ b/docs/a.md\n@@ -1,2 +1,2 @@\n hello\n-world\n+earth\n"
	assert.Equal(t, want, d.String())
}

func TestComputeInsertion(t *testing.T) {
	t.Parallel()

	d := diff.Compute("a.md", "# Title\nSome text", "# Title\n\nSome text\n")
	require.NotNil(t, d)

	assert.Equal(t, 1, d.Added)
	assert.Zero(t, d.Removed)
	assert.Equal(t, "--- a/a.md\n+++ b/a.md\n@@ -1,2 +1,3 @@\n # Title\n+\n Some text\n", d.String())
}

func TestComputeSeparateHunks(t *testing.T) {
	t.Parallel()

	var before []string
	for i := range 20 {
		before = append(before, strings.Repeat("x", i+1))
	}
	after := append([]string(nil), before...)
	after[1] = "changed-early"
	after[18] = "changed-late"

	d := diff.Compute("a.md", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	first, second := d.Hunks[0], d.Hunks[1]
	assert.Equal(t, 1, first.OldStart)
	assert.Equal(t, 5, first.OldLines)
	assert.Equal(t, 16, second.OldStart)
	assert.Equal(t, 5, second.OldLines)
}

func TestComputeMergesNearbyChanges(t *testing.T) {
	t.Parallel()

	d := diff.Compute("a.md", "a\nb\nc\nd\ne\nf\n", "A\nb\nc\nd\ne\nF\n")
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, 6, d.Hunks[0].OldLines)
	assert.Equal(t, 6, d.Hunks[0].NewLines)
}

func TestComputeFromEmpty(t *testing.T) {
	t.Parallel()

	d := diff.Compute("a.md", "", "new\n")
	require.NotNil(t, d)
	assert.Equal(t, "--- a/a.md\n+++ b/a.md\n@@ -0,0 +1 @@\n+new\n", d.String())
}

func numbered(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return lines
}

func TestComputeLargeDocumentSingleEdit(t *testing.T) {
	t.Parallel()

	before := numbered("line", 20000)
	after := slices.Clone(before)
	after[10000] = "changed"

	d := diff.Compute("big.md", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)
	assert.Equal(t, 9998, d.Hunks[0].OldStart)
	assert.Equal(t, 7, d.Hunks[0].OldLines)
}

func TestComputeOversizedMiddleIsReplaced(t *testing.T) {
	t.Parallel()

	before := append([]string{"same"}, numbered("old", 3000)...)
	after := append([]string{"same"}, numbered("new", 3000)...)

	d := diff.Compute("big.md", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, 3000, d.Added)
	assert.Equal(t, 3000, d.Removed)
	assert.Equal(t, diff.Line{Op: diff.OpKeep, Text: "same"}, d.Hunks[0].Lines[0])
	assert.Equal(t, diff.OpRemove, d.Hunks[0].Lines[1].Op)
	assert.Equal(t, diff.OpAdd, d.Hunks[0].Lines[3001].Op)
}
