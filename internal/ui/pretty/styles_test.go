package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []func(...string) string{
		styles.Bold.Render,
		styles.Fixed.Render,
		styles.Error.Render,
		styles.DiffAdd.Render,
		styles.TableHeader.Render,
	} {
		assert.Equal(t, "test", style("test"))
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may not emit ANSI codes without a TTY, so only check that
	// every style renders its text.
	for _, style := range []func(...string) string{
		styles.Fixed.Render,
		styles.Pending.Render,
		styles.Unchanged.Render,
		styles.Skipped.Render,
		styles.Error.Render,
		styles.FilePath.Render,
		styles.StageID.Render,
		styles.DiffHeader.Render,
		styles.DiffHunk.Render,
		styles.DiffRemove.Render,
		styles.DiffContext.Render,
		styles.Success.Render,
		styles.Failure.Render,
		styles.Dim.Render,
	} {
		assert.Contains(t, style("x"), "x")
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

//nolint:paralleltest // uses t.Setenv
func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

//nolint:paralleltest // uses t.Setenv
func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "non-TTY writer")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "non-TTY writer")
}
