// Package reporter renders run results as text, JSON or unified diffs.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for result. It returns the number of
	// files that were or would be modified.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format names an output format. The values match config.OutputFormat.
type Format string

// Supported formats.
const (
	FormatText = Format(config.FormatText)
	FormatJSON = Format(config.FormatJSON)
	FormatDiff = Format(config.FormatDiff)
)

// Formats lists every supported format.
//
//nolint:gochecknoglobals // Read-only list.
var Formats = []Format{FormatText, FormatJSON, FormatDiff}

// ParseFormat resolves a format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if !slices.Contains(Formats, format) {
		valid := lo.Map(Formats, func(f Format, _ int) string { return string(f) })
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(valid, ", "))
	}
	return format, nil
}

// Options configures a reporter.
type Options struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowSummary appends run statistics.
	ShowSummary bool

	// Verbose lists unchanged files too (text).
	Verbose bool

	// Compact minifies JSON.
	Compact bool

	// DryRun words the output as pending changes.
	DryRun bool

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// New creates the reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	switch opts.Format {
	case "", FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}

// sink is the buffered destination shared by every reporter.
type sink struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newSink(opts Options) sink {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return sink{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, 64*1024),
	}
}

// flush writes buffered output, keeping the first error in *err.
func (s *sink) flush(err *error) {
	if flushErr := s.bw.Flush(); *err == nil {
		*err = flushErr
	}
}

func (s *sink) displayPath(path string) string {
	return runner.Relative(s.opts.WorkingDir, path)
}
