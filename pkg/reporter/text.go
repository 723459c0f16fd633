package reporter

import (
	"context"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// TextReporter writes one styled line per changed, skipped or failed file,
// then an optional summary line.
type TextReporter struct {
	sink
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{sink: newSink(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		line := r.styles.FormatOutcome(r.displayPath(file.Path), file, r.opts.Verbose)
		if _, err := r.bw.WriteString(line); err != nil {
			return 0, err
		}
	}

	if r.opts.ShowSummary {
		if _, err := r.bw.WriteString(r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun)); err != nil {
			return 0, err
		}
	}

	return result.Stats.FilesModified, nil
}
