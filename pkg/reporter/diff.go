package reporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// DiffReporter writes a unified diff per changed file, git style.
type DiffReporter struct {
	sink
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{sink: newSink(opts)}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if result == nil {
		return 0, nil
	}

	var files, added, removed int
	for _, file := range result.Files {
		path := r.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		d := *file.Result.Diff
		d.Path = path
		files++
		added += d.Added
		removed += d.Removed

		fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
		fmt.Fprint(r.bw, r.styles.FormatDiff(&d))
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, added, removed)
	}
	return files, nil
}

func (r *DiffReporter) writeSummary(files, added, removed int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pick(files, "file", "files"))}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", added, pick(added, "insertion", "insertions"))))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", removed, pick(removed, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
