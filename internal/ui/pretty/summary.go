package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfix/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "2 files fixed (5 fixes), 1 error (12 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files")))

	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}
	if stats.FilesModified == 0 && stats.FilesSkipped == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("Nothing to fix") + checked + "\n"
	}

	var parts []string
	if stats.FilesModified > 0 {
		verb := "fixed"
		style := s.Success
		if dryRun {
			verb, style = "would change", s.Pending
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s %s (%s)",
			plural(stats.FilesModified, "file", "files"), verb,
			plural(stats.FixesApplied, "fix", "fixes"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "error", "errors")))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var b strings.Builder

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&b, "  %-18s %s\n", label+":", style(strconv.Itoa(value)))
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files found", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Files checked", stats.FilesProcessed, s.SummaryValue.Render)
	if dryRun {
		row("Would change", stats.FilesModified, s.Pending.Render)
	} else {
		row("Files fixed", stats.FilesWritten, s.Success.Render)
	}
	row("Fixes applied", stats.FixesApplied, s.SummaryValue.Render)
	if stats.FilesSkipped > 0 {
		row("Skipped", stats.FilesSkipped, s.Skipped.Render)
	}
	if stats.FilesErrored > 0 {
		row("Errors", stats.FilesErrored, s.Failure.Render)
	}

	b.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Completed with errors"))
	case dryRun && stats.FilesModified > 0:
		b.WriteString(s.Pending.Render("Changes pending"))
	default:
		b.WriteString(s.Success.Render("Done"))
	}
	b.WriteString("\n")

	return b.String()
}
