package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/mdfix/pkg/diff"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// Status words shown in front of each file.
const (
	StatusFixed    = "fixed"
	StatusWouldFix = "would fix"
	StatusSkipped  = "skipped"
	StatusError    = "error"
	StatusOK       = "ok"
)

const statusWidth = len(StatusWouldFix)

// FormatOutcome renders one file as "status  path  detail". Unchanged files
// are only shown when verbose is set.
func (s *Styles) FormatOutcome(path string, outcome runner.FileOutcome, verbose bool) string {
	var status, detail string
	var style = s.Unchanged

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		status, style, detail = StatusError, s.Error, outcome.Error.Error()
	case pr == nil:
		return ""
	case pr.Skipped:
		status, style, detail = StatusSkipped, s.Skipped, pr.SkipReason
	case pr.Written:
		status, style, detail = StatusFixed, s.Fixed, s.fixDetail(pr.Fix.FixCount, pr.Fix.StageCounts)
		if pr.BackupCreated {
			detail += s.Dim.Render(", backup created")
		}
	case pr.Modified:
		status, style, detail = StatusWouldFix, s.Pending, s.fixDetail(pr.Fix.FixCount, pr.Fix.StageCounts)
	default:
		if !verbose {
			return ""
		}
		status = StatusOK
	}

	line := style.Render(fmt.Sprintf("%-*s", statusWidth, status)) + "  " + s.FilePath.Render(path)
	if detail != "" {
		line += "  " + s.Detail.Render(detail)
	}
	return line + "\n"
}

// fixDetail renders "3 fixes (MD022 x2, MD047 x1)".
func (s *Styles) fixDetail(total int, byStage map[string]int) string {
	word := "fixes"
	if total == 1 {
		word = "fix"
	}
	detail := fmt.Sprintf("%d %s", total, word)
	if len(byStage) == 0 {
		return detail
	}

	ids := lo.Keys(byStage)
	slices.Sort(ids)
	parts := lo.Map(ids, func(id string, _ int) string {
		return fmt.Sprintf("%s x%d", id, byStage[id])
	})
	return detail + " " + s.StageID.Render("("+strings.Join(parts, ", ")+")")
}

// FormatDiff renders d in unified format, colouring each line by kind.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	for line := range strings.Lines(d.String()) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			b.WriteString(s.DiffHeader.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(s.DiffHunk.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(s.DiffAdd.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(s.DiffRemove.Render(text))
		default:
			b.WriteString(s.DiffContext.Render(text))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
