package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	tablePadding     = 2
	heavySeparator   = "="
	defaultTermWidth = 100
	minLastColumn    = 10
)

// Table is a header row plus data rows of equal length.
type Table struct {
	Headers []string
	Rows    [][]string
}

// FormatTable renders t with aligned columns. The last column is truncated
// so a row fits in width display cells; 0 means the default width.
func (s *Styles) FormatTable(t Table, width int) string {
	if len(t.Headers) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultTermWidth
	}

	widths := columnWidths(t)
	last := len(widths) - 1

	used := 0
	for _, w := range widths[:last] {
		used += w + tablePadding
	}
	widths[last] = max(min(widths[last], width-used), minLastColumn)
	total := used + widths[last]

	var b strings.Builder
	separator := s.TableBorder.Render(strings.Repeat(heavySeparator, total))

	b.WriteString(s.TableHeader.Render(formatRow(t.Headers, widths)) + "\n")
	b.WriteString(separator + "\n")
	for _, row := range t.Rows {
		b.WriteString(formatRow(row, widths) + "\n")
	}
	b.WriteString(separator + "\n")
	return b.String()
}

func columnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	last := len(widths) - 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if i == last {
			b.WriteString(runewidth.Truncate(cell, w, "…"))
			break
		}
		b.WriteString(runewidth.FillRight(runewidth.Truncate(cell, w, "…"), w))
		b.WriteString(strings.Repeat(" ", tablePadding))
	}
	return b.String()
}
