package markdown

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Region is a fenced code block. Open and Close are line indexes of the
// delimiters; Close is -1 when the fence is never closed and runs to the end
// of the document.
type Region struct {
	Open  int
	Close int
}

// End returns the last line index covered by the region.
func (r Region) End(lineCount int) int {
	if r.Close < 0 {
		return lineCount - 1
	}
	return r.Close
}

// Layout records which lines of a document belong to fenced code blocks and
// to a leading YAML front matter block.
type Layout struct {
	Fences []Region

	// FrontMatterEnd is the index of the closing front matter delimiter,
	// or -1 when the document has none.
	FrontMatterEnd int

	fenceAt []int // region index covering each line, or -1
}

// Scan computes the layout of lines. Fence pairing follows CommonMark:
// a closer is a bare backtick run at least as long as the opener.
func Scan(lines []string) *Layout {
	layout := &Layout{
		FrontMatterEnd: -1,
		fenceAt:        make([]int, len(lines)),
	}
	for i := range layout.fenceAt {
		layout.fenceAt[i] = -1
	}

	start := 0
	if end, ok := FrontMatter(lines); ok {
		layout.FrontMatterEnd = end
		start = end + 1
	}

	open := -1
	var opener Class
	for i := start; i < len(lines); i++ {
		c := Classify(lines[i])
		if open < 0 {
			if c.Kind == KindFence {
				open, opener = i, c
				layout.Fences = append(layout.Fences, Region{Open: i, Close: -1})
				layout.fenceAt[i] = len(layout.Fences) - 1
			}
			continue
		}
		layout.fenceAt[i] = len(layout.Fences) - 1
		if c.Kind == KindFence && !c.HasLanguage && c.Ticks >= opener.Ticks {
			layout.Fences[len(layout.Fences)-1].Close = i
			open = -1
		}
	}
	return layout
}

// InFence reports whether line i is a fence delimiter or fence body line.
func (l *Layout) InFence(i int) bool {
	return i >= 0 && i < len(l.fenceAt) && l.fenceAt[i] >= 0
}

// InFenceBody reports whether line i lies strictly inside a fence.
func (l *Layout) InFenceBody(i int) bool {
	if !l.InFence(i) {
		return false
	}
	r := l.Fences[l.fenceAt[i]]
	return i != r.Open && i != r.Close
}

// RegionAt returns the fence covering line i.
func (l *Layout) RegionAt(i int) (Region, bool) {
	if !l.InFence(i) {
		return Region{}, false
	}
	return l.Fences[l.fenceAt[i]], true
}

// IsOpener reports whether line i opens a fence.
func (l *Layout) IsOpener(i int) bool {
	r, ok := l.RegionAt(i)
	return ok && r.Open == i
}

// InFrontMatter reports whether line i belongs to the front matter block,
// delimiters included.
func (l *Layout) InFrontMatter(i int) bool {
	return i >= 0 && i <= l.FrontMatterEnd
}

// Protected reports whether line i must be left alone by stages that rewrite
// prose: fence lines and front matter.
func (l *Layout) Protected(i int) bool {
	return l.InFence(i) || l.InFrontMatter(i)
}

// FrontMatter detects a YAML front matter block opening on the first line.
// It returns the index of the closing delimiter. The block only counts when
// its body decodes as a YAML mapping, so a thematic break followed by a setext
// heading is not mistaken for metadata.
func FrontMatter(lines []string) (int, bool) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		delim := strings.TrimRight(lines[i], " \t")
		if delim != "---" && delim != "..." {
			continue
		}
		var meta map[string]any
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "\n")), &meta); err != nil {
			return -1, false
		}
		return i, true
	}
	return -1, false
}
