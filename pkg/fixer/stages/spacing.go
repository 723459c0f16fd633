package stages

import (
	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// block is an inclusive line range that must be surrounded by blank lines.
type block struct {
	first, last int
}

// surround inserts a blank line before each block's first line and after its
// last line, unless the neighbour is already blank or the block touches the
// start or end of the document. It returns the number of lines inserted.
func surround(doc *fixer.Document, blocks []block) int {
	if len(blocks) == 0 {
		return 0
	}

	before := make(map[int]bool, len(blocks))
	after := make(map[int]bool, len(blocks))
	for _, b := range blocks {
		before[b.first] = true
		after[b.last] = true
	}

	lines := doc.Lines
	out := make([]string, 0, len(lines)+2*len(blocks))
	inserted := 0
	for i, line := range lines {
		if before[i] && len(out) > 0 && !markdown.IsBlank(out[len(out)-1]) {
			out = append(out, "")
			inserted++
		}
		out = append(out, line)
		if after[i] && i+1 < len(lines) && !markdown.IsBlank(lines[i+1]) {
			out = append(out, "")
			inserted++
		}
	}

	if inserted > 0 {
		doc.Replace(out)
	}
	return inserted
}

// HeadingSpacing surrounds ATX headings with blank lines.
type HeadingSpacing struct {
	fixer.BaseStage
}

// NewHeadingSpacing creates the MD022 stage.
func NewHeadingSpacing() *HeadingSpacing {
	return &HeadingSpacing{
		BaseStage: fixer.NewBaseStage("MD022", "blanks-around-headings",
			"Surround headings with blank lines", orderHeadingSpacing, "headings", "blank_lines"),
	}
}

// Apply implements fixer.Stage.
func (s *HeadingSpacing) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	var blocks []block
	for i, line := range doc.Lines {
		if !layout.Protected(i) && markdown.IsHeading(line) {
			blocks = append(blocks, block{i, i})
		}
	}
	return surround(doc, blocks)
}

// ListSpacing surrounds list runs with blank lines. A run is a maximal
// sequence of list items of any kind together with their indented
// continuation lines, so adjacent lists with different markers stay joined.
type ListSpacing struct {
	fixer.BaseStage
}

// NewListSpacing creates the MD032 stage.
func NewListSpacing() *ListSpacing {
	return &ListSpacing{
		BaseStage: fixer.NewBaseStage("MD032", "blanks-around-lists",
			"Surround lists with blank lines", orderListSpacing, "bullet", "ul", "ol", "blank_lines"),
	}
}

// Apply implements fixer.Stage.
func (s *ListSpacing) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	return surround(doc, listRuns(doc.Lines, markdown.Scan(doc.Lines)))
}

func listRuns(lines []string, layout *markdown.Layout) []block {
	var runs []block
	for i := 0; i < len(lines); i++ {
		if layout.Protected(i) || !markdown.IsListItem(lines[i]) {
			continue
		}
		j := i
		for j+1 < len(lines) && !layout.Protected(j+1) && inListRun(lines[j+1]) {
			j++
		}
		runs = append(runs, block{i, j})
		i = j
	}
	return runs
}

// inListRun reports whether line continues a list run: another item, or an
// indented non-blank continuation line.
func inListRun(line string) bool {
	if markdown.IsBlank(line) {
		return false
	}
	return markdown.IsListItem(line) || markdown.LeadingWhitespace(line) != ""
}

// FenceSpacing surrounds fenced code blocks with blank lines. The block runs
// from the opener through the closer; the body is never touched.
type FenceSpacing struct {
	fixer.BaseStage
}

// NewFenceSpacing creates the MD031 stage.
func NewFenceSpacing() *FenceSpacing {
	return &FenceSpacing{
		BaseStage: fixer.NewBaseStage("MD031", "blanks-around-fences",
			"Surround fenced code blocks with blank lines", orderFenceSpacing, "code", "blank_lines"),
	}
}

// Apply implements fixer.Stage.
func (s *FenceSpacing) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	blocks := make([]block, 0, len(layout.Fences))
	for _, r := range layout.Fences {
		blocks = append(blocks, block{r.Open, r.End(len(doc.Lines))})
	}
	return surround(doc, blocks)
}
