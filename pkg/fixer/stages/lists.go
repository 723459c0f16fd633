package stages

import (
	"strconv"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// ListIndent rounds odd list item indentation up to the next even width.
type ListIndent struct {
	fixer.BaseStage
}

// NewListIndent creates the MD007 stage.
func NewListIndent() *ListIndent {
	return &ListIndent{
		BaseStage: fixer.NewBaseStage("MD007", "ul-indent",
			"Round odd list indentation up to an even width", orderListIndent, "bullet", "ul", "indentation"),
	}
}

// Apply implements fixer.Stage.
func (s *ListIndent) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	fixes := 0
	for i, line := range doc.Lines {
		if layout.Protected(i) {
			continue
		}
		c := markdown.Classify(line)
		if c.Kind != markdown.KindListItem || len(c.Indent)%2 == 0 {
			continue
		}
		doc.Lines[i] = c.Indent + " " + line[len(c.Indent):]
		fixes++
	}
	return fixes
}

// OrderedPrefix rewrites ordered list markers according to the configured
// style. The spacing after the marker is kept as written.
type OrderedPrefix struct {
	fixer.BaseStage
}

// NewOrderedPrefix creates the MD029 stage.
func NewOrderedPrefix() *OrderedPrefix {
	return &OrderedPrefix{
		BaseStage: fixer.NewBaseStage("MD029", "ol-prefix",
			"Normalize ordered list item numbering", orderOrderedPrefix, "ol"),
	}
}

// Apply implements fixer.Stage.
func (s *OrderedPrefix) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	sequential := doc.Options.OrderedListStyle == fixer.OrderedStyleOrdered
	counters := newListCounters()

	fixes := 0
	for i, line := range doc.Lines {
		if layout.Protected(i) || markdown.IsBlank(line) {
			if !markdown.IsBlank(line) && markdown.LeadingWhitespace(line) == "" {
				counters.reset()
			}
			continue
		}

		c := markdown.Classify(line)
		if c.Kind != markdown.KindListItem {
			if markdown.LeadingWhitespace(line) == "" {
				counters.reset()
			}
			continue
		}

		depth := len(c.Indent)
		if !c.Ordered {
			counters.bullet(depth)
			continue
		}

		want := "1"
		if sequential {
			want = strconv.Itoa(counters.next(depth))
		}
		if c.Marker == want {
			continue
		}
		doc.Lines[i] = c.Indent + want + "." + c.Gap + c.Text
		fixes++
	}
	return fixes
}

// listCounters numbers ordered items per indentation width within one list.
type listCounters struct {
	n map[int]int
}

func newListCounters() *listCounters {
	return &listCounters{n: make(map[int]int)}
}

func (lc *listCounters) reset() {
	clear(lc.n)
}

// dropDeeper forgets counters nested deeper than depth.
func (lc *listCounters) dropDeeper(depth int) {
	for d := range lc.n {
		if d > depth {
			delete(lc.n, d)
		}
	}
}

// next returns the number of the next ordered item at depth.
func (lc *listCounters) next(depth int) int {
	lc.dropDeeper(depth)
	lc.n[depth]++
	return lc.n[depth]
}

// bullet records an unordered item, which ends any ordered list at its depth.
func (lc *listCounters) bullet(depth int) {
	lc.dropDeeper(depth)
	delete(lc.n, depth)
}
