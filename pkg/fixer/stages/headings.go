package stages

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

//nolint:gochecknoglobals // compiled once
var closingSequence = regexp.MustCompile(`[ \t]+#+$`)

// DuplicateHeadings renames repeated headings. The first occurrence keeps its
// text; later ones get an occurrence suffix such as "Overview (2)". Counting
// is global per document and ignores heading level.
type DuplicateHeadings struct {
	fixer.BaseStage
}

// NewDuplicateHeadings creates the MD024 stage.
func NewDuplicateHeadings() *DuplicateHeadings {
	return &DuplicateHeadings{
		BaseStage: fixer.NewBaseStage("MD024", "no-duplicate-heading",
			"Make repeated heading text unique", orderDuplicateHeadings, "headings"),
	}
}

// Apply implements fixer.Stage.
func (s *DuplicateHeadings) Apply(doc *fixer.Document, rc *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	fixes := 0
	for i, line := range doc.Lines {
		if layout.Protected(i) {
			continue
		}
		c := markdown.Classify(line)
		if c.Kind != markdown.KindHeading {
			continue
		}

		text, closing := splitClosing(c.Text)
		name, renamed := rc.Headings.Claim(text)
		if !renamed {
			continue
		}
		doc.Lines[i] = strings.Repeat("#", c.Level) + " " + name + closing
		fixes++
	}
	return fixes
}

// splitClosing separates an optional closing "##" sequence from heading text.
func splitClosing(text string) (string, string) {
	loc := closingSequence.FindStringIndex(text)
	if loc == nil {
		return text, ""
	}
	return text[:loc[0]], text[loc[0]:]
}
