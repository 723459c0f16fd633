package stages

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// codeIndent is the indentation width at which a line is an indented code
// block and must not be reflowed.
const codeIndent = 4

//nolint:gochecknoglobals // compiled once
var (
	linePrefix = regexp.MustCompile(`^[ \t]*(?:>[ \t]?)*`)
	linkRefDef = regexp.MustCompile(`^\[[^\]]+\]:`)
)

// LineLength wraps prose lines wider than the configured maximum. It breaks
// at sentence ends when it can and between words otherwise. Headings, list
// items, fences, URLs, tables, HTML and indented code are left alone.
type LineLength struct {
	fixer.BaseStage
}

// NewLineLength creates the MD013 stage.
func NewLineLength() *LineLength {
	return &LineLength{
		BaseStage: fixer.NewBaseStage("MD013", "line-length",
			"Wrap lines longer than the maximum width", orderLineLength, "line_length"),
	}
}

// Apply implements fixer.Stage.
func (s *LineLength) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	limit := doc.Options.MaxLineLength
	layout := markdown.Scan(doc.Lines)

	out := make([]string, 0, len(doc.Lines))
	fixes := 0
	for i, line := range doc.Lines {
		if markdown.Width(line) <= limit || layout.Protected(i) || !wrappable(line) {
			out = append(out, line)
			continue
		}
		wrapped := wrapLine(line, limit)
		if len(wrapped) > 1 {
			fixes++
		}
		out = append(out, wrapped...)
	}
	if fixes > 0 {
		doc.Replace(out)
	}
	return fixes
}

// wrappable reports whether line is plain prose. Lines opening with "<" are
// autolinks or raw HTML and are never split.
func wrappable(line string) bool {
	prefix := linePrefix.FindString(line)
	if indentWidth(markdown.LeadingWhitespace(prefix)) >= codeIndent {
		return false
	}
	rest := line[len(prefix):]
	if markdown.Classify(rest).Kind != markdown.KindPlain || markdown.Classify(line).Kind != markdown.KindPlain {
		return false
	}
	switch {
	case strings.HasPrefix(rest, "http"), strings.HasPrefix(rest, "<"):
		return false
	case strings.HasPrefix(rest, "|"):
		return false
	case linkRefDef.MatchString(rest):
		return false
	}
	return true
}

func indentWidth(ws string) int {
	w := 0
	for _, r := range ws {
		if r == '\t' {
			w += codeIndent
			continue
		}
		w++
	}
	return w
}

// wrapLine reflows one line. Sentences are packed greedily; a sentence that
// cannot fit on a line of its own is broken between words. A word longer
// than the limit gets a line to itself.
func wrapLine(line string, limit int) []string {
	prefix := linePrefix.FindString(line)
	words := glue(markdown.Words(line[len(prefix):]))
	if len(words) < 2 {
		return []string{line}
	}

	var lines []string
	cur := ""
	fits := func(s string) bool { return markdown.Width(prefix+s) <= limit }

	for _, sentence := range markdown.Sentences(words) {
		text := strings.Join(sentence, " ")
		if cur != "" && fits(cur+" "+text) {
			cur += " " + text
			continue
		}
		if cur != "" {
			lines = append(lines, prefix+cur)
			cur = ""
		}
		if fits(text) {
			cur = text
			continue
		}
		for _, w := range sentence {
			switch {
			case cur == "":
				cur = w
			case fits(cur + " " + w):
				cur += " " + w
			default:
				lines = append(lines, prefix+cur)
				cur = w
			}
		}
	}
	if cur != "" {
		lines = append(lines, prefix+cur)
	}
	return lines
}

// glue attaches every word that would start a new block to the word before
// it, so no wrapped line can begin with one.
func glue(words []string) []string {
	out := make([]string, 0, len(words))
	for i, w := range words {
		if i > 0 && markdown.StartsBlock(w) {
			out[len(out)-1] += " " + w
			continue
		}
		out = append(out, w)
	}
	return out
}
