package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Span is a half-open byte range [Start, End) of a line.
type Span struct {
	Start int
	End   int
}

// Contains reports whether byte offset i falls inside the span.
func (s Span) Contains(i int) bool { return i >= s.Start && i < s.End }

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }

// Spans is a set of byte ranges on one line.
type Spans []Span

// Contains reports whether any span contains byte offset i.
func (ss Spans) Contains(i int) bool {
	for _, s := range ss {
		if s.Contains(i) {
			return true
		}
	}
	return false
}

// Overlaps reports whether any span overlaps o.
func (ss Spans) Overlaps(o Span) bool {
	for _, s := range ss {
		if s.Overlaps(o) {
			return true
		}
	}
	return false
}

// Mask is a per-byte coverage map of one line.
type Mask []bool

// Mask marks every byte of a line of length n that some span covers.
func (ss Spans) Mask(n int) Mask {
	m := make(Mask, n)
	for _, s := range ss {
		m.Mark(s)
	}
	return m
}

// Mark covers every byte of s.
func (m Mask) Mark(s Span) {
	for i := max(s.Start, 0); i < s.End && i < len(m); i++ {
		m[i] = true
	}
}

// Covers reports whether any byte of s is covered.
func (m Mask) Covers(s Span) bool {
	for i := max(s.Start, 0); i < s.End && i < len(m); i++ {
		if m[i] {
			return true
		}
	}
	return false
}

// At reports whether byte offset i is covered.
func (m Mask) At(i int) bool { return i >= 0 && i < len(m) && m[i] }

//nolint:gochecknoglobals // compiled once
var (
	autolinkRe = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9+.\-]{1,31}:[^\s<>]*>`)
	inlineLink = regexp.MustCompile(`\]\([^)\s]*(?:\s+"[^"]*")?\)`)
	htmlAttr   = regexp.MustCompile(`(?i)\b(?:href|src)\s*=\s*("[^"]*"|'[^']*')`)
	urlRe      = regexp.MustCompile(`https?://[^\s<>\[\]()]+`)
)

// CodeSpans returns the inline code spans of line, backticks included.
// A run of N backticks is closed by the next run of exactly N backticks;
// an unmatched run is literal text.
func CodeSpans(line string) Spans {
	var spans Spans
	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		run := backtickRun(line, i)
		closeAt := -1
		for j := i + run; j < len(line); {
			if line[j] != '`' {
				j++
				continue
			}
			n := backtickRun(line, j)
			if n == run {
				closeAt = j
				break
			}
			j += n
		}
		if closeAt < 0 {
			i += run
			continue
		}
		spans = append(spans, Span{Start: i, End: closeAt + run})
		i = closeAt + run
	}
	return spans
}

func backtickRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}

// ProtectedSpans returns the parts of line that inline rewrites must not
// touch: code spans, autolinks, inline link destinations and HTML URL
// attributes.
func ProtectedSpans(line string) Spans {
	spans := CodeSpans(line)
	covered := spans.Mask(len(line))
	for _, re := range []*regexp.Regexp{autolinkRe, inlineLink, htmlAttr} {
		for _, m := range re.FindAllStringIndex(line, -1) {
			s := Span{Start: m[0], End: m[1]}
			if !covered.Covers(s) {
				spans = append(spans, s)
				covered.Mark(s)
			}
		}
	}
	return spans
}

// URLSpans returns every http or https URL on line that is not protected.
func URLSpans(line string) Spans {
	protected := ProtectedSpans(line).Mask(len(line))
	var spans Spans
	for _, m := range urlRe.FindAllStringIndex(line, -1) {
		s := Span{Start: m[0], End: m[1]}
		if !protected.Covers(s) {
			spans = append(spans, s)
		}
	}
	return spans
}

// Width returns the display width of s in terminal columns. Tabs count as one
// column.
func Width(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "")) + strings.Count(s, "\t")
}

// Words splits s at whitespace that lies outside inline code spans, so a code
// span containing spaces stays a single word.
func Words(s string) []string {
	code := CodeSpans(s).Mask(len(s))
	var words []string
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) && !code.At(i) {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// Sentences groups words into sentences. A sentence ends with a word whose
// last character is a period.
func Sentences(words []string) [][]string {
	var sentences [][]string
	var current []string
	for _, w := range words {
		current = append(current, w)
		if strings.HasSuffix(w, ".") {
			sentences = append(sentences, current)
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}
