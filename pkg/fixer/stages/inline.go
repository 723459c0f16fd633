package stages

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// BareURLs wraps bare http and https URLs in angle brackets so they render as
// autolinks.
type BareURLs struct {
	fixer.BaseStage
}

// NewBareURLs creates the MD034 stage.
func NewBareURLs() *BareURLs {
	return &BareURLs{
		BaseStage: fixer.NewBaseStage("MD034", "no-bare-urls",
			"Wrap bare URLs in angle brackets", orderBareURLs, "links", "url"),
	}
}

// Apply implements fixer.Stage.
func (s *BareURLs) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	fixes := 0
	for i, line := range doc.Lines {
		if layout.Protected(i) {
			continue
		}
		fixed, n := wrapURLs(line)
		if n > 0 {
			doc.Lines[i] = fixed
			fixes += n
		}
	}
	return fixes
}

// trailingPunct is left outside the brackets when it ends a URL.
const trailingPunct = ".,;:!?'\""

func wrapURLs(line string) (string, int) {
	spans := markdown.URLSpans(line)
	if len(spans) == 0 {
		return line, 0
	}

	var b strings.Builder
	last, n := 0, 0
	for _, sp := range spans {
		if !isBareURL(line, sp) {
			continue
		}
		end := sp.Start + len(strings.TrimRight(line[sp.Start:sp.End], trailingPunct))
		if !strings.Contains(line[sp.Start:end], "://") || strings.HasSuffix(line[sp.Start:end], "://") {
			continue
		}
		b.WriteString(line[last:sp.Start])
		b.WriteByte('<')
		b.WriteString(line[sp.Start:end])
		b.WriteByte('>')
		last = end
		n++
	}
	if n == 0 {
		return line, 0
	}
	b.WriteString(line[last:])
	return b.String(), n
}

// isBareURL applies the context checks: the URL must not follow "](", "<",
// a quote or "=", must not be followed by ">" or ")", and must not be the
// whole text of a link.
func isBareURL(line string, sp markdown.Span) bool {
	var prev, next byte
	if sp.Start > 0 {
		prev = line[sp.Start-1]
	}
	if sp.End < len(line) {
		next = line[sp.End]
	}

	switch {
	case strings.HasSuffix(line[:sp.Start], "]("):
		return false
	case prev == '<' || prev == '"' || prev == '\'' || prev == '=':
		return false
	case next == '>' || next == ')':
		return false
	case prev == '[' && next == ']':
		return false
	}
	return true
}

// EmphasisStyle converts underscore emphasis to asterisks: strong "__x__"
// first, then "_x_".
type EmphasisStyle struct {
	fixer.BaseStage
}

// NewEmphasisStyle creates the MD049 stage.
func NewEmphasisStyle() *EmphasisStyle {
	return &EmphasisStyle{
		BaseStage: fixer.NewBaseStage("MD049", "emphasis-style",
			"Use asterisks for emphasis and strong emphasis", orderEmphasisStyle, "emphasis"),
	}
}

// Apply implements fixer.Stage.
func (s *EmphasisStyle) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	fixes := 0
	for i, line := range doc.Lines {
		if layout.Protected(i) || !strings.Contains(line, "_") {
			continue
		}
		strong, n1 := convertDelim(line, "__", "**")
		fixed, n2 := convertDelim(strong, "_", "*")
		if n1+n2 > 0 {
			doc.Lines[i] = fixed
			fixes += n1 + n2
		}
	}
	return fixes
}

// convertDelim replaces each flanking pair of delim with repl. Delimiters
// inside code spans, links and URLs are ignored.
//
// Closer candidates do not depend on the opener, so they are collected once
// and consumed left to right, keeping the scan linear in the line length.
func convertDelim(line, delim, repl string) (string, int) {
	protected := append(markdown.ProtectedSpans(line), markdown.URLSpans(line)...).Mask(len(line))

	var closers []int
	for j := 1; j+len(delim) <= len(line); j++ {
		if strings.HasPrefix(line[j:], delim) && !protected.At(j) && closes(line, j, delim) {
			closers = append(closers, j)
		}
	}
	if len(closers) == 0 {
		return line, 0
	}

	var b strings.Builder
	n, next := 0, 0
	for i := 0; i < len(line); {
		if !strings.HasPrefix(line[i:], delim) || protected.At(i) || !opens(line, i, delim) {
			b.WriteByte(line[i])
			i++
			continue
		}
		from := i + len(delim)
		for next < len(closers) && closers[next] < from {
			next++
		}
		if next == len(closers) {
			b.WriteString(line[i:])
			break
		}
		j := closers[next]
		b.WriteString(repl)
		b.WriteString(line[from:j])
		b.WriteString(repl)
		i = j + len(delim)
		n++
	}
	return b.String(), n
}

// opens reports whether delim at i can open emphasis: it is not preceded by a
// word character and is followed by a non-space that is not another
// underscore.
func opens(line string, i int, delim string) bool {
	after := i + len(delim)
	if after >= len(line) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(line[after:])
	if unicode.IsSpace(next) || next == '_' {
		return false
	}
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(line[:i])
	return !isWordRune(prev)
}

// closes reports whether delim at j can close emphasis. j must be past an
// opener, so it is never 0.
func closes(line string, j int, delim string) bool {
	prev, _ := utf8.DecodeLastRuneInString(line[:j])
	if unicode.IsSpace(prev) || prev == '_' {
		return false
	}
	after := j + len(delim)
	if after == len(line) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(line[after:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
