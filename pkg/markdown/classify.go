// Package markdown holds the line-level predicates shared by every fixer stage:
// block classification, fence and front matter scanning, inline span
// detection and display-width measurement.
//
// Nothing here is cached. Stages rewrite lines, so callers classify again
// after every change.
package markdown

import (
	"regexp"
	"strings"
)

// Kind is the structural class of a single line.
type Kind int

// Line kinds.
const (
	KindPlain Kind = iota
	KindHeading
	KindListItem
	KindFence
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindFence:
		return "fence"
	default:
		return "plain"
	}
}

// Class describes a classified line. Only the fields relevant to Kind are set.
type Class struct {
	Kind Kind

	// Heading.
	Level int

	// Heading and list item: the content after the marker.
	Text string

	// List item.
	Ordered bool
	Marker  string // "-", "*", "+" or the digits of an ordered marker
	Indent  string // leading whitespace
	Gap     string // whitespace between marker and text

	// Fence delimiter.
	HasLanguage bool
	Language    string
	Ticks       int
}

//nolint:gochecknoglobals // compiled once
var (
	// A space or a tab may follow the "#" run, as in CommonMark ATX headings.
	headingRe   = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)
	unorderedRe = regexp.MustCompile(`^([ \t]*)([-*+])( +)(.*)$`)
	orderedRe   = regexp.MustCompile(`^([ \t]*)([0-9]+)\.( +)(.*)$`)
)

// Classify returns the structural class of line.
func Classify(line string) Class {
	if c, ok := classifyFence(line); ok {
		return c
	}
	if m := headingRe.FindStringSubmatch(line); m != nil {
		return Class{Kind: KindHeading, Level: len(m[1]), Text: strings.TrimSpace(m[2])}
	}
	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		return Class{Kind: KindListItem, Indent: m[1], Marker: m[2], Gap: m[3], Text: m[4]}
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		return Class{Kind: KindListItem, Ordered: true, Indent: m[1], Marker: m[2], Gap: m[3], Text: m[4]}
	}
	return Class{Kind: KindPlain}
}

func classifyFence(line string) (Class, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return Class{}, false
	}
	ticks := len(trimmed) - len(strings.TrimLeft(trimmed, "`"))
	info := strings.TrimSpace(trimmed[ticks:])
	c := Class{
		Kind:        KindFence,
		Indent:      line[:len(line)-len(strings.TrimLeft(line, " \t"))],
		Ticks:       ticks,
		HasLanguage: info != "",
	}
	if c.HasLanguage {
		c.Language = strings.Fields(info)[0]
	}
	return c, true
}

// IsHeading reports whether line is an ATX heading.
func IsHeading(line string) bool { return Classify(line).Kind == KindHeading }

// IsListItem reports whether line starts an ordered or unordered list item.
func IsListItem(line string) bool { return Classify(line).Kind == KindListItem }

// IsFence reports whether line is a backtick fence delimiter.
func IsFence(line string) bool { return Classify(line).Kind == KindFence }

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool { return strings.TrimSpace(line) == "" }

// LeadingWhitespace returns the run of spaces and tabs that starts line.
func LeadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// StartsBlock reports whether a line beginning with token would be read as
// something other than paragraph text: an ATX heading, list item, fence,
// blockquote, table row, HTML block or setext underline.
func StartsBlock(token string) bool {
	if token == "" {
		return false
	}
	switch token[0] {
	case '>', '|':
		return true
	case '<':
		if len(token) > 1 && (isASCIILetter(token[1]) || strings.ContainsRune("/!?", rune(token[1]))) {
			return true
		}
	}
	if strings.HasPrefix(token, "```") || strings.HasPrefix(token, "~~~") {
		return true
	}
	switch {
	case strings.Trim(token, "#") == "" && len(token) <= 6:
		return true
	case token == "*" || token == "+":
		return true
	case strings.Trim(token, "-") == "", strings.Trim(token, "=") == "":
		return true
	}
	digits := strings.TrimRight(token, ".)")
	if len(digits) > 0 && len(digits) == len(token)-1 && strings.Trim(digits, "0123456789") == "" {
		return true
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
