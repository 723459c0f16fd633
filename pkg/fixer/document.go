// Package fixer rewrites Markdown documents so they satisfy a fixed set of
// style rules. Each rule is a Stage; the Engine runs the enabled stages over a
// Document in order and the Pipeline wraps the engine with file safety.
package fixer

import (
	"strings"
)

// OrderedListStyle selects how ordered list markers are rewritten.
type OrderedListStyle string

// Ordered list styles.
const (
	// OrderedStyleOne rewrites every ordered marker to "1.".
	OrderedStyleOne OrderedListStyle = "one"

	// OrderedStyleOrdered renumbers each list 1, 2, 3 per indent level.
	OrderedStyleOrdered OrderedListStyle = "ordered"
)

// Defaults.
const (
	DefaultMaxLineLength = 100
	DefaultFenceLanguage = "text"
	DefaultOrderedStyle  = OrderedStyleOne
)

// Options tune the stages for one run.
type Options struct {
	// MaxLineLength is the display width above which prose is wrapped.
	MaxLineLength int

	// DefaultLanguage tags untagged fences when no hint matches.
	DefaultLanguage string

	// OrderedListStyle selects the ordered marker policy.
	OrderedListStyle OrderedListStyle

	// DetectLanguage enables content based language detection for untagged
	// fences that carry no keyword hint.
	DetectLanguage bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxLineLength:    DefaultMaxLineLength,
		DefaultLanguage:  DefaultFenceLanguage,
		OrderedListStyle: DefaultOrderedStyle,
	}
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	if o.DefaultLanguage == "" {
		o.DefaultLanguage = DefaultFenceLanguage
	}
	if o.OrderedListStyle == "" {
		o.OrderedListStyle = DefaultOrderedStyle
	}
	return o
}

// Document is the line sequence every stage rewrites in place.
//
// Lines are newline-exclusive. Text that ends with a newline yields a final
// empty element. Carriage returns ending a line are dropped, so a stray "\r"
// cannot survive as trailing content.
type Document struct {
	Lines   []string
	Options Options

	// Empty is set when the source text was "". Only an empty source may
	// produce an empty document.
	Empty bool
}

// NewDocument splits LF-normalized text into a Document.
func NewDocument(text string, opts Options) *Document {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return &Document{
		Lines:   lines,
		Options: opts.withDefaults(),
		Empty:   text == "",
	}
}

// Text joins the lines back into a string.
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Replace swaps the line sequence for a rewritten one.
func (d *Document) Replace(lines []string) {
	d.Lines = lines
}
