package stages

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// TrailingSpaces strips trailing spaces and tabs from every line.
type TrailingSpaces struct {
	fixer.BaseStage
}

// NewTrailingSpaces creates the MD009 stage.
func NewTrailingSpaces() *TrailingSpaces {
	return &TrailingSpaces{
		BaseStage: fixer.NewBaseStage("MD009", "no-trailing-spaces",
			"Remove trailing spaces and tabs", orderTrailingSpaces, "whitespace"),
	}
}

// Apply implements fixer.Stage.
func (s *TrailingSpaces) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	fixes := 0
	for i, line := range doc.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed != line {
			doc.Lines[i] = trimmed
			fixes++
		}
	}
	return fixes
}

// BlankLines collapses runs of blank lines to a single blank line.
type BlankLines struct {
	fixer.BaseStage
}

// NewBlankLines creates the MD012 stage.
func NewBlankLines() *BlankLines {
	return &BlankLines{
		BaseStage: fixer.NewBaseStage("MD012", "no-multiple-blanks",
			"Collapse consecutive blank lines", orderBlankLines, "whitespace", "blank_lines"),
	}
}

// Apply implements fixer.Stage.
func (s *BlankLines) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	out := make([]string, 0, len(doc.Lines))
	fixes := 0
	for _, line := range doc.Lines {
		if markdown.IsBlank(line) && len(out) > 0 && markdown.IsBlank(out[len(out)-1]) {
			fixes++
			continue
		}
		out = append(out, line)
	}
	if fixes > 0 {
		doc.Replace(out)
	}
	return fixes
}

// FinalNewline makes the document end with exactly one newline. It trims
// trailing blank lines and trailing whitespace on the last line. A document
// holding nothing but whitespace becomes a single newline; only an empty
// source stays empty.
type FinalNewline struct {
	fixer.BaseStage
}

// NewFinalNewline creates the MD047 stage.
func NewFinalNewline() *FinalNewline {
	return &FinalNewline{
		BaseStage: fixer.NewBaseStage("MD047", "single-trailing-newline",
			"End the file with a single newline", orderFinalNewline, "blank_lines"),
	}
}

// Apply implements fixer.Stage.
func (s *FinalNewline) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	before := doc.Text()

	end := len(doc.Lines)
	for end > 0 && markdown.IsBlank(doc.Lines[end-1]) {
		end--
	}
	switch {
	case end == 0 && doc.Empty:
		doc.Replace([]string{""})
	case end == 0:
		doc.Replace([]string{"", ""})
	default:
		lines := append(doc.Lines[:end:end], "")
		lines[end-1] = strings.TrimRight(lines[end-1], " \t")
		doc.Replace(lines)
	}

	if doc.Text() != before {
		return 1
	}
	return 0
}
