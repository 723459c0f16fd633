// Package verify re-parses fixed Markdown with goldmark and checks that the
// rewrite kept the document's block structure.
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrStructureChanged is returned when the fixed text parses to a different
// number of headings or fenced code blocks than the original.
var ErrStructureChanged = errors.New("document structure changed")

// Shape counts the blocks a fix must never create or destroy.
type Shape struct {
	Headings     int `json:"headings"`
	FencedBlocks int `json:"fencedBlocks"`
}

func (s Shape) String() string {
	return fmt.Sprintf("%d headings, %d fenced blocks", s.Headings, s.FencedBlocks)
}

// Verifier wraps a GFM-flavored goldmark instance. It is safe for
// concurrent use.
type Verifier struct {
	md goldmark.Markdown
}

// New returns a Verifier.
func New() *Verifier {
	return &Verifier{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Measure parses source and counts its headings and fenced code blocks.
func (v *Verifier) Measure(ctx context.Context, source []byte) (Shape, error) {
	if err := ctx.Err(); err != nil {
		return Shape{}, fmt.Errorf("measure: %w", err)
	}

	doc := v.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	var shape Shape
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindHeading:
			shape.Headings++
		case ast.KindFencedCodeBlock:
			shape.FencedBlocks++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Shape{}, fmt.Errorf("walk: %w", err)
	}
	return shape, nil
}

// Compare measures both versions and returns ErrStructureChanged, carrying
// both shapes in the message, when they differ.
func (v *Verifier) Compare(ctx context.Context, before, after []byte) error {
	was, err := v.Measure(ctx, before)
	if err != nil {
		return err
	}
	now, err := v.Measure(ctx, after)
	if err != nil {
		return err
	}
	if was != now {
		return fmt.Errorf("%w: had %s, now %s", ErrStructureChanged, was, now)
	}
	return nil
}
