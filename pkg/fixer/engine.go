package fixer

import (
	"context"
	"fmt"
	"strings"
)

const bom = "\ufeff"

// FixResult is the outcome of fixing one document. The text is rewritten as a
// whole or not at all.
type FixResult struct {
	// Changed is true when Text differs from the input.
	Changed bool

	// FixCount is the number of individual fixes applied.
	FixCount int

	// Text is the fixed document.
	Text string

	// StageCounts breaks FixCount down by stage ID.
	StageCounts map[string]int
}

// Engine runs the enabled stages over documents. It holds no per-document
// state and is safe for concurrent use.
type Engine struct {
	// Registry supplies the stages.
	Registry *Registry

	// Options tune the stages.
	Options Options

	stages []Stage
}

// NewEngine builds an engine over registry. selection enables or disables
// stages by ID, name or alias; stages it does not mention stay enabled.
func NewEngine(registry *Registry, opts Options, selection map[string]bool) (*Engine, error) {
	if registry == nil {
		registry = DefaultRegistry
	}

	disabled := make(map[string]bool)
	for key, enabled := range selection {
		stage, ok := registry.Resolve(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, key)
		}
		disabled[stage.ID()] = !enabled
	}

	engine := &Engine{Registry: registry, Options: opts.withDefaults()}
	for _, stage := range registry.Stages() {
		if !disabled[stage.ID()] {
			engine.stages = append(engine.stages, stage)
		}
	}
	return engine, nil
}

// Stages returns the enabled stages in the order they run.
func (e *Engine) Stages() []Stage {
	return e.stages
}

// Fix runs every enabled stage over text.
//
// CRLF line endings and a leading byte order mark are stripped before the
// stages run and restored afterwards.
func (e *Engine) Fix(ctx context.Context, text string) (FixResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	body, hasBOM := strings.CutPrefix(text, bom)
	crlf := strings.Contains(body, "\r\n")
	if crlf {
		body = strings.ReplaceAll(body, "\r\n", "\n")
	}

	doc := NewDocument(body, e.Options)
	doc.Empty = text == ""
	rc := NewRunContext(ctx)

	for _, stage := range e.stages {
		if err := ctx.Err(); err != nil {
			return FixResult{}, fmt.Errorf("fix cancelled: %w", err)
		}
		rc.Record(stage.ID(), stage.Apply(doc, rc))
	}

	out := doc.Text()
	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	if hasBOM {
		out = bom + out
	}

	return FixResult{
		Changed:     out != text,
		FixCount:    rc.FixCount(),
		Text:        out,
		StageCounts: rc.StageCounts(),
	}, nil
}
