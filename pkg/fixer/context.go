package fixer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HeadingRegistry counts heading texts seen during one document run and
// remembers every name already in use, rewritten ones included.
type HeadingRegistry struct {
	counts map[string]int
	used   map[string]bool
}

// NewHeadingRegistry returns an empty registry.
func NewHeadingRegistry() *HeadingRegistry {
	return &HeadingRegistry{
		counts: make(map[string]int),
		used:   make(map[string]bool),
	}
}

// Key normalizes heading text: surrounding whitespace is trimmed and the
// result is put in Unicode NFC form. Case and punctuation are kept.
func Key(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// Claim records an occurrence of text and returns the name the heading should
// carry. The first occurrence keeps its text. Later occurrences get a
// " (N)" suffix where N is the occurrence number, bumped past any name that
// is already taken.
func (r *HeadingRegistry) Claim(text string) (string, bool) {
	key := Key(text)
	r.counts[key]++
	n := r.counts[key]

	if n == 1 && !r.used[key] {
		r.used[key] = true
		return text, false
	}
	if n == 1 {
		n = 2
	}

	name := fmt.Sprintf("%s (%d)", text, n)
	for r.used[Key(name)] {
		n++
		name = fmt.Sprintf("%s (%d)", text, n)
	}
	r.counts[key] = n
	r.used[Key(name)] = true
	return name, true
}

// Count returns how many times text has been claimed.
func (r *HeadingRegistry) Count(text string) int {
	return r.counts[Key(text)]
}

// RunContext carries per-document state through the stages. A fresh context
// is created for every document so concurrent runs share nothing.
type RunContext struct {
	// Ctx is the caller's context.
	Ctx context.Context

	// Headings tracks heading names for deduplication.
	Headings *HeadingRegistry

	counts map[string]int
	order  []string
	total  int
}

// NewRunContext creates the state for one document run.
func NewRunContext(ctx context.Context) *RunContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &RunContext{
		Ctx:      ctx,
		Headings: NewHeadingRegistry(),
		counts:   make(map[string]int),
	}
}

// Record adds n fixes to the tally of stage id.
func (rc *RunContext) Record(id string, n int) {
	if n <= 0 {
		return
	}
	if _, seen := rc.counts[id]; !seen {
		rc.order = append(rc.order, id)
	}
	rc.counts[id] += n
	rc.total += n
}

// FixCount returns the total fixes recorded so far.
func (rc *RunContext) FixCount() int {
	return rc.total
}

// StageCounts returns a copy of the per-stage tallies.
func (rc *RunContext) StageCounts() map[string]int {
	out := make(map[string]int, len(rc.counts))
	for id, n := range rc.counts {
		out[id] = n
	}
	return out
}
