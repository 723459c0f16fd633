package fixer

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the known stages.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Stage
	byName  map[string]Stage
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Stage),
		byName:  make(map[string]Stage),
		aliases: make(map[string]string),
	}
}

// Register adds a stage, replacing any stage with the same ID.
func (r *Registry) Register(stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[stage.ID()] = stage
	r.byName[stage.Name()] = stage
}

// RegisterAlias maps an extra name onto a stage ID, e.g. the markdownlint
// names "no-multiple-blanks" or "fenced-code-language".
func (r *Registry) RegisterAlias(alias, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = id
}

// Resolve looks a stage up by ID, name or alias. IDs match case-insensitively.
func (r *Registry) Resolve(key string) (Stage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if stage, ok := r.byID[strings.ToUpper(key)]; ok {
		return stage, true
	}
	if stage, ok := r.byName[key]; ok {
		return stage, true
	}
	if id, ok := r.aliases[key]; ok {
		if stage, ok := r.byID[id]; ok {
			return stage, true
		}
	}
	return nil, false
}

// Stages returns every registered stage in pipeline order.
func (r *Registry) Stages() []Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Stage, 0, len(r.byID))
	for _, stage := range r.byID {
		result = append(result, stage)
	}
	slices.SortFunc(result, func(a, b Stage) int {
		if c := cmp.Compare(a.Order(), b.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns the registered stage IDs in pipeline order.
func (r *Registry) IDs() []string {
	stages := r.Stages()
	ids := make([]string, len(stages))
	for i, s := range stages {
		ids[i] = s.ID()
	}
	return ids
}

// Tagged returns the stages carrying tag, in pipeline order.
func (r *Registry) Tagged(tag string) []Stage {
	var result []Stage
	for _, stage := range r.Stages() {
		if slices.Contains(stage.Tags(), tag) {
			result = append(result, stage)
		}
	}
	return result
}

// DefaultRegistry holds the built-in stages. The stages package fills it
// from init().
//
//nolint:gochecknoglobals // Global registry is intentional for stage registration
var DefaultRegistry = NewRegistry()
