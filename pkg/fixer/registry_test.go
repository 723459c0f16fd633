package fixer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fixer"
)

type fakeStage struct {
	fixer.BaseStage
}

func (s *fakeStage) Apply(*fixer.Document, *fixer.RunContext) int { return 0 }

func newFake(id, name string, order int) *fakeStage {
	return &fakeStage{BaseStage: fixer.NewBaseStage(id, name, "test stage", order)}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := fixer.NewRegistry()
	registry.Register(newFake("MD100", "first-rule", 20))
	registry.Register(newFake("MD200", "second-rule", 10))
	registry.RegisterAlias("old-first", "MD100")
	registry.RegisterAlias("dangling", "MD999")

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{key: "MD100", wantID: "MD100", wantOK: true},
		{key: "md200", wantID: "MD200", wantOK: true},
		{key: "first-rule", wantID: "MD100", wantOK: true},
		{key: "old-first", wantID: "MD100", wantOK: true},
		{key: "dangling"},
		{key: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			stage, ok := registry.Resolve(tt.key)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, stage.ID())
			}
		})
	}
}

func TestRegistryOrder(t *testing.T) {
	t.Parallel()

	registry := fixer.NewRegistry()
	registry.Register(newFake("MD300", "c", 30))
	registry.Register(newFake("MD102", "b", 10))
	registry.Register(newFake("MD101", "a", 10))

	assert.Equal(t, []string{"MD101", "MD102", "MD300"}, registry.IDs())
}

func TestRegistryReplace(t *testing.T) {
	t.Parallel()

	registry := fixer.NewRegistry()
	registry.Register(newFake("MD100", "old", 10))
	registry.Register(newFake("MD100", "new", 5))

	require.Len(t, registry.Stages(), 1)
	stage, ok := registry.Resolve("MD100")
	require.True(t, ok)
	assert.Equal(t, "new", stage.Name())
	assert.Equal(t, 5, stage.Order())
}

func TestDefaultRegistryMetadata(t *testing.T) {
	t.Parallel()

	for _, stage := range fixer.DefaultRegistry.Stages() {
		assert.NotEmpty(t, stage.Name(), stage.ID())
		assert.NotEmpty(t, stage.Description(), stage.ID())
		assert.NotEmpty(t, stage.Tags(), stage.ID())

		byName, ok := fixer.DefaultRegistry.Resolve(stage.Name())
		require.True(t, ok, stage.Name())
		assert.Equal(t, stage.ID(), byName.ID())
	}
}

func TestRegistryTagged(t *testing.T) {
	t.Parallel()

	registry := fixer.NewRegistry()
	registry.Register(&fakeStage{BaseStage: fixer.NewBaseStage("MD300", "late", "test stage", 30, "blank_lines")})
	registry.Register(&fakeStage{BaseStage: fixer.NewBaseStage("MD100", "early", "test stage", 10, "blank_lines", "code")})
	registry.Register(newFake("MD200", "untagged", 20))

	ids := func(stages []fixer.Stage) []string {
		var out []string
		for _, s := range stages {
			out = append(out, s.ID())
		}
		return out
	}

	assert.Equal(t, []string{"MD100", "MD300"}, ids(registry.Tagged("blank_lines")))
	assert.Equal(t, []string{"MD100"}, ids(registry.Tagged("code")))
	assert.Empty(t, registry.Tagged("tables"))
}
