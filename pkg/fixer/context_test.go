package fixer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/pkg/fixer"
)

func TestHeadingRegistryClaim(t *testing.T) {
	t.Parallel()

	type claim struct {
		text    string
		want    string
		renamed bool
	}

	tests := []struct {
		name   string
		claims []claim
	}{
		{
			name: "repeats are numbered",
			claims: []claim{
				{"Overview", "Overview", false},
				{"Overview", "Overview (2)", true},
				{"Overview", "Overview (3)", true},
			},
		},
		{
			name: "case matters",
			claims: []claim{
				{"Setup", "Setup", false},
				{"setup", "setup", false},
			},
		},
		{
			name: "generated name already taken",
			claims: []claim{
				{"Usage (2)", "Usage (2)", false},
				{"Usage", "Usage", false},
				{"Usage", "Usage (3)", true},
			},
		},
		{
			name: "generated name later written by hand",
			claims: []claim{
				{"Notes", "Notes", false},
				{"Notes", "Notes (2)", true},
				{"Notes (2)", "Notes (2) (2)", true},
			},
		},
		{
			name: "unicode normalization",
			claims: []claim{
				{"caf\u00e9", "caf\u00e9", false},
				{"cafe\u0301", "cafe\u0301 (2)", true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			registry := fixer.NewHeadingRegistry()
			for _, c := range tt.claims {
				got, renamed := registry.Claim(c.text)
				assert.Equal(t, c.want, got)
				assert.Equal(t, c.renamed, renamed, c.text)
			}
		})
	}
}

func TestHeadingRegistryCount(t *testing.T) {
	t.Parallel()

	registry := fixer.NewHeadingRegistry()
	registry.Claim("  Intro ")
	registry.Claim("Intro")
	assert.Equal(t, 2, registry.Count("Intro"))
	assert.Zero(t, registry.Count("Other"))
}

func TestRunContextCounts(t *testing.T) {
	t.Parallel()

	rc := fixer.NewRunContext(context.Background())
	rc.Record("MD009", 2)
	rc.Record("MD012", 0)
	rc.Record("MD009", 1)
	rc.Record("MD047", 1)

	assert.Equal(t, 4, rc.FixCount())
	counts := rc.StageCounts()
	assert.Equal(t, map[string]int{"MD009": 3, "MD047": 1}, counts)

	counts["MD009"] = 100
	assert.Equal(t, 3, rc.StageCounts()["MD009"])
}
