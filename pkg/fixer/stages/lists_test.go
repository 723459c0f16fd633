package stages_test

import (
	"testing"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fixer/stages"
)

func TestListIndent(t *testing.T) {
	t.Parallel()

	runStageCases(t, func() fixer.Stage { return stages.NewListIndent() }, fixer.DefaultOptions(), []stageCase{
		{"even untouched", "- a\n  - b\n    - c", "- a\n  - b\n    - c", 0},
		{"odd rounded up", " - a\n   - b\n  - c\n- d", "  - a\n    - b\n  - c\n- d", 2},
		{"ordered item", " 1. x", "  1. x", 1},
		{"plain text ignored", " not a list", " not a list", 0},
		{"fence body ignored", "```\n - a\n```", "```\n - a\n```", 0},
	})
}

func TestOrderedPrefixOne(t *testing.T) {
	t.Parallel()

	runStageCases(t, func() fixer.Stage { return stages.NewOrderedPrefix() }, fixer.DefaultOptions(), []stageCase{
		{"collapse to one", "1. a\n2. b\n3.  c", "1. a\n1. b\n1.  c", 2},
		{"nested", "1. a\n   7. b", "1. a\n   1. b", 1},
		{"bullets untouched", "- a\n- b", "- a\n- b", 0},
		{"year at line start reads as an item", "2019. was a year", "1. was a year", 1},
	})
}

func TestOrderedPrefixSequential(t *testing.T) {
	t.Parallel()

	opts := fixer.DefaultOptions()
	opts.OrderedListStyle = fixer.OrderedStyleOrdered

	runStageCases(t, func() fixer.Stage { return stages.NewOrderedPrefix() }, opts, []stageCase{
		{"already sequential", "1. a\n2. b", "1. a\n2. b", 0},
		{"renumber", "1. a\n1. b\n1. c", "1. a\n2. b\n3. c", 2},
		{
			"per indent level",
			"3. a\n7. b\n   1. x\n   9. y\n8. c",
			"1. a\n2. b\n   1. x\n   2. y\n3. c",
			4,
		},
		{"blank lines keep the list", "1. a\n\n1. b", "1. a\n\n2. b", 1},
		{"paragraph restarts", "1. a\n2. b\n\nPara\n\n5. c", "1. a\n2. b\n\nPara\n\n1. c", 1},
		{"bullet restarts its level", "1. a\n- b\n4. c", "1. a\n- b\n1. c", 1},
	})
}
