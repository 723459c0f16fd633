package stages_test

import (
	"testing"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fixer/stages"
)

func TestFenceLanguage(t *testing.T) {
	t.Parallel()

	newStage := func() fixer.Stage { return stages.NewFenceLanguage() }

	runStageCases(t, newStage, fixer.DefaultOptions(), []stageCase{
		{"python hint", "```\n# python example\n```", "```python\n# python example\n```", 1},
		{"default language", "```\nfoo\n```", "```text\nfoo\n```", 1},
		{"empty block", "```\n```", "```text\n```", 1},
		{"tagged left alone", "```go\nx := 1\n```", "```go\nx := 1\n```", 0},
		{
			"closer never tagged",
			"```\nfoo\n```\n\n```\nbar\n```",
			"```text\nfoo\n```\n\n```text\nbar\n```",
			2,
		},
		{
			"lookahead is four lines",
			"```\na\nb\nc\nd\npython\n```",
			"```text\na\nb\nc\nd\npython\n```",
			1,
		},
		{
			"hint after closer ignored",
			"```\nfoo\n```\nbash",
			"```text\nfoo\n```\nbash",
			1,
		},
		{"indent and tick count kept", "  ````\n  foo\n  ````", "  ````text\n  foo\n  ````", 1},
	})

	custom := fixer.DefaultOptions()
	custom.DefaultLanguage = "plaintext"
	custom.DetectLanguage = true
	runStageCases(t, newStage, custom, []stageCase{
		{"configured default", "```\nfoo\n```", "```plaintext\nfoo\n```", 1},
	})
}
