package fixer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fixer"
	_ "github.com/yaklabco/mdfix/pkg/fixer/stages"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

func newEngine(t *testing.T, selection map[string]bool) *fixer.Engine {
	t.Helper()
	engine, err := fixer.NewEngine(nil, fixer.DefaultOptions(), selection)
	require.NoError(t, err)
	return engine
}

func fix(t *testing.T, engine *fixer.Engine, input string) fixer.FixResult {
	t.Helper()
	result, err := engine.Fix(context.Background(), input)
	require.NoError(t, err)
	return result
}

func TestFixScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "blank line after heading and final newline",
			input: "# Title\nSome text",
			want:  "# Title\n\nSome text\n",
		},
		{
			name:  "duplicate heading renamed",
			input: "## Overview\n\ntext\n\n## Overview\n",
			want:  "## Overview\n\ntext\n\n## Overview (2)\n",
		},
		{
			name:  "fence tagged from body hint",
			input: "```\nprint('hello from python')\n```\n",
			want:  "```python\nprint('hello from python')\n```\n",
		},
		{
			name:  "untagged fence without hint gets default",
			input: "```\nfoo bar\n```\n",
			want:  "```text\nfoo bar\n```\n",
		},
		{
			name:  "bare url wrapped",
			input: "Visit http://example.com now",
			want:  "Visit <http://example.com> now\n",
		},
		{
			name:  "underscore emphasis converted",
			input: "_hello_ and __world__",
			want:  "*hello* and **world**\n",
		},
		{
			name:  "trailing whitespace and blank runs",
			input: "a  \n\n\n\nb\t\n\n\n",
			want:  "a\n\nb\n",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only document",
			input: "  \n\n\t\n",
			want:  "\n",
		},
		{
			name:  "single newline",
			input: "\n",
			want:  "\n",
		},
		{
			name:  "stray carriage return at end",
			input: "\n0\r",
			want:  "\n0\n",
		},
		{
			name:  "stray carriage return after crlf lines",
			input: "text\r\nmore\r",
			want:  "text\r\nmore\r\n",
		},
	}

	engine := newEngine(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := fix(t, engine, tt.input)
			assert.Equal(t, tt.want, result.Text)
			assert.Equal(t, tt.want != tt.input, result.Changed)
		})
	}
}

func TestFixCounts(t *testing.T) {
	t.Parallel()

	result := fix(t, newEngine(t, nil), "# Title\nSome text")
	assert.True(t, result.Changed)
	assert.Equal(t, 2, result.FixCount)
	assert.Equal(t, map[string]int{"MD022": 1, "MD047": 1}, result.StageCounts)

	clean := fix(t, newEngine(t, nil), result.Text)
	assert.False(t, clean.Changed)
	assert.Zero(t, clean.FixCount)
	assert.Empty(t, clean.StageCounts)
}

func TestFixLineEndings(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, nil)

	t.Run("crlf preserved", func(t *testing.T) {
		t.Parallel()
		result := fix(t, engine, "# Title\r\nSome text\r\n")
		assert.Equal(t, "# Title\r\n\r\nSome text\r\n", result.Text)
	})

	t.Run("bom preserved", func(t *testing.T) {
		t.Parallel()
		result := fix(t, engine, "\ufeff# Title\nSome text")
		assert.Equal(t, "\ufeff# Title\n\nSome text\n", result.Text)
	})

	t.Run("clean crlf document unchanged", func(t *testing.T) {
		t.Parallel()
		result := fix(t, engine, "# Title\r\n\r\ntext\r\n")
		assert.False(t, result.Changed)
	})
}

func TestNewEngineSelection(t *testing.T) {
	t.Parallel()

	t.Run("disable by id", func(t *testing.T) {
		t.Parallel()
		result := fix(t, newEngine(t, map[string]bool{"MD047": false}), "# Title\nSome text")
		assert.Equal(t, "# Title\n\nSome text", result.Text)
	})

	t.Run("disable by lower case id", func(t *testing.T) {
		t.Parallel()
		result := fix(t, newEngine(t, map[string]bool{"md022": false}), "# Title\nSome text")
		assert.Equal(t, "# Title\nSome text\n", result.Text)
	})

	t.Run("disable by name", func(t *testing.T) {
		t.Parallel()
		result := fix(t, newEngine(t, map[string]bool{"no-trailing-spaces": false}), "a  \nb\n")
		assert.False(t, result.Changed)
	})

	t.Run("disable by alias", func(t *testing.T) {
		t.Parallel()
		input := "# A\n\n# A\n"
		result := fix(t, newEngine(t, map[string]bool{"no-duplicate-header": false}), input)
		assert.Equal(t, input, result.Text)
	})

	t.Run("explicit enable keeps stage", func(t *testing.T) {
		t.Parallel()
		engine := newEngine(t, map[string]bool{"MD009": true})
		assert.Len(t, engine.Stages(), len(fixer.DefaultRegistry.Stages()))
	})

	t.Run("unknown stage", func(t *testing.T) {
		t.Parallel()
		_, err := fixer.NewEngine(nil, fixer.DefaultOptions(), map[string]bool{"MD999": false})
		require.ErrorIs(t, err, fixer.ErrUnknownStage)
	})
}

func TestEngineStageOrder(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0)
	for _, stage := range newEngine(t, nil).Stages() {
		ids = append(ids, stage.ID())
	}
	assert.Equal(t, []string{
		"MD009", "MD012", "MD022", "MD032", "MD031", "MD040", "MD024",
		"MD007", "MD029", "MD034", "MD049", "MD013", "MD047",
	}, ids)
}

func TestFixCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t, nil).Fix(ctx, "# Title\n")
	require.ErrorIs(t, err, context.Canceled)
}

//nolint:gochecknoglobals // shared test corpus
var corpus = []string{
	"# Title\nSome text",
	"",
	"\n\n\n",
	"---\ntitle: Test\ntags: [a, b]\n---\n# Intro\nSome  text with http://example.com/a.b link.   \n\n\n\n## Intro\n",
	"Intro\n* one\n* two\n   * nested\n\n\n3. first\n7. second\nafter\n",
	"```\nconst x = require('lib')\n```\n```js\nalready();\n```\ntext _emph_ and __strong__ and `_code_`\n",
	"````\n```\nnot a closer\n````\n#Heading without space\n",
	"This is a long paragraph line that keeps going well past the configured limit. " +
		"It has several sentences. Each of them is short. The wrapper should pack them " +
		"sentence by sentence and then fall back to words when needed.\n",
	"> quoted text that is also quite long and will need to be wrapped because it runs past " +
		"the column limit of one hundred characters.\n",
	"| a | b |\n|---|---|\n| http://x.y | _z_ |\n",
	"# Dup\n\n# Dup\n\n# Dup (2)\n\n# Dup\n",
	"1) paren list\n2) second\n\n- [link](http://example.com) and <http://auto.link>\n",
	"unclosed fence follows\n```\nbody  \n\n\n",
	"\n",
	"   \n\n",
	"\t\n",
	"\n0\r",
	"text\r\nmore\r",
	"```\r\ncode\r\n```\r",
}

func TestFixProperties(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, nil)
	for i, input := range corpus {
		result := fix(t, engine, input)
		out := result.Text

		again := fix(t, engine, out)
		assert.Equal(t, out, again.Text, "corpus[%d]: not idempotent", i)
		assert.False(t, again.Changed, "corpus[%d]", i)

		if input == "" {
			assert.Empty(t, out, "corpus[%d]", i)
			continue
		}
		assert.True(t, strings.HasSuffix(out, "\n"), "corpus[%d]: missing final newline", i)
		assert.False(t, strings.HasSuffix(out, "\n\n"), "corpus[%d]: trailing blank line", i)
		assert.NotContains(t, out, "\n\n\n", "corpus[%d]: blank run", i)

		lines := strings.Split(out, "\n")
		for _, line := range lines {
			assert.Equal(t, strings.TrimRight(line, " \t"), line, "corpus[%d]: trailing whitespace", i)
		}
		assert.Equal(t, countFences(strings.Split(input, "\n")), countFences(lines),
			"corpus[%d]: fence lines", i)
	}
}

func countFences(lines []string) int {
	n := 0
	for _, line := range lines {
		if markdown.IsFence(line) {
			n++
		}
	}
	return n
}
