package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/pkg/markdown"
)

func TestCodeSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want markdown.Spans
	}{
		{"none", "plain text", nil},
		{"single", "use `go test` here", markdown.Spans{{Start: 4, End: 13}}},
		{"double ticks", "a ``x ` y`` b", markdown.Spans{{Start: 2, End: 11}}},
		{"unmatched", "a ` b", nil},
		{"two spans", "`a` and `b`", markdown.Spans{{Start: 0, End: 3}, {Start: 8, End: 11}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, markdown.CodeSpans(tt.line))
		})
	}
}

func TestURLSpans(t *testing.T) {
	t.Parallel()

	line := "see https://a.io, `http://code.io` [x](http://link.io) <http://auto.io> and http://b.io"
	spans := markdown.URLSpans(line)

	var got []string
	for _, s := range spans {
		got = append(got, line[s.Start:s.End])
	}
	assert.Equal(t, []string{"https://a.io,", "http://b.io"}, got)
}

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"run", "`go test ./...`", "now."}, markdown.Words("  run `go test ./...`   now. "))
	assert.Nil(t, markdown.Words("   "))
}

func TestSentences(t *testing.T) {
	t.Parallel()

	got := markdown.Sentences([]string{"One.", "Two", "words.", "tail"})
	assert.Equal(t, [][]string{{"One."}, {"Two", "words."}, {"tail"}}, got)
}

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, markdown.Width("hello"))
	assert.Equal(t, 4, markdown.Width("日本"))
	assert.Equal(t, 2, markdown.Width("\ta"))
}

func TestSpansMask(t *testing.T) {
	t.Parallel()

	mask := markdown.Spans{{Start: 1, End: 3}, {Start: 6, End: 20}}.Mask(8)
	assert.Len(t, mask, 8)
	assert.Equal(t, markdown.Mask{false, true, true, false, false, false, true, true}, mask)

	assert.True(t, mask.At(2))
	assert.False(t, mask.At(3))
	assert.False(t, mask.At(-1))
	assert.False(t, mask.At(8))

	assert.True(t, mask.Covers(markdown.Span{Start: 2, End: 5}))
	assert.False(t, mask.Covers(markdown.Span{Start: 3, End: 6}))

	mask.Mark(markdown.Span{Start: 4, End: 5})
	assert.True(t, mask.At(4))
}

func TestProtectedSpansManyMatches(t *testing.T) {
	t.Parallel()

	line := strings.Repeat("`a` <https://x.io> ", 2000)
	spans := markdown.ProtectedSpans(line)
	assert.Len(t, spans, 4000)
	assert.Empty(t, markdown.URLSpans(line))
}
