package verify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/verify"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   verify.Shape
	}{
		{name: "empty", source: "", want: verify.Shape{}},
		{
			name:   "atx headings and a fence",
			source: "# A\n\n```go\nx := 1\n```\n\n## B\n",
			want:   verify.Shape{Headings: 2, FencedBlocks: 1},
		},
		{name: "setext heading", source: "Title\n=====\n", want: verify.Shape{Headings: 1}},
		{name: "heading inside fence", source: "```\n# not a heading\n```\n", want: verify.Shape{FencedBlocks: 1}},
		{name: "indented code is not fenced", source: "para\n\n    code\n", want: verify.Shape{}},
		{name: "tilde fence", source: "~~~\nx\n~~~\n", want: verify.Shape{FencedBlocks: 1}},
	}

	v := verify.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := v.Measure(context.Background(), []byte(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	v := verify.New()

	t.Run("spacing changes keep structure", func(t *testing.T) {
		t.Parallel()
		err := v.Compare(context.Background(),
			[]byte("# Title\nSome text\n```\ncode\n```\n"),
			[]byte("# Title\n\nSome text\n\n```text\ncode\n```\n"))
		require.NoError(t, err)
	})

	t.Run("lost heading", func(t *testing.T) {
		t.Parallel()
		err := v.Compare(context.Background(), []byte("# Title\n"), []byte("Title\n"))
		require.ErrorIs(t, err, verify.ErrStructureChanged)
		assert.Contains(t, err.Error(), "had 1 headings, 0 fenced blocks")
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := v.Compare(ctx, []byte("a"), []byte("a"))
		require.ErrorIs(t, err, context.Canceled)
	})
}
