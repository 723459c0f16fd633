package stages_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fixer/stages"
)

func TestLineLength(t *testing.T) {
	t.Parallel()

	opts := func(limit int) fixer.Options {
		o := fixer.DefaultOptions()
		o.MaxLineLength = limit
		return o
	}
	newStage := func() fixer.Stage { return stages.NewLineLength() }
	long := strings.Repeat("x", 30)

	runStageCases(t, newStage, opts(20), []stageCase{
		{"short line", "short line", "short line", 0},
		{"words", "aaa bbb ccc ddd eee fff ggg", "aaa bbb ccc ddd eee\nfff ggg", 1},
		{
			"sentences",
			"One two. Three four five. Six.",
			"One two.\nThree four five.\nSix.",
			1,
		},
		{
			"long sentence falls back to words",
			"Tiny. aaaa bbbb cccc dddd eeee ffff.",
			"Tiny.\naaaa bbbb cccc dddd\neeee ffff.",
			1,
		},
		{"over-long word alone", "short " + long + " tail", "short\n" + long + "\ntail", 1},
		{"single word", long, long, 0},
		{"no line starts a list", "aaaa bbbb cccc dddd - eeee", "aaaa bbbb cccc\ndddd - eeee", 1},
		{"no line starts a heading", "aaaaaaaaaaaaaaaaaaa # bbbb", "aaaaaaaaaaaaaaaaaaa #\nbbbb", 1},
		{"code span kept whole", "use `a b c d e f g h` now", "use\n`a b c d e f g h`\nnow", 1},
		{"heading", "# " + long + " more words", "# " + long + " more words", 0},
		{"list item", "- " + long + " more words", "- " + long + " more words", 0},
		{"url line", "https://example.com/" + long, "https://example.com/" + long, 0},
		{"autolink line", "<https://example.com/" + long + ">", "<https://example.com/" + long + ">", 0},
		{"html line", "<div class=\"note\">aaa bbb ccc ddd eee</div>", "<div class=\"note\">aaa bbb ccc ddd eee</div>", 0},
		{"table row", "| " + long + " | x |", "| " + long + " | x |", 0},
		{"indented code", "    aaa bbb ccc ddd eee fff ggg", "    aaa bbb ccc ddd eee fff ggg", 0},
		{"fence body", "```\naaa bbb ccc ddd eee fff ggg\n```", "```\naaa bbb ccc ddd eee fff ggg\n```", 0},
	})

	runStageCases(t, newStage, opts(14), []stageCase{
		{"indent kept", "  aaa bbb ccc ddd eee fff", "  aaa bbb ccc\n  ddd eee fff", 1},
	})

	runStageCases(t, newStage, opts(12), []stageCase{
		{"blockquote prefix repeated", "> aaa bbb ccc ddd eee", "> aaa bbb\n> ccc ddd\n> eee", 1},
	})
}
