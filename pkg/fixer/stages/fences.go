package stages

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/langdetect"
	"github.com/yaklabco/mdfix/pkg/markdown"
)

// hintLookahead is the number of body lines scanned for a language hint.
const hintLookahead = 4

// FenceLanguage tags untagged fence openers. Closers are never touched.
type FenceLanguage struct {
	fixer.BaseStage
}

// NewFenceLanguage creates the MD040 stage.
func NewFenceLanguage() *FenceLanguage {
	return &FenceLanguage{
		BaseStage: fixer.NewBaseStage("MD040", "fenced-code-language",
			"Tag untagged fenced code blocks with a language", orderFenceLanguage, "code", "language"),
	}
}

// Apply implements fixer.Stage.
func (s *FenceLanguage) Apply(doc *fixer.Document, _ *fixer.RunContext) int {
	layout := markdown.Scan(doc.Lines)
	fixes := 0
	for _, r := range layout.Fences {
		opener := doc.Lines[r.Open]
		if markdown.Classify(opener).HasLanguage {
			continue
		}
		body := fenceBody(doc.Lines, r)
		doc.Lines[r.Open] = strings.TrimRight(opener, " \t") + pickLanguage(body, doc.Options)
		fixes++
	}
	return fixes
}

func fenceBody(lines []string, r markdown.Region) []string {
	end := r.Close
	if end < 0 {
		end = len(lines)
	}
	return lines[r.Open+1 : end]
}

func pickLanguage(body []string, opts fixer.Options) string {
	window := body
	if len(window) > hintLookahead {
		window = window[:hintLookahead]
	}
	if lang, ok := langdetect.Hint(window); ok {
		return lang
	}
	if opts.DetectLanguage {
		return langdetect.Detect([]byte(strings.Join(body, "\n")), opts.DefaultLanguage)
	}
	return opts.DefaultLanguage
}
