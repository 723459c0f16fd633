package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth bounds the width of generated comment lines.
const commentWrapWidth = 70

// StageInfo describes a stage for the generated template. The fixer
// registry supplies it so this package stays free of fixer imports.
type StageInfo struct {
	ID          string
	Name        string
	Description string
}

// TemplateOptions controls GenerateTemplate.
type TemplateOptions struct {
	// Stages are listed, each enabled, under the stages key. Nil leaves
	// the key out.
	Stages []StageInfo
}

// GenerateTemplate returns a commented .mdfix.yml that loads to the
// defaults.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# mdfix configuration
# Settings left commented out keep their default.

# Display width above which paragraphs are wrapped.
max_line_length: 100

# Language given to fenced code blocks that carry none and whose body
# holds no recognizable hint.
default_language: text

# Ordered list markers: "one" rewrites every marker to "1.",
# "ordered" renumbers each list 1, 2, 3.
ordered_list_style: one

# Guess untagged fence languages from their content.
# detect_language: false

# Re-parse fixed files and skip any whose heading or code block count
# changed.
# verify: false

# Number of parallel workers (0 = GOMAXPROCS).
# jobs: 0

# Extra glob patterns to skip.
# ignore:
#   - "vendor/**"
#   - "node_modules"

# Keep a .mdfix.bak copy of each file before its first rewrite.
# backups:
#   enabled: false
`)

	if opts.Stages != nil {
		buf.WriteString("\n# Stages run in the order below. Set one to false to skip it.\nstages:\n")
		for _, stage := range opts.Stages {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(stage.Name+": "+stage.Description, commentWrapWidth))
			fmt.Fprintf(&buf, "  %s: true\n", stage.ID)
		}
	}

	return buf.Bytes()
}

// wrapComment wraps text to width, continuing with indented comment lines.
func wrapComment(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n  # ")
}
