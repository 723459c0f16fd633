// Package langdetect guesses the language tag of an untagged fenced code block.
//
// Hint implements the keyword heuristic applied to every untagged fence.
// Detect is the heavier go-enry based fallback, used only when content
// detection is switched on.
package langdetect

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"gopkg.in/yaml.v3"
)

// hint maps substring keywords to a fence tag.
type hint struct {
	keywords []string
	language string
}

// hints are checked in priority order; the first group with a matching
// keyword wins.
//
//nolint:gochecknoglobals // read-only table
var hints = []hint{
	{[]string{"bash", "sh", "shell"}, "bash"},
	{[]string{"javascript", "js", "typescript", "ts"}, "javascript"},
	{[]string{"python", "py"}, "python"},
	{[]string{"json"}, "json"},
	{[]string{"yaml", "yml"}, "yaml"},
	{[]string{"html", "xml"}, "html"},
	{[]string{"css"}, "css"},
	{[]string{"sql"}, "sql"},
}

// Hint scans lines in order and returns the tag of the first line holding a
// keyword, compared case-insensitively as a plain substring.
func Hint(lines []string) (string, bool) {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, h := range hints {
			for _, kw := range h.keywords {
				if strings.Contains(lower, kw) {
					return h.language, true
				}
			}
		}
	}
	return "", false
}

// Detect identifies the language of content. go-enry reads the shebang and
// any vim or emacs modeline; failing those, a few content signatures are
// tried. fallback is returned when nothing matches.
func Detect(content []byte, fallback string) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return fallback
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return tag(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return tag(lang)
	}
	if lang := bySignature(trimmed); lang != "" {
		return lang
	}
	return fallback
}

// signature is a cheap content test for one language.
type signature struct {
	language string
	match    func(trimmed []byte) bool
}

//nolint:gochecknoglobals // read-only table
var signatures = []signature{
	{"go", func(b []byte) bool { return bytes.HasPrefix(b, []byte("package ")) }},
	{"json", func(b []byte) bool { return (b[0] == '{' || b[0] == '[') && json.Valid(b) }},
	{"html", func(b []byte) bool {
		lower := bytes.ToLower(b)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"sql", func(b []byte) bool {
		upper := strings.ToUpper(string(b))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"dockerfile", func(b []byte) bool { return bytes.HasPrefix(b, []byte("FROM ")) }},
	{"rust", func(b []byte) bool {
		return bytes.Contains(b, []byte("fn main()")) || bytes.Contains(b, []byte("let mut "))
	}},
	{"yaml", func(b []byte) bool {
		var doc map[string]any
		return yaml.Unmarshal(b, &doc) == nil && len(doc) >= 2
	}},
}

func bySignature(trimmed []byte) string {
	for _, sig := range signatures {
		if sig.match(trimmed) {
			return sig.language
		}
	}
	return ""
}

// tag converts a go-enry language name to a fence tag.
func tag(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	}
	return strings.ToLower(lang)
}
