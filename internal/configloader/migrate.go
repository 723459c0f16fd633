package configloader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fsutil"
)

// MigrationResult is a markdownlint config translated to mdfix settings.
type MigrationResult struct {
	// Config holds only the imported settings; everything else is unset.
	Config *config.Config

	// Warnings lists settings that could not be carried over.
	Warnings []string

	// Skipped lists markdownlint rules that have no mdfix stage.
	Skipped []string

	// SourcePath is the markdownlint file.
	SourcePath string
}

// markdownlintRule matches rule IDs and names that mdfix does not implement,
// e.g. "MD033" or "no-inline-html".
var markdownlintRule = regexp.MustCompile(`^(?i:md\d{3})$|^[a-z0-9]+(-[a-z0-9]+)+$`)

// ConvertMarkdownlintConfig reads a markdownlint JSON, JSONC or YAML file
// and maps what it can onto mdfix settings:
//
//   - "default: false" disables every stage before the rest applies.
//   - Tags switch every stage carrying them.
//   - Rules known by ID, name or alias switch that stage; rules win over tags.
//   - MD013 line_length sets max_line_length and MD029 style sets
//     ordered_list_style.
func ConvertMarkdownlintConfig(path string, registry *fixer.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; run 'mdfix init' instead", path)
	}
	if registry == nil {
		registry = fixer.DefaultRegistry
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsJSONConfig(path) {
		err = parseJSONC(content, &raw)
	} else {
		err = yaml.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	result := &MigrationResult{
		Config:     &config.Config{Stages: make(map[string]bool)},
		SourcePath: path,
	}

	if enabled, ok := raw["default"].(bool); ok && !enabled {
		for _, id := range registry.IDs() {
			result.Config.Stages[id] = false
		}
	}
	if extends, ok := raw["extends"].(string); ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %q' is not followed; merge that file by hand if needed", extends))
	}
	delete(raw, "default")
	delete(raw, "extends")
	delete(raw, "$schema")

	var rules []string
	for _, key := range sortedKeys(raw) {
		if _, ok := registry.Resolve(key); ok {
			rules = append(rules, key)
			continue
		}
		if tagged := registry.Tagged(key); len(tagged) > 0 {
			enabled := enabledValue(raw[key])
			for _, stage := range tagged {
				result.Config.Stages[stage.ID()] = enabled
			}
			continue
		}
		if markdownlintRule.MatchString(key) {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
	}

	for _, key := range rules {
		stage, _ := registry.Resolve(key)
		result.Config.Stages[stage.ID()] = enabledValue(raw[key])
		if options, ok := raw[key].(map[string]any); ok {
			applyRuleOptions(result, stage.ID(), options)
		}
	}

	return result, nil
}

// enabledValue reads a markdownlint rule or tag value: false and null
// disable, anything else enables.
func enabledValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

func applyRuleOptions(result *MigrationResult, id string, options map[string]any) {
	switch id {
	case "MD013":
		if length, ok := toInt(options["line_length"]); ok {
			result.Config.MaxLineLength = length
		}
	case "MD029":
		style, _ := options["style"].(string)
		switch style {
		case "", "one_or_ordered":
		case config.OrderedStyleOne, config.OrderedStyleOrdered:
			result.Config.OrderedListStyle = style
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("MD029 style %q is not supported; using %q", style, config.OrderedStyleOne))
		}
	case "MD049":
		if style, _ := options["style"].(string); style == "underscore" {
			result.Warnings = append(result.Warnings, "MD049 style \"underscore\" is not supported; mdfix uses asterisks")
		}
	}
}

// toInt accepts the number types produced by both the JSON and YAML decoders.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// parseJSONC parses JSON that may contain // and /* */ comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}
	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return nil
}

// stripJSONComments blanks out comments outside string literals.
func stripJSONComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	var inString, lineComment, blockComment bool

	for i := 0; i < len(content); i++ {
		c := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch {
		case lineComment:
			if c == '\n' {
				lineComment = false
				out = append(out, c)
			}
		case blockComment:
			if c == '*' && next == '/' {
				blockComment = false
				i++
			}
		case inString:
			out = append(out, c)
			if c == '\\' && next != 0 {
				out = append(out, next)
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && next == '/':
			lineComment = true
			i++
		case c == '/' && next == '*':
			blockComment = true
			i++
		default:
			out = append(out, c)
		}
	}
	return out
}

// MigrationHeader is the comment block written above a migrated config.
func MigrationHeader(sourcePath string) string {
	return fmt.Sprintf("# mdfix configuration\n# Migrated from %s\n\n", filepath.Base(sourcePath))
}

// WriteConfig writes cfg as YAML to path with header above it. An existing
// file is only replaced when force is set.
func WriteConfig(ctx context.Context, cfg *config.Config, path, header string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	body, err := cfg.ToYAML()
	if err != nil {
		return err
	}

	var buf strings.Builder
	buf.WriteString(header)
	buf.Write(body)

	if err := fsutil.WriteAtomic(ctx, path, []byte(buf.String()), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
