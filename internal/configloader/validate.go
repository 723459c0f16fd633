package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
)

// ValidationError is one invalid configuration value.
type ValidationError struct {
	// Field is the offending key, e.g. "stages.MD999".
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file holding the value, when known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects every finding.
type ValidationResult struct {
	// Errors prevent the configuration from loading.
	Errors []ValidationError

	// Warnings are reported but do not stop the run.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatDiff: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownOrderedStyles = map[string]bool{
	config.OrderedStyleOne:     true,
	config.OrderedStyleOrdered: true,
}

// minLineLength keeps wrapping from producing one word per line.
const minLineLength = 20

// Validate checks cfg against registry. A nil registry means the default.
func Validate(cfg *config.Config, registry *fixer.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = fixer.DefaultRegistry
	}

	if cfg.MaxLineLength != 0 && cfg.MaxLineLength < minLineLength {
		result.fail("max_line_length", cfg.MaxLineLength, "must be at least %d", minLineLength)
	}

	if strings.ContainsAny(cfg.DefaultLanguage, " \t`") {
		result.fail("default_language", cfg.DefaultLanguage,
			"invalid language %q; must be a single word without backticks", cfg.DefaultLanguage)
	}

	if cfg.OrderedListStyle != "" && !knownOrderedStyles[cfg.OrderedListStyle] {
		result.fail("ordered_list_style", cfg.OrderedListStyle,
			"invalid style %q; must be one of: one, ordered", cfg.OrderedListStyle)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for key := range cfg.Stages {
		if _, ok := registry.Resolve(key); !ok {
			result.fail("stages."+key, key, "unknown stage %q", key)
		}
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if cfg.DryRun && config.IsSet(cfg.Backups.Enabled) {
		result.warn("backups.enabled", true, "backups are not written in dry-run mode")
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, registry *fixer.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
