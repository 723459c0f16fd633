// Package config defines the mdfix configuration types. They are plain data
// with yaml tags; discovery and merging live in internal/configloader.
package config

// OutputFormat selects how a run is reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Ordered list styles accepted by ordered_list_style.
const (
	OrderedStyleOne     = "one"
	OrderedStyleOrdered = "ordered"
)

// Defaults.
const (
	DefaultMaxLineLength = 100
	DefaultLanguage      = "text"
)

// BackupsConfig controls sidecar backups when fixing files in place.
type BackupsConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config is the root configuration.
//
// Pointer booleans distinguish "unset" from "false" so a higher precedence
// layer can switch off what a lower one switched on.
type Config struct {
	// MaxLineLength is the display width above which prose is wrapped.
	MaxLineLength int `yaml:"max_line_length,omitempty"`

	// DefaultLanguage tags fences that carry no language hint.
	DefaultLanguage string `yaml:"default_language,omitempty"`

	// OrderedListStyle is "one" (every marker "1.") or "ordered" (1, 2, 3).
	OrderedListStyle string `yaml:"ordered_list_style,omitempty"`

	// DetectLanguage enables content based language detection for fences.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Verify re-parses fixed output and skips files whose structure changed.
	Verify *bool `yaml:"verify,omitempty"`

	// Stages enables or disables stages by ID, name or alias.
	Stages map[string]bool `yaml:"stages,omitempty"`

	// Ignore holds glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Extensions are the suffixes treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty"`

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty"`

	// Jobs caps concurrent workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// CLI-only options, never read from or written to files.

	DryRun bool         `yaml:"-"`
	Check  bool         `yaml:"-"`
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		MaxLineLength:    DefaultMaxLineLength,
		DefaultLanguage:  DefaultLanguage,
		OrderedListStyle: OrderedStyleOne,
		DetectLanguage:   Bool(false),
		Verify:           Bool(false),
		Stages:           make(map[string]bool),
		FollowSymlinks:   Bool(false),
		Backups:          BackupsConfig{Enabled: Bool(false)},
		Format:           FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// IsSet reports whether b is set and true.
func IsSet(b *bool) bool {
	return b != nil && *b
}
