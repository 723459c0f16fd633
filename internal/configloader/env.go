package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/mdfix/pkg/config"
)

// envVarPrefix prefixes every mdfix environment variable.
const envVarPrefix = "MDFIX_"

// envMapping binds one variable to a config field.
type envMapping struct {
	help string
	set  func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MAX_LINE_LENGTH": {
		help: "Wrap width for prose lines",
		set:  intSetter(func(c *config.Config, v int) { c.MaxLineLength = v }),
	},
	"DEFAULT_LANGUAGE": {
		help: "Language for untagged fences with no hint",
		set:  stringSetter(func(c *config.Config, v string) { c.DefaultLanguage = v }),
	},
	"ORDERED_LIST_STYLE": {
		help: "Ordered list markers: one or ordered",
		set:  stringSetter(func(c *config.Config, v string) { c.OrderedListStyle = v }),
	},
	"DETECT_LANGUAGE": {
		help: "Guess untagged fence languages from content: true or false",
		set:  boolSetter(func(c *config.Config, v *bool) { c.DetectLanguage = v }),
	},
	"VERIFY": {
		help: "Skip files whose structure changed: true or false",
		set:  boolSetter(func(c *config.Config, v *bool) { c.Verify = v }),
	},
	"FOLLOW_SYMLINKS": {
		help: "Walk into symlinked directories: true or false",
		set:  boolSetter(func(c *config.Config, v *bool) { c.FollowSymlinks = v }),
	},
	"BACKUPS": {
		help: "Write .mdfix.bak files before fixing: true or false",
		set:  boolSetter(func(c *config.Config, v *bool) { c.Backups.Enabled = v }),
	},
	"JOBS": {
		help: "Number of parallel workers (0 = auto)",
		set:  intSetter(func(c *config.Config, v int) { c.Jobs = v }),
	},
	"FORMAT": {
		help: "Output format: text, json or diff",
		set:  stringSetter(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	},
	"IGNORE": {
		help: "Comma-separated ignore globs",
		set:  sliceSetter(func(c *config.Config, v []string) { c.Ignore = v }),
	},
	"EXTENSIONS": {
		help: "Comma-separated Markdown file extensions",
		set:  sliceSetter(func(c *config.Config, v []string) { c.Extensions = v }),
	},
	"DISABLE": {
		help: "Comma-separated stages to disable",
		set: sliceSetter(func(c *config.Config, v []string) {
			if c.Stages == nil {
				c.Stages = make(map[string]bool, len(v))
			}
			for _, key := range v {
				c.Stages[key] = false
			}
		}),
	},
}

// LoadFromEnv applies MDFIX_* variables to cfg. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedKeys(envMappings) {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

// SortedEnvVarNames returns the names from ListEnvVars in sorted order.
func SortedEnvVarNames() []string {
	return lo.Map(sortedKeys(envMappings), func(suffix string, _ int) string {
		return envVarPrefix + suffix
	})
}

func stringSetter(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, strings.TrimSpace(value))
		return nil
	}
}

func boolSetter(set func(*config.Config, *bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, config.Bool(b))
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func sliceSetter(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
