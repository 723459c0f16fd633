package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/mdfix/pkg/config"
)

// merge layers override on top of base and returns a new Config.
//
//   - Scalars: a non-zero override wins.
//   - Pointer booleans: a non-nil override wins, so false can switch off
//     what a lower layer switched on.
//   - Stages: merged key by key.
//   - Slices: a non-nil override replaces base.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.MaxLineLength != 0 {
		result.MaxLineLength = override.MaxLineLength
	}
	if override.DefaultLanguage != "" {
		result.DefaultLanguage = override.DefaultLanguage
	}
	if override.OrderedListStyle != "" {
		result.OrderedListStyle = override.OrderedListStyle
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	mergeBool(&result.DetectLanguage, override.DetectLanguage)
	mergeBool(&result.Verify, override.Verify)
	mergeBool(&result.FollowSymlinks, override.FollowSymlinks)
	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)

	if override.DryRun {
		result.DryRun = true
	}
	if override.Check {
		result.Check = true
	}

	if len(override.Stages) > 0 {
		if result.Stages == nil {
			result.Stages = make(map[string]bool, len(override.Stages))
		}
		maps.Copy(result.Stages, override.Stages)
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		*dst = config.Bool(*override)
	}
}

// MergeAll merges configs in order; later ones take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
