package fixer

import (
	"github.com/yaklabco/mdfix/pkg/config"
)

// OptionsFromConfig converts the stage settings of cfg. Zero values fall back
// to the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		MaxLineLength:    cfg.MaxLineLength,
		DefaultLanguage:  cfg.DefaultLanguage,
		OrderedListStyle: OrderedListStyle(cfg.OrderedListStyle),
		DetectLanguage:   config.IsSet(cfg.DetectLanguage),
	}.withDefaults()
}

// PipelineOptionsFromConfig converts the file handling settings of cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.DryRun = cfg.DryRun || cfg.Check
	opts.Backup = config.IsSet(cfg.Backups.Enabled)
	opts.Verify = config.IsSet(cfg.Verify)
	opts.Diff = cfg.Format == config.FormatDiff
	return opts
}

// EngineFromConfig builds an engine over registry with the stage selection
// and options held by cfg.
func EngineFromConfig(registry *Registry, cfg *config.Config) (*Engine, error) {
	var selection map[string]bool
	if cfg != nil {
		selection = cfg.Stages
	}
	return NewEngine(registry, OptionsFromConfig(cfg), selection)
}

// StageInfos describes the stages of registry in pipeline order.
func StageInfos(registry *Registry) []config.StageInfo {
	if registry == nil {
		registry = DefaultRegistry
	}
	stages := registry.Stages()
	infos := make([]config.StageInfo, len(stages))
	for i, stage := range stages {
		infos[i] = config.StageInfo{
			ID:          stage.ID(),
			Name:        stage.Name(),
			Description: stage.Description(),
		}
	}
	return infos
}
