package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// stageFlags are the flags that tune the stages themselves.
type stageFlags struct {
	maxLineLength    int
	defaultLanguage  string
	orderedListStyle string
	detectLanguage   bool
	enable           []string
	disable          []string
}

func (f *stageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxLineLength, "max-line-length", config.DefaultMaxLineLength,
		"display width above which prose is wrapped")
	cmd.Flags().StringVar(&f.defaultLanguage, "default-language", config.DefaultLanguage,
		"language for code fences with no detectable language")
	cmd.Flags().StringVar(&f.orderedListStyle, "ordered-list-style", config.OrderedStyleOne,
		"ordered list numbering: one, ordered")
	cmd.Flags().BoolVar(&f.detectLanguage, "detect-language", false,
		"detect fence languages from their content")
	cmd.Flags().StringSliceVar(&f.enable, "enable", nil, "stage IDs, names or tags to enable")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "stage IDs, names or tags to disable")
}

// apply copies the flags the user set into cfg.
func (f *stageFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-line-length") {
		cfg.MaxLineLength = f.maxLineLength
	}
	if flags.Changed("default-language") {
		cfg.DefaultLanguage = f.defaultLanguage
	}
	if flags.Changed("ordered-list-style") {
		cfg.OrderedListStyle = f.orderedListStyle
	}
	if flags.Changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}

	if len(f.enable) == 0 && len(f.disable) == 0 {
		return
	}
	if cfg.Stages == nil {
		cfg.Stages = make(map[string]bool)
	}
	// Disable wins when a stage is named by both.
	for _, key := range expandTags(f.enable) {
		cfg.Stages[key] = true
	}
	for _, key := range expandTags(f.disable) {
		cfg.Stages[key] = false
	}
}

// expandTags replaces tag names with the IDs of the stages carrying them.
// Anything else is passed through for the registry to resolve.
func expandTags(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := fixer.DefaultRegistry.Resolve(key); ok {
			out = append(out, key)
			continue
		}
		tagged := fixer.DefaultRegistry.Tagged(key)
		if len(tagged) == 0 {
			out = append(out, key)
			continue
		}
		for _, stage := range tagged {
			out = append(out, stage.ID())
		}
	}
	return out
}

// fileFlags are the flags shared by every command that walks files.
type fileFlags struct {
	verify         bool
	backup         bool
	followSymlinks bool
	jobs           int
	ignore         []string
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.verify, "verify", false,
		"re-parse fixed output and skip files whose structure changed")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "write a .mdfix.bak backup before overwriting")
	cmd.Flags().BoolVar(&f.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
}

func (f *fileFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verify") {
		cfg.Verify = config.Bool(f.verify)
	}
	if flags.Changed("backup") {
		cfg.Backups.Enabled = config.Bool(f.backup)
	}
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(f.followSymlinks)
	}
	if flags.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if flags.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
}

// checkFlags rejects bad flag values before any configuration file is read,
// so they are reported as usage errors.
func checkFlags(cliCfg *config.Config) error {
	validation := configloader.Validate(cliCfg, fixer.DefaultRegistry)
	if validation.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUsage, &validation.Errors[0])
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for cmd with cliCfg on top. It
// returns the configuration and the working directory it was resolved from.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	loadResult, workDir, err := resolveConfig(cmd, cliCfg)
	if err != nil {
		return nil, "", err
	}

	cfg := loadResult.Config
	logging.FromContext(commandContext(cmd)).Debug("configuration loaded",
		logging.FieldMaxLineLength, cfg.MaxLineLength,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)
	return cfg, workDir, nil
}

// resolveConfig runs the loader from the working directory, honoring the
// root command's --config flag, and logs any loader warnings.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}
	return loadResult, workDir, nil
}

// runnerOptions builds the options of a multi-file run over paths.
func runnerOptions(cfg *config.Config, paths []string, workDir string) runner.Options {
	return runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: config.IsSet(cfg.FollowSymlinks),
		Jobs:           cfg.Jobs,
		Pipeline:       fixer.PipelineOptionsFromConfig(cfg),
	}
}

// newPipeline builds the engine and pipeline cfg describes.
func newPipeline(cmd *cobra.Command, cfg *config.Config) (*fixer.Pipeline, error) {
	engine, err := fixer.EngineFromConfig(fixer.DefaultRegistry, cfg)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	logging.FromContext(commandContext(cmd)).Debug("stages enabled", logging.FieldCount, len(engine.Stages()))
	return fixer.NewPipeline(engine), nil
}
