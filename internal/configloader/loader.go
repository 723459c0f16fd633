// Package configloader resolves the mdfix configuration: XDG-style file
// discovery, layered merging, MDFIX_* environment variables, validation
// and markdownlint import.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath is the --config file. It layers on top of the project
	// config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// IgnoreMarkdownlint skips importing a markdownlint config when no
	// project config exists.
	IgnoreMarkdownlint bool

	// CLIConfig holds flag values. It takes precedence over everything.
	CLIConfig *config.Config

	// Registry resolves stage keys. Nil means fixer.DefaultRegistry.
	Registry *fixer.Registry
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files merged, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal issues found while loading.
	Warnings []string
}

// Load resolves the final configuration. Precedence, lowest to highest:
//
//  1. Defaults
//  2. System config (/etc/mdfix/config.yaml)
//  3. User config ($XDG_CONFIG_HOME/mdfix/config.yaml)
//  4. Project config (.mdfix.yml, upward search), or an imported
//     markdownlint config when there is none
//  5. Explicit config (--config)
//  6. Environment variables (MDFIX_*)
//  7. CLI flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := opts.Registry
	if registry == nil {
		registry = fixer.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layer := func(skip bool, label, path string) error {
		if skip || path == "" {
			return nil
		}
		fileCfg, err := loadConfigFile(path, registry)
		if err != nil {
			return fmt.Errorf("load %s config: %w", label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if err := layer(opts.IgnoreSystemConfig, "system", paths.System); err != nil {
		return nil, err
	}
	if err := layer(opts.IgnoreUserConfig, "user", paths.User); err != nil {
		return nil, err
	}
	if err := layer(opts.IgnoreProjectConfig, "project", paths.Project); err != nil {
		return nil, err
	}
	if !opts.IgnoreMarkdownlint {
		cfg = importMarkdownlint(cfg, paths, registry, result)
	}
	if err := layer(false, "explicit", opts.ExplicitPath); err != nil {
		return nil, err
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)
	normalizeStageKeys(cfg, registry, result)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads and validates one YAML config file.
func loadConfigFile(path string, registry *fixer.Registry) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if validation := ValidateWithFile(cfg, registry, path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// importMarkdownlint layers a markdownlint config over cfg when the project
// has no mdfix config of its own.
func importMarkdownlint(
	cfg *config.Config,
	paths *ConfigPaths,
	registry *fixer.Registry,
	result *LoadResult,
) *config.Config {
	source := paths.Markdownlint
	if source == "" {
		return cfg
	}
	if paths.Project != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both %s and %s exist; ignoring %s", paths.Project, source, source))
		return cfg
	}
	if IsJavaScriptConfig(source) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s cannot be imported; create .mdfix.yml with 'mdfix init'", source))
		return cfg
	}

	migration, err := ConvertMarkdownlintConfig(source, registry)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("ignoring %s: %v", source, err))
		return cfg
	}

	result.Warnings = append(result.Warnings, migration.Warnings...)
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("imported settings from %s; run 'mdfix migrate' to write .mdfix.yml", source))
	result.LoadedFrom = append(result.LoadedFrom, source)
	return merge(cfg, migration.Config)
}

// normalizeStageKeys rewrites stage names and aliases to stage IDs. When two
// keys name the same stage the later one in key order wins, with a warning.
// Unknown keys are left for Validate to report.
func normalizeStageKeys(cfg *config.Config, registry *fixer.Registry, result *LoadResult) {
	if len(cfg.Stages) == 0 {
		return
	}

	normalized := make(map[string]bool, len(cfg.Stages))
	seen := make(map[string]string)

	for _, key := range sortedKeys(cfg.Stages) {
		enabled := cfg.Stages[key]
		stage, ok := registry.Resolve(key)
		if !ok {
			normalized[key] = enabled
			continue
		}

		id := stage.ID()
		if previous, dup := seen[id]; dup && cfg.Stages[previous] != enabled {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("stages %q and %q both refer to %s; using %q", previous, key, id, key))
		}
		seen[id] = key
		normalized[id] = enabled
	}

	cfg.Stages = normalized
}
