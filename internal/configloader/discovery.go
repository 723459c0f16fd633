package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for a working directory.
// Missing files are empty strings.
type ConfigPaths struct {
	// System is e.g. /etc/mdfix/config.yaml.
	System string

	// User is e.g. ~/.config/mdfix/config.yaml.
	User string

	// Project is the nearest .mdfix.yml above the working directory.
	Project string

	// Explicit is the --config path.
	Explicit string

	// Markdownlint is a markdownlint config in the working directory.
	Markdownlint string
}

//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".mdfix.yml",
	".mdfix.yaml",
	"mdfix.yml",
	"mdfix.yaml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintConfigFiles = []string{
	".markdownlint.json",
	".markdownlint.jsonc",
	".markdownlint.yaml",
	".markdownlint.yml",
	".markdownlint.cjs",
	".markdownlint.mjs",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files and
// any markdownlint config sitting in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:       findConfigInDir(systemConfigDir()),
		User:         findConfigInDir(userConfigDir()),
		Project:      project,
		Markdownlint: FindMarkdownlintConfig(workDir),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "mdfix")
	}
	return "/etc/mdfix"
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mdfix")
}

func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	return firstFile(dir, []string{"config.yaml", "config.yml"})
}

// FindProjectConfig searches upward from startDir for a project config file.
// The search stops at a VCS root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindMarkdownlintConfig returns the markdownlint config in dir, if any.
func FindMarkdownlintConfig(dir string) string {
	return firstFile(dir, markdownlintConfigFiles)
}

func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsJavaScriptConfig reports whether path is a .cjs or .mjs config, which
// cannot be imported.
func IsJavaScriptConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".cjs" || ext == ".mjs"
}

// IsJSONConfig reports whether path is a .json or .jsonc config.
func IsJSONConfig(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".json" || ext == ".jsonc"
}
