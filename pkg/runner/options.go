// Package runner fixes many files at once: it expands the paths given on the
// command line and feeds the files through a fixer.Pipeline on a worker pool.
package runner

import "github.com/yaklabco/mdfix/pkg/fixer"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore globs. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions are the lowercase suffixes treated as Markdown.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns use "/"
	// separators and may contain "**".
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the worker count. Zero or less means GOMAXPROCS.
	Jobs int

	// Pipeline is passed to every ProcessFile call.
	Pipeline fixer.PipelineOptions
}

// DefaultExtensions returns the Markdown suffixes used when none are set.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
