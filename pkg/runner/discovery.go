package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// ErrBadPattern is returned for an ignore glob that does not compile.
var ErrBadPattern = errors.New("bad ignore pattern")

// Discovery is the expanded set of input paths.
type Discovery struct {
	// Files are absolute Markdown file paths, sorted and unique.
	Files []string

	// Missing are the input paths that do not exist, as given.
	Missing []string
}

// Discover expands opts.Paths. Files are kept when their extension matches
// and no ignore glob excludes them; directories are walked recursively,
// skipping hidden entries. A path that does not exist is reported in
// Missing rather than failing the whole discovery.
func Discover(ctx context.Context, opts Options) (*Discovery, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	ignore, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.extensions(),
		ignore:     ignore,
		follow:     opts.FollowSymlinks,
	}

	found := &Discovery{}
	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				found.Missing = append(found.Missing, input)
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if w.wants(abs) {
				found.Files = append(found.Files, abs)
			}
			continue
		}
		files, err := w.walk(abs)
		if err != nil {
			return nil, err
		}
		found.Files = append(found.Files, files...)
	}

	found.Files = lo.Uniq(found.Files)
	slices.Sort(found.Files)
	return found, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	ignore     *matcher
	follow     bool
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// wants reports whether a file should be fixed.
func (w *walker) wants(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !lo.ContainsBy(w.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	return !w.ignore.match(w.rel(path), false)
}

func (w *walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && w.ignore.match(w.rel(path), true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if target.IsDir() {
				if !w.follow {
					return nil
				}
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				sub, err := w.walk(resolved)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if w.wants(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// matcher holds compiled ignore globs. A pattern matches a path relative to
// the working directory or, when it has no "/", the base name alone.
type matcher struct {
	globs []glob.Glob
	bases []glob.Glob
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, raw := range patterns {
		pattern := strings.TrimPrefix(filepath.ToSlash(raw), "./")
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, raw, err)
		}
		if !strings.Contains(pattern, "/") {
			m.bases = append(m.bases, g)
			continue
		}
		m.globs = append(m.globs, g)
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			g, err := glob.Compile(rest, '/')
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, raw, err)
			}
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

// match reports whether rel is ignored. Directories also try rel with a
// trailing slash so "vendor/**" prunes vendor itself.
func (m *matcher) match(rel string, dir bool) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range m.bases {
		if g.Match(base) {
			return true
		}
	}
	for _, g := range m.globs {
		if g.Match(rel) || (dir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}
