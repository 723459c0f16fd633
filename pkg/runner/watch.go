package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"github.com/yaklabco/mdfix/pkg/fixer"
)

// settle is how long Watch waits after the last event on a file before
// fixing it, so an editor's burst of writes is handled once.
const settle = 150 * time.Millisecond

// Watch fixes the files named by opts once, then keeps fixing them each time
// they are written until ctx is done. Every outcome is handed to report,
// which is called from a single goroutine.
//
// The directories holding the discovered files and the directories named in
// opts.Paths are watched, so new Markdown files created there are picked up.
// Watching is not recursive beyond that.
func (r *Runner) Watch(ctx context.Context, opts Options, report func(FileOutcome)) error {
	found, err := Discover(ctx, opts)
	if err != nil {
		return err
	}
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return err
	}
	ignore, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return err
	}
	w := &walker{ctx: ctx, workDir: workDir, extensions: opts.extensions(), ignore: ignore}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(workDir, opts.paths(), found.Files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	for _, missing := range found.Missing {
		report(FileOutcome{Path: missing, Error: fmt.Errorf("%w: %s", fixer.ErrNotFound, missing)})
	}
	for _, outcome := range r.process(ctx, found.Files, opts) {
		report(outcome)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Base(event.Name)[0] == '.' || !w.wants(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)

		case <-timer.C:
			paths := lo.Keys(pending)
			slices.Sort(paths)
			clear(pending)
			for _, path := range paths {
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					continue
				}
				report(r.fixOne(ctx, path, opts))
			}
		}
	}
}

func (r *Runner) fixOne(ctx context.Context, path string, opts Options) FileOutcome {
	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Pipeline)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return FileOutcome{Path: path, Result: pr}
}

func watchDirs(workDir string, inputs, files []string) []string {
	dirs := make([]string, 0, len(files)+len(inputs))
	for _, input := range inputs {
		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs = append(dirs, filepath.Clean(abs))
		}
	}
	for _, file := range files {
		dirs = append(dirs, filepath.Dir(file))
	}
	dirs = lo.Uniq(dirs)
	slices.Sort(dirs)
	return dirs
}
