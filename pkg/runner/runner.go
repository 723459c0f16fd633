package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/mdfix/pkg/fixer"
)

// Runner fixes files concurrently through a Pipeline.
type Runner struct {
	Pipeline *fixer.Pipeline
}

// New creates a Runner.
func New(pipeline *fixer.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files named by opts and fixes them on a worker pool.
// Per-file failures, missing paths included, become outcomes and never stop
// the batch. Outcomes are ordered by path.
//
// Cancelling ctx stops handing out files; the partial result is returned
// together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	found, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(found.Files)+len(found.Missing))}
	result.Stats.FilesDiscovered = len(found.Files)

	outcomes := make([]FileOutcome, 0, cap(result.Files))
	for _, missing := range found.Missing {
		outcomes = append(outcomes, FileOutcome{
			Path:  missing,
			Error: fmt.Errorf("%w: %s", fixer.ErrNotFound, missing),
		})
	}
	outcomes = append(outcomes, r.process(ctx, found.Files, opts)...)

	slices.SortFunc(outcomes, func(a, b FileOutcome) int { return strings.Compare(a.Path, b.Path) })
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, files []string, opts Options) []FileOutcome {
	if len(files) == 0 {
		return nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Pipeline)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]FileOutcome, 0, len(files))
	for outcome := range outCh {
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts fixer.PipelineOptions,
) {
	for path := range workCh {
		outcome := FileOutcome{Path: path}
		pr, err := r.Pipeline.ProcessFile(ctx, path, opts)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = pr
		}
		outCh <- outcome
	}
}

// Relative returns path relative to base when it lies beneath it.
func Relative(base, path string) string {
	if base == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
