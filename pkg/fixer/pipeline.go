package fixer

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/diff"
	"github.com/yaklabco/mdfix/pkg/fsutil"
	"github.com/yaklabco/mdfix/pkg/verify"
)

// PipelineOptions control what the Pipeline does with a fixed document.
type PipelineOptions struct {
	// DryRun computes a diff instead of writing.
	DryRun bool

	// Backup writes a sidecar backup before the first overwrite.
	Backup bool

	// StrictRaceDetection re-hashes the file before writing instead of only
	// comparing mod time and size.
	StrictRaceDetection bool

	// Verify re-parses the output and refuses results whose heading or
	// fenced block count differs from the input.
	Verify bool

	// Diff computes the unified diff of changed files even when writing.
	Diff bool
}

// DefaultPipelineOptions returns the options the CLI starts from.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{StrictRaceDetection: true}
}

// PipelineResult describes what happened to one file.
type PipelineResult struct {
	Path string

	// Snapshot is the file state at read time. Nil for in-memory content.
	Snapshot *fsutil.Snapshot

	// Fix is the engine output.
	Fix FixResult

	// Modified is true when fixing changed the content.
	Modified bool

	// Diff is set when the content changed and either DryRun or Diff was
	// requested.
	Diff *diff.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	default:
		return "ok"
	}
}

// Pipeline wraps an Engine with the steps needed to rewrite files safely.
type Pipeline struct {
	Engine   *Engine
	verifier *verify.Verifier
}

// NewPipeline returns a Pipeline over engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine, verifier: verify.New()}
}

// ProcessFile fixes the file at path.
//
// Steps:
//  1. Read and hash the file.
//  2. Reject content that is not UTF-8 text.
//  3. Run the engine.
//  4. Optionally verify the structure of the output.
//  5. In dry-run mode, diff and stop.
//  6. Skip the file if it changed since step 1.
//  7. Optionally back it up.
//  8. Write atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap
	if !result.Modified || result.Skipped || opts.DryRun {
		return result, nil
	}

	changed, err := fsutil.Changed(ctx, snap, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(result.Fix.Text), snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent fixes an in-memory document, such as stdin. It never
// touches the file system; path only labels the result and its diff.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, content, opts)
}

func (p *Pipeline) process(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	text, err := Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fixed, err := p.Engine.Fix(ctx, text)
	if err != nil {
		return nil, err
	}
	result.Fix = fixed
	result.Modified = fixed.Changed
	if !fixed.Changed {
		return result, nil
	}

	if opts.Verify {
		err := p.verifier.Compare(ctx, content, []byte(fixed.Text))
		if errors.Is(err, verify.ErrStructureChanged) {
			result.Skipped = true
			result.SkipReason = err.Error()
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
	}

	if opts.DryRun || opts.Diff {
		result.Diff = diff.Compute(path, text, fixed.Text)
	}
	return result, nil
}
