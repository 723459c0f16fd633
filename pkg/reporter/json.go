package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary runner.Stats     `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path          string         `json:"path"`
	Status        string         `json:"status"`
	Fixes         int            `json:"fixes"`
	Stages        map[string]int `json:"stages,omitempty"`
	Modified      bool           `json:"modified"`
	Written       bool           `json:"written"`
	BackupCreated bool           `json:"backupCreated,omitempty"`
	SkipReason    string         `json:"skipReason,omitempty"`
	Error         string         `json:"error,omitempty"`
	Diff          string         `json:"diff,omitempty"`
}

// File statuses in JSON output.
const (
	statusFixed     = "fixed"
	statusPending   = "pending"
	statusSkipped   = "skipped"
	statusError     = "error"
	statusUnchanged = "unchanged"
)

// JSONReporter formats results as JSON.
type JSONReporter struct {
	sink
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{sink: newSink(opts)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesModified, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Summary = result.Stats
	for _, file := range result.Files {
		output.Files = append(output.Files, r.fileResult(file))
	}
	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	out := JSONFileResult{Path: r.displayPath(file.Path), Status: statusUnchanged}

	if file.Error != nil {
		out.Status = statusError
		out.Error = file.Error.Error()
		return out
	}

	pr := file.Result
	if pr == nil {
		return out
	}

	out.Fixes = pr.Fix.FixCount
	out.Stages = pr.Fix.StageCounts
	out.Modified = pr.Modified
	out.Written = pr.Written
	out.BackupCreated = pr.BackupCreated
	if pr.Diff != nil {
		d := *pr.Diff
		d.Path = out.Path
		out.Diff = d.String()
	}

	switch {
	case pr.Skipped:
		out.Status = statusSkipped
		out.SkipReason = pr.SkipReason
	case pr.Written:
		out.Status = statusFixed
	case pr.Modified:
		out.Status = statusPending
	}
	return out
}
