package runner

import "github.com/yaklabco/mdfix/pkg/fixer"

// FileOutcome is what happened to one path. Exactly one of Result and Error
// is set.
type FileOutcome struct {
	Path   string
	Result *fixer.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`

	// FilesModified counts files whose content changed, written or not.
	FilesModified int `json:"filesModified"`

	FilesWritten int `json:"filesWritten"`
	FilesSkipped int `json:"filesSkipped"`
	FilesErrored int `json:"filesErrored"`
	FixesApplied int `json:"fixesApplied"`
}

// Result is the outcome of a run, ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file was or would be modified.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesModified > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	switch {
	case pr.Skipped:
		r.Stats.FilesSkipped++
	case pr.Modified:
		r.Stats.FilesModified++
		r.Stats.FixesApplied += pr.Fix.FixCount
	}
	if pr.Written {
		r.Stats.FilesWritten++
	}
}
