// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldReason     = "reason"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run configuration.
	FieldDryRun        = "dry_run"
	FieldCheck         = "check"
	FieldJobs          = "jobs"
	FieldMaxLineLength = "max_line_length"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldFixes           = "fixes"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Counts.
	FieldCount = "count"
)
