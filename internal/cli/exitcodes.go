package cli

import (
	"errors"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// Exit codes for mdfix.
const (
	// ExitSuccess indicates every file was handled.
	ExitSuccess = 0

	// ExitFailure indicates a file failed, a --check run found changes, or
	// the configuration could not be loaded.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64
)

var (
	// ErrUsage marks command-line mistakes such as missing paths or bad
	// flag values.
	ErrUsage = errors.New("invalid usage")

	// ErrChangesFound is returned by --check when a file would change.
	ErrChangesFound = errors.New("files would be changed")

	// ErrFilesFailed is returned when at least one file could not be fixed.
	ErrFilesFailed = errors.New("some files could not be fixed")
)

// ExitCodeFromResult determines the exit code of a run. With check set, a
// run that would modify any file fails too.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitFailure
	}
	if check && result.HasChanges() {
		return ExitFailure
	}
	return ExitSuccess
}

// resultError is the error a command returns for result, nil on success.
func resultError(result *runner.Result, check bool) error {
	if ExitCodeFromResult(result, check) == ExitSuccess {
		return nil
	}
	if result.HasErrors() {
		return ErrFilesFailed
	}
	return ErrChangesFound
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitFailure
	}
}

// Reported reports whether err only signals an outcome that was already
// printed, so it needs no log line of its own.
func Reported(err error) bool {
	return errors.Is(err, ErrChangesFound) || errors.Is(err, ErrFilesFailed)
}
