package fixer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/yaklabco/mdfix/pkg/fsutil"
)

// Per-file error classes. Every error returned by the Pipeline wraps one of
// these so callers can sort failures with errors.Is.
var (
	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDecode indicates the content is not UTF-8 text.
	ErrDecode = errors.New("cannot decode as text")

	// ErrWrite indicates the fixed content could not be persisted.
	ErrWrite = errors.New("write failed")

	// ErrPermissionDenied indicates the file could not be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownStage indicates a stage selector matched no registered stage.
	ErrUnknownStage = errors.New("unknown stage")
)

// Decode checks that content is UTF-8 text and returns it as a string.
// NUL bytes mark binary content.
func Decode(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrDecode)
	}
	if i := bytes.IndexByte(content, 0); i >= 0 {
		return "", fmt.Errorf("%w: NUL byte at offset %d", ErrDecode, i)
	}
	return string(content), nil
}

// categorizeError wraps a read error with the matching class.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsFileError reports whether err belongs to one of the per-file classes.
func IsFileError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrWrite) ||
		errors.Is(err, ErrPermissionDenied)
}
