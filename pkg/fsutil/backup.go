package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to a document path to name its backup.
const BackupSuffix = ".mdfix.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// HasBackup reports whether a backup exists for path.
func HasBackup(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}

// CreateBackup copies path to its sidecar backup. An existing backup is never
// overwritten, so the first original survives repeated runs. It reports
// whether a backup was written.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	backup := BackupPath(path)
	if _, err := os.Stat(backup); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat original: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original: %w", err)
	}

	if err := WriteAtomic(ctx, backup, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over it and removes the
// backup. It reports false when there is no backup.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	backup := BackupPath(path)
	stat, err := os.Stat(backup)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat backup: %w", err)
	}
	content, err := os.ReadFile(backup)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(backup); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
