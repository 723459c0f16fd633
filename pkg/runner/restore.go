package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/fsutil"
)

// Restore copies every discovered file's sidecar backup back over it and
// returns the restored paths. Files without a backup are left alone.
func Restore(ctx context.Context, opts Options) ([]string, error) {
	found, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	var (
		restored []string
		errs     []error
	)
	for _, missing := range found.Missing {
		errs = append(errs, fmt.Errorf("%w: %s", fsutil.ErrNotFound, missing))
	}
	for _, path := range found.Files {
		ok, err := fsutil.RestoreBackup(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			restored = append(restored, path)
		}
	}
	return restored, errors.Join(errs...)
}
