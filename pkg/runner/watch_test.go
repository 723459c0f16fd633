package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/runner"
)

type outcomeLog struct {
	mu       sync.Mutex
	outcomes []runner.FileOutcome
}

func (l *outcomeLog) add(o runner.FileOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes = append(l.outcomes, o)
}

func (l *outcomeLog) written(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.outcomes {
		if o.Path == path && o.Result != nil && o.Result.Written {
			return true
		}
	}
	return false
}

func (l *outcomeLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.outcomes)
}

func TestRunner_Watch(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"doc.md": "# Doc\n"})
	path := filepath.Join(dir, "doc.md")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := &outcomeLog{}
	watcher := newRunner(t)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, runner.Options{WorkingDir: dir}, seen.add)
	}()

	require.Eventually(t, func() bool { return seen.len() == 1 }, 5*time.Second, 20*time.Millisecond,
		"initial pass")

	require.NoError(t, os.WriteFile(path, []byte("# Doc\ntext  "), 0o644))
	require.Eventually(t, func() bool { return seen.written(path) }, 5*time.Second, 20*time.Millisecond,
		"fix after write")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Doc\n\ntext\n", string(content))

	created := filepath.Join(dir, "new.md")
	require.NoError(t, os.WriteFile(created, []byte("_x_\n"), 0o644))
	require.Eventually(t, func() bool { return seen.written(created) }, 5*time.Second, 20*time.Millisecond,
		"fix of new file")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
