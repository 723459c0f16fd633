package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fixer"
	_ "github.com/yaklabco/mdfix/pkg/fixer/stages"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// tree writes files (relative path to content) under a fresh temp dir.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	engine, err := fixer.NewEngine(nil, fixer.DefaultOptions(), nil)
	require.NoError(t, err)
	return runner.New(fixer.NewPipeline(engine))
}

func rels(t *testing.T, base string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(base, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}
