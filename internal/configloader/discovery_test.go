package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	t.Run("preferred name wins", func(t *testing.T) {
		t.Parallel()
		root := projectDir(t)
		writeFile(t, filepath.Join(root, "mdfix.yaml"), "")
		want := writeFile(t, filepath.Join(root, ".mdfix.yml"), "")

		got, err := FindProjectConfig(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("nearest directory wins", func(t *testing.T) {
		t.Parallel()
		root := projectDir(t)
		writeFile(t, filepath.Join(root, ".mdfix.yml"), "")
		want := writeFile(t, filepath.Join(root, "docs", ".mdfix.yaml"), "")

		got, err := FindProjectConfig(context.Background(), filepath.Join(root, "docs"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("directories are not config files", func(t *testing.T) {
		t.Parallel()
		root := projectDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(root, ".mdfix.yml"), 0o755))

		got, err := FindProjectConfig(context.Background(), root)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFindMarkdownlintConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, FindMarkdownlintConfig(dir))

	writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "")
	want := writeFile(t, filepath.Join(dir, ".markdownlint.json"), "{}")
	assert.Equal(t, want, FindMarkdownlintConfig(dir))
}

func TestConfigKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJavaScriptConfig(".markdownlint.cjs"))
	assert.True(t, IsJavaScriptConfig(".markdownlint.mjs"))
	assert.False(t, IsJavaScriptConfig(".markdownlint.json"))
	assert.True(t, IsJSONConfig(".markdownlint.jsonc"))
	assert.False(t, IsJSONConfig(".markdownlint.yml"))
}
