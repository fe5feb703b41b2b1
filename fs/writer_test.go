package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lpforge/lpextract/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := fs.NewWriter(dir)

	path, err := w.Write("https://example.com/widget", "Preprocessed widget text.")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "preprocessed_"))
	assert.True(t, strings.HasSuffix(path, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source: https://example.com/widget")
	assert.Contains(t, string(data), "Preprocessed widget text.")
}

func TestWriter_Write_SameURLOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := fs.NewWriter(dir)

	first, err := w.Write("https://example.com/widget", "first run")
	require.NoError(t, err)
	second, err := w.Write("https://example.com/widget", "second run")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second run")
	assert.NotContains(t, string(data), "first run")
}

func TestWriter_Write_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	w := fs.NewWriter(dir)

	_, err := w.Write("https://example.com/widget", "text")
	require.NoError(t, err)
}

func TestFileName_DistinctPerURL(t *testing.T) {
	t.Parallel()

	a := fs.FileName("https://example.com/a")
	b := fs.FileName("https://example.com/b")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, fs.FileName("https://example.com/a"))
}
