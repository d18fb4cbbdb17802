package filepaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOutputDirCreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, EnsureOutputDir(path, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDirExistingEmpty(t *testing.T) {
	assert.NoError(t, EnsureOutputDir(t.TempDir(), false))
}

func TestEnsureOutputDirNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset")
	require.NoError(t, os.WriteFile(path, []byte("file"), 0644))

	err := EnsureOutputDir(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestEnsureOutputDirNotEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leftover.csv"), []byte("x"), 0644))

	err := EnsureOutputDir(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not empty")

	// force allows writing into a non-empty directory
	assert.NoError(t, EnsureOutputDir(dir, true))
}
