package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "board.md")

	require.NoError(t, SafeWrite(target, []byte("first"), 0o644))
	require.NoError(t, SafeWrite(target, []byte("second"), 0o600))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := Exists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubDirsAndPrune(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, EnsureDir(filepath.Join(dir, name), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.md"), nil, 0o644))

	names, err := SubDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, PruneDirs(dir, map[string]bool{"b": true}))
	names, err = SubDirs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)

	names, err = SubDirs(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
