package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "history.json")

		require.NoError(t, writeFileAtomic(filename, []byte(`{"a.txt":"x"}`), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `{"a.txt":"x"}`, string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0644))

		require.NoError(t, writeFileAtomic(filename, []byte("overwritten"), 0644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "h.json"), []byte("{}"), 0644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "h.json")
		assert.Error(t, writeFileAtomic(filename, []byte("fail"), 0644))
	})
}

func TestOS(t *testing.T) {
	osfs := NewOS()
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	file := filepath.Join(dir, "h.json")

	_, err := osfs.ReadFile(file)
	assert.True(t, osfs.IsNotExist(err))

	require.NoError(t, osfs.MkdirAll(dir, 0755))
	require.NoError(t, osfs.WriteFile(file, []byte("{}"), 0644))

	data, err := osfs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	require.NoError(t, osfs.Remove(file))
	assert.True(t, osfs.IsNotExist(osfs.Remove(file)))
}
