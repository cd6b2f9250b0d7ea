package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	assert.NotNil(t, fsys)

	tmpDir := t.TempDir()
	rootFile := filepath.Join(tmpDir, "index.ts")

	require.NoError(t, fsys.WriteFile(rootFile, []byte("// @index(['./*.ts'])\n"), 0644))

	info, err := fsys.Stat(rootFile)
	require.NoError(t, err)
	assert.Equal(t, "index.ts", info.Name())

	w, err := fsys.OpenAppend(rootFile)
	require.NoError(t, err)
	_, err = w.Write([]byte("export * from \"./a\"\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := fsys.ReadFile(rootFile)
	require.NoError(t, err)
	assert.Equal(t, "// @index(['./*.ts'])\nexport * from \"./a\"\n", string(content))

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "components"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "components", "Button.ts"), nil, 0644))

	data, err := fs.ReadFile(fsys.DirFS(tmpDir), "components/Button.ts")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOSAppendMissingFile(t *testing.T) {
	fsys := NewOS()
	_, err := fsys.OpenAppend(filepath.Join(t.TempDir(), "missing.ts"))
	assert.True(t, os.IsNotExist(err))
}

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	fsys := NewAferoFS(mem)

	require.NoError(t, mem.MkdirAll("/project/src/components", 0755))
	require.NoError(t, fsys.WriteFile("/project/src/index.ts", []byte("header\n"), 0644))
	require.NoError(t, fsys.WriteFile("/project/src/components/Button.ts", []byte("x"), 0644))

	t.Run("read_file", func(t *testing.T) {
		content, err := fsys.ReadFile("/project/src/index.ts")
		require.NoError(t, err)
		assert.Equal(t, "header\n", string(content))
	})

	t.Run("read_dir_fails", func(t *testing.T) {
		_, err := fsys.ReadFile("/project/src")
		assert.Error(t, err)
	})

	t.Run("append", func(t *testing.T) {
		w, err := fsys.OpenAppend("/project/src/index.ts")
		require.NoError(t, err)
		_, err = w.Write([]byte("line\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		content, err := fsys.ReadFile("/project/src/index.ts")
		require.NoError(t, err)
		assert.Equal(t, "header\nline\n", string(content))
	})

	t.Run("dir_fs_is_rooted", func(t *testing.T) {
		data, err := fs.ReadFile(fsys.DirFS("/project/src"), "components/Button.ts")
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})
}
