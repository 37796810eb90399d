package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	err = fs.Remove(testFile)
	require.NoError(t, err)
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestOSEvalSymlinks(t *testing.T) {
	fs := NewOS()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	target := filepath.Join(tmpDir, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.Symlink(target, link))

	resolved, err := fs.EvalSymlinks(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestWriteFileAtomic(t *testing.T) {
	implementations := map[string]func(t *testing.T) (types.FS, string){
		"os": func(t *testing.T) (types.FS, string) {
			return NewOS(), t.TempDir()
		},
		"afero": func(t *testing.T) (types.FS, string) {
			return NewAferoFS(afero.NewMemMapFs()), "/repo"
		},
	}

	for name, setup := range implementations {
		t.Run(name, func(t *testing.T) {
			fs, root := setup(t)
			target := filepath.Join(root, "links", "abc.yaml")

			t.Run("creates parents", func(t *testing.T) {
				require.NoError(t, fs.WriteFileAtomic(target, []byte("one"), 0644))
				content, err := fs.ReadFile(target)
				require.NoError(t, err)
				assert.Equal(t, "one", string(content))
			})

			t.Run("replaces existing content", func(t *testing.T) {
				require.NoError(t, fs.WriteFileAtomic(target, []byte("two"), 0644))
				content, err := fs.ReadFile(target)
				require.NoError(t, err)
				assert.Equal(t, "two", string(content))
			})

			t.Run("leaves no temp files behind", func(t *testing.T) {
				entries, err := fs.ReadDir(filepath.Dir(target))
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "abc.yaml", entries[0].Name())
			})
		})
	}
}

func TestAferoReadFileRejectsDirectory(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/data/dir", 0755))

	_, err := fs.ReadFile("/data/dir")
	assert.Error(t, err)
}

func TestAferoEvalSymlinks(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/shared/a", 0755))

	resolved, err := fs.EvalSymlinks("/shared/a/../a")
	require.NoError(t, err)
	assert.Equal(t, "/shared/a", resolved)

	_, err = fs.EvalSymlinks("/shared/missing")
	assert.True(t, os.IsNotExist(err))
}
