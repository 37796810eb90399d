package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/filesystem"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/spf13/afero"
)

// MemBaseDir is the repository base directory used with NewMemoryFS
const MemBaseDir = "/base"

// NewMemoryFS returns an empty in-memory filesystem
func NewMemoryFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// MemRepoConfig returns the layout of a repository rooted at MemBaseDir.
// The lock is placed in a temp dir because flock needs a real file.
func MemRepoConfig(t *testing.T, format string) config.RepoConfig {
	t.Helper()
	cfg := config.DefaultWithFormat(MemBaseDir, "", format)
	cfg.LockPath = filepath.Join(t.TempDir(), ".lock")
	return cfg
}

// MkdirAll creates every directory in dirs.
// It fails the test if a directory cannot be created.
func MkdirAll(t *testing.T, fs types.FS, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with content, creating parent directories as
// needed. It fails the test if the file cannot be written.
func WriteFile(t *testing.T, fs types.FS, path, content string) string {
	t.Helper()
	MkdirAll(t, fs, filepath.Dir(path))
	if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	content, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// CreateSymlink creates a symbolic link on the real filesystem pointing to
// target. It fails the test if the symlink cannot be created.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}
