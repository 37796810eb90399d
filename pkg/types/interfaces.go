package types

import (
	"io/fs"
)

// FS is the filesystem interface required for repository operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// WriteFileAtomic replaces name with data so that readers observe either
	// the previous content or the new content, never a partial write.
	// Missing parent directories are created.
	WriteFileAtomic(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// EvalSymlinks returns name after resolving symbolic links.
	// Filesystems without symlink support return the cleaned name.
	EvalSymlinks(name string) (string, error)
}
