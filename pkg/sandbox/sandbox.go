// Package sandbox resolves caller supplied paths inside a repository's shared
// directory and refuses any path that would leave it.
package sandbox

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/types"
)

// SharedPath is a path relative to the shared directory. It carries no
// validation of its own; Resolve decides whether it is acceptable.
type SharedPath string

// String returns the path as given by the caller
func (p SharedPath) String() string {
	return string(p)
}

// Resolve maps p to an absolute path inside sharedDir.
//
// Absolute inputs and inputs with ".." segments are rejected outright. The
// joined path must stay under sharedDir lexically, and once symlinks in its
// longest existing ancestor are resolved it must still stay under the
// resolved shared directory.
func Resolve(fs types.FS, sharedDir string, p SharedPath) (string, error) {
	raw := string(p)
	if raw == "" {
		return "", invalid(p, "empty path")
	}
	if filepath.IsAbs(raw) || filepath.VolumeName(raw) != "" {
		return "", invalid(p, "absolute paths are not allowed")
	}
	for _, seg := range strings.FieldsFunc(raw, isSeparator) {
		if seg == ".." {
			return "", invalid(p, "path traversal not allowed")
		}
	}

	root := filepath.Clean(sharedDir)
	joined := filepath.Join(root, raw)
	if joined == root || !hasPathPrefix(joined, root) {
		return "", invalid(p, "path does not name an entry inside the shared directory")
	}

	resolvedRoot, err := evalExisting(fs, root)
	if err != nil {
		return "", errors.Other(err, "failed to resolve shared directory %s", root)
	}
	resolved, err := evalExisting(fs, joined)
	if err != nil {
		return "", errors.Other(err, "failed to resolve shared path %s", joined)
	}
	if !hasPathPrefix(resolved, resolvedRoot) {
		return "", invalid(p, "path resolves outside the shared directory").
			WithDetail("resolved", resolved)
	}

	return joined, nil
}

func invalid(p SharedPath, reason string) *errors.RepoError {
	return errors.Newf(errors.ErrInvalidSharedPath, "invalid shared path %q: %s", string(p), reason).
		WithDetail("path", string(p))
}

func isSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// evalExisting resolves symlinks in the longest existing ancestor of path and
// appends the components that do not exist yet.
func evalExisting(fs types.FS, path string) (string, error) {
	var missing []string
	current := path
	for {
		resolved, err := fs.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.IsNotFound(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(path, root)
}
