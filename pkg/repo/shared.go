package repo

import (
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/sandbox"
)

// ReadSharedFile returns the content of a file in the shared directory.
// The boolean is false when the file does not exist.
func (r *Repo) ReadSharedFile(p sandbox.SharedPath) (string, bool, error) {
	path, err := sandbox.Resolve(r.fs, r.config.SharedDir, p)
	if err != nil {
		return "", false, err
	}
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, errors.Other(err, "failed to read shared file %s", path)
	}
	return string(data), true, nil
}

// WriteSharedFile atomically replaces a file in the shared directory,
// creating parent directories as needed
func (r *Repo) WriteSharedFile(p sandbox.SharedPath, value string) error {
	path, err := sandbox.Resolve(r.fs, r.config.SharedDir, p)
	if err != nil {
		return err
	}
	if err := r.fs.WriteFileAtomic(path, []byte(value), 0644); err != nil {
		return errors.Other(err, "failed to write shared file %s", path)
	}
	r.logger.Debug().Str("path", path).Int("bytes", len(value)).Msg("Wrote shared file")
	return nil
}
