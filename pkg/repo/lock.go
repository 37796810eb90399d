package repo

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/gofrs/flock"
)

// repoLock is the process-wide advisory lock guarding one repository.
// The lock lives on the real filesystem regardless of the FS the records
// are stored on, since advisory locks need a file descriptor.
type repoLock struct {
	path string
	flk  *flock.Flock
}

// acquireLock makes sure the lock file exists and tries once to lock it.
// It returns a nil lock and no error when another holder exists.
func acquireLock(path string) (*repoLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCouldNotOpenLockFile, "could not open lock file %s", path).
			WithDetail("path", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCouldNotOpenLockFile, "could not open lock file %s", path).
			WithDetail("path", path)
	}
	_ = f.Close()

	flk := flock.New(path)
	locked, err := flk.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCouldNotLock, "could not lock %s", path).
			WithDetail("path", path)
	}
	if !locked {
		return nil, nil
	}

	l := &repoLock{path: path, flk: flk}
	if err := l.writePID(); err != nil {
		_ = flk.Unlock()
		return nil, err
	}
	return l, nil
}

func (l *repoLock) writePID() error {
	pid := []byte(strconv.Itoa(os.Getpid()) + "\n")
	if err := os.WriteFile(l.path, pid, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCouldNotLock, "could not record owner of %s", l.path).
			WithDetail("path", l.path)
	}
	return nil
}

// release unlocks; it is safe to call more than once
func (l *repoLock) release() error {
	if l == nil || l.flk == nil {
		return nil
	}
	// flock.Unlock() is idempotent and can be called even if the lock is not held
	return l.flk.Unlock()
}

// remove deletes the lock file. The lock stays held until release.
func (l *repoLock) remove() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrCouldNotDeleteFile, "could not delete %s", l.path).
			WithDetail("path", l.path)
	}
	return nil
}
