package repo

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/metadir/pkg/codec"
	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/logging"
	"github.com/arthur-debert/metadir/pkg/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// ManifestFileBase is the manifest file name inside a data dir, without extension
const ManifestFileBase = "manifest"

// manifestCacheSize bounds the number of manifests kept in memory
const manifestCacheSize = 256

// now is the clock used for record timestamps
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Repo is an open, locked repository
type Repo struct {
	fs     types.FS
	config config.RepoConfig
	codec  codec.Codec
	lock   *repoLock
	cache  *lru.Cache[ids.MetaID, types.Manifest]
	logger zerolog.Logger
}

// New locks the repository described by cfg.
//
// It returns (nil, nil) when another holder has the lock: callers should
// report the repository as busy. The caller must Close the returned Repo.
func New(fsys types.FS, cfg config.RepoConfig) (*Repo, error) {
	logger := logging.GetLogger("repo")

	c, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	lock, err := acquireLock(cfg.LockPath)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		logger.Debug().Str("lockPath", cfg.LockPath).Msg("Repository is locked by another holder")
		return nil, nil
	}

	cache, err := lru.New[ids.MetaID, types.Manifest](manifestCacheSize)
	if err != nil {
		_ = lock.release()
		return nil, errors.Other(err, "failed to create manifest cache")
	}

	logger.Debug().Str("lockPath", cfg.LockPath).Msg("Acquired repository lock")
	return &Repo{
		fs:     fsys,
		config: cfg,
		codec:  c,
		lock:   lock,
		cache:  cache,
		logger: logger,
	}, nil
}

// Open resolves cfg against the persisted config file and locks the
// repository. Like New it returns (nil, nil) when the repository is busy.
func Open(fsys types.FS, cfg config.RepoConfig) (*Repo, error) {
	resolved, err := config.Resolve(fsys, cfg)
	if err != nil {
		return nil, err
	}
	return New(fsys, resolved)
}

// Close releases the repository lock
func (r *Repo) Close() error {
	if r == nil {
		return nil
	}
	if err := r.lock.release(); err != nil {
		return errors.Wrapf(err, errors.ErrCouldNotLock, "could not unlock %s", r.config.LockPath)
	}
	return nil
}

// Config returns the repository configuration
func (r *Repo) Config() config.RepoConfig { return r.config }

// FS returns the filesystem the records are stored on
func (r *Repo) FS() types.FS { return r.fs }

// LockPath returns the path of the lock file
func (r *Repo) LockPath() string { return r.config.LockPath }

// ConfigPath returns the path of the persisted config file
func (r *Repo) ConfigPath() string { return r.config.ConfigPath }

// LinksDir returns the directory holding link records
func (r *Repo) LinksDir() string { return r.config.LinksDir }

// ContainerDir returns the directory holding metadirectories
func (r *Repo) ContainerDir() string { return r.config.ContainerDir }

// SharedDir returns the directory holding shared files
func (r *Repo) SharedDir() string { return r.config.SharedDir }

func (r *Repo) linkPath(id ids.LinkID) string {
	return filepath.Join(r.config.LinksDir, id.String()+"."+r.codec.Ext())
}

func (r *Repo) dataDir(id ids.MetaID) string {
	return filepath.Join(r.config.ContainerDir, id.String())
}

func (r *Repo) manifestPath(dataDir string) string {
	return filepath.Join(dataDir, ManifestFileBase+"."+r.codec.Ext())
}

// isFile reports whether path exists and is a regular file
func (r *Repo) isFile(path string) (bool, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Other(err, "failed to stat %s", path)
	}
	return info.Mode().IsRegular(), nil
}

// isDir reports whether path exists and is a directory
func (r *Repo) isDir(path string) (bool, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Other(err, "failed to stat %s", path)
	}
	return info.IsDir(), nil
}

// readDir lists dir, treating a missing directory as empty
func (r *Repo) readDir(dir string) ([]fs.DirEntry, error) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Other(err, "failed to list %s", dir)
	}
	return entries, nil
}

func (r *Repo) writeRecord(path string, record interface{}) error {
	data, err := r.codec.Marshal(record)
	if err != nil {
		return errors.Other(err, "failed to encode %s", path)
	}
	if err := r.fs.WriteFileAtomic(path, data, 0644); err != nil {
		return errors.Other(err, "failed to write %s", path)
	}
	return nil
}

// hasRecordExt reports whether name carries the repository's record extension
func (r *Repo) hasRecordExt(name string) bool {
	return strings.HasSuffix(name, "."+r.codec.Ext())
}
