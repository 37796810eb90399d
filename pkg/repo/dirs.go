package repo

import (
	"path/filepath"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/types"
)

// Init creates a metadirectory for projectDir and links the directory to it.
// It returns nil when projectDir already has a link.
func (r *Repo) Init(projectDir string) (*types.DirInfo, error) {
	linkID, err := ids.LinkIDFromPath(projectDir)
	if err != nil {
		return nil, err
	}
	linkPath := r.linkPath(linkID)
	exists, err := r.isFile(linkPath)
	if err != nil {
		return nil, err
	}
	if exists {
		r.logger.Debug().Str("projectDir", projectDir).Str("linkPath", linkPath).Msg("Link already exists")
		return nil, nil
	}

	metaID := ids.NewMetaID()
	dataDir := r.dataDir(metaID)
	manifest := types.Manifest{
		DataDir:      dataDir,
		ManifestPath: r.manifestPath(dataDir),
		Record: types.ManifestRecord{
			CreatedAt:          now(),
			OriginalProjectDir: projectDir,
			MetaID:             metaID,
		},
	}

	if err := r.fs.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Other(err, "failed to create data directory %s", dataDir)
	}
	// The manifest must exist before any link points at it
	if err := r.writeRecord(manifest.ManifestPath, manifest.Record); err != nil {
		return nil, err
	}
	r.cache.Add(metaID, manifest)

	link, err := r.writeLink(linkID, linkPath, projectDir, metaID)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("projectDir", projectDir).
		Str("metaID", metaID.String()).
		Str("linkID", linkID.String()).
		Msg("Initialized metadirectory")
	return &types.DirInfo{Manifest: manifest, Link: *link}, nil
}

// Get returns the link of projectDir and the manifest it points to, or nil
// when projectDir has no link.
func (r *Repo) Get(projectDir string) (*types.DirInfo, error) {
	link, err := r.ReadLink(projectDir)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, nil
	}
	if link.ProjectDir() != projectDir {
		return nil, invalidLinkFile(link.LinkPath, link.ProjectDir(), projectDir)
	}

	manifest, err := r.ReadManifest(link.MetaID())
	if err != nil {
		return nil, err
	}
	return &types.DirInfo{Manifest: *manifest, Link: *link}, nil
}

// Link attaches projectDir to the existing metadirectory metaID. It returns
// nil when projectDir already has a link; existing links are never replaced.
func (r *Repo) Link(metaID ids.MetaID, projectDir string) (*types.DirInfo, error) {
	manifest, err := r.ReadManifest(metaID)
	if err != nil {
		return nil, err
	}

	linkID, err := ids.LinkIDFromPath(projectDir)
	if err != nil {
		return nil, err
	}
	linkPath := r.linkPath(linkID)
	exists, err := r.isFile(linkPath)
	if err != nil {
		return nil, err
	}
	if exists {
		r.logger.Debug().Str("projectDir", projectDir).Str("linkPath", linkPath).Msg("Link already exists")
		return nil, nil
	}

	link, err := r.writeLink(linkID, linkPath, projectDir, metaID)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("projectDir", projectDir).
		Str("metaID", metaID.String()).
		Msg("Linked project directory")
	return &types.DirInfo{Manifest: *manifest, Link: *link}, nil
}

// Remove deletes the link of projectDir and reports whether there was one.
// The metadirectory is left in place; computing and emptying the trash
// removes it once nothing points at it any more.
func (r *Repo) Remove(projectDir string) (bool, error) {
	link, err := r.ReadLink(projectDir)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, nil
	}
	if err := r.DeleteLink(link); err != nil {
		return false, err
	}
	r.logger.Debug().Str("projectDir", projectDir).Str("linkPath", link.LinkPath).Msg("Removed link")
	return true, nil
}

// FindLink returns the link of dir or of its nearest ancestor that has one,
// or nil when none does. A corrupt link file counts as no link, as it does
// for ListLinks.
func (r *Repo) FindLink(dir string) (*types.Link, error) {
	current := dir
	for {
		link, err := r.ReadLink(current)
		if err != nil && isCorruptLink(err) {
			r.logger.Warn().Err(err).Str("dir", current).Msg("Skipping unreadable link")
			link, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		if link != nil {
			return link, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

func invalidLinkFile(linkPath, storedDir, projectDir string) error {
	return errors.Newf(errors.ErrInvalidLinkFile,
		"link file %s records project directory %s, expected %s", linkPath, storedDir, projectDir).
		WithDetails(map[string]interface{}{
			"linkPath":   linkPath,
			"storedDir":  storedDir,
			"projectDir": projectDir,
		})
}
