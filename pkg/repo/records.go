package repo

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/types"
)

func (r *Repo) writeLink(linkID ids.LinkID, linkPath, projectDir string, metaID ids.MetaID) (*types.Link, error) {
	link := &types.Link{
		LinkPath: linkPath,
		Record: types.LinkRecord{
			CreatedAt:  now(),
			LinkID:     linkID,
			ProjectDir: projectDir,
			MetaID:     metaID,
		},
	}
	if err := r.writeRecord(linkPath, link.Record); err != nil {
		return nil, err
	}
	return link, nil
}

// ReadLink returns the link of projectDir, or nil when there is none
func (r *Repo) ReadLink(projectDir string) (*types.Link, error) {
	linkID, err := ids.LinkIDFromPath(projectDir)
	if err != nil {
		return nil, err
	}
	link, err := r.ReadLinkFile(r.linkPath(linkID))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return link, nil
}

// ReadLinkFile reads the link record at linkPath and checks that the project
// directory it records hashes to the link ID in its file name.
func (r *Repo) ReadLinkFile(linkPath string) (*types.Link, error) {
	data, err := r.fs.ReadFile(linkPath)
	if err != nil {
		return nil, errors.Other(err, "failed to read link %s", linkPath)
	}

	var record types.LinkRecord
	if err := r.codec.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidLinkFile, "failed to decode link %s", linkPath).
			WithDetail("linkPath", linkPath)
	}

	stem := strings.TrimSuffix(filepath.Base(linkPath), filepath.Ext(linkPath))
	fileID, err := ids.ParseLinkID(stem)
	if err != nil {
		return nil, err
	}
	computed, err := ids.LinkIDFromPath(record.ProjectDir)
	if err != nil || computed != fileID || record.LinkID != fileID {
		return nil, errors.Newf(errors.ErrInvalidLinkFile,
			"link file %s does not match project directory %q", linkPath, record.ProjectDir).
			WithDetail("linkPath", linkPath)
	}

	return &types.Link{LinkPath: linkPath, Record: record}, nil
}

// ReadManifest returns the manifest of metadirectory metaID
func (r *Repo) ReadManifest(metaID ids.MetaID) (*types.Manifest, error) {
	if m, ok := r.cache.Get(metaID); ok {
		return &m, nil
	}
	return r.readManifestFromDataDir(r.dataDir(metaID))
}

func (r *Repo) readManifestFromDataDir(dataDir string) (*types.Manifest, error) {
	manifestPath := r.manifestPath(dataDir)
	data, err := r.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Other(err, "failed to read manifest %s", manifestPath)
	}

	var record types.ManifestRecord
	if err := r.codec.Unmarshal(data, &record); err != nil {
		return nil, errors.Other(err, "failed to decode manifest %s", manifestPath)
	}

	// The directory name is the meta ID; a copied metadirectory must not
	// stand in for the one it was copied from
	if dirName := filepath.Base(dataDir); record.MetaID.String() != dirName {
		return nil, errors.Newf(errors.ErrInvalidMetaID,
			"manifest %s records meta ID %s, expected %s", manifestPath, record.MetaID, dirName).
			WithDetails(map[string]interface{}{
				"manifestPath": manifestPath,
				"metaID":       record.MetaID.String(),
				"dataDir":      dataDir,
			})
	}

	m := types.Manifest{DataDir: dataDir, ManifestPath: manifestPath, Record: record}
	r.cache.Add(record.MetaID, m)
	return &m, nil
}

// ListLinks returns every readable link. Links that vanish during the scan
// or fail to decode are skipped, since a link may legitimately go stale.
func (r *Repo) ListLinks() ([]types.Link, error) {
	entries, err := r.readDir(r.config.LinksDir)
	if err != nil {
		return nil, err
	}

	var links []types.Link
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !r.hasRecordExt(entry.Name()) {
			continue
		}
		linkPath := filepath.Join(r.config.LinksDir, entry.Name())
		link, err := r.ReadLinkFile(linkPath)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			if isCorruptLink(err) {
				r.logger.Warn().Err(err).Str("linkPath", linkPath).Msg("Skipping unreadable link")
				continue
			}
			return nil, err
		}
		links = append(links, *link)
	}
	return links, nil
}

// isCorruptLink reports whether err came from a link file whose content
// could not be trusted, as opposed to a failure reading it
func isCorruptLink(err error) bool {
	return errors.IsErrorCode(err, errors.ErrInvalidLinkFile) || errors.IsErrorCode(err, errors.ErrInvalidLinkID)
}

// ListManifests returns the manifest of every metadirectory. A directory in
// the container dir without a readable manifest is an error.
func (r *Repo) ListManifests() ([]types.Manifest, error) {
	entries, err := r.readDir(r.config.ContainerDir)
	if err != nil {
		return nil, err
	}

	var manifests []types.Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := r.readManifestFromDataDir(filepath.Join(r.config.ContainerDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, *m)
	}
	return manifests, nil
}

// DeleteLink deletes a link file. A link that is already gone is not an error.
func (r *Repo) DeleteLink(link *types.Link) error {
	if err := r.fs.Remove(link.LinkPath); err != nil && !errors.IsNotFound(err) {
		return errors.Wrapf(err, errors.ErrCouldNotDeleteFile, "could not delete %s", link.LinkPath).
			WithDetail("path", link.LinkPath)
	}
	return nil
}

// DeleteManifest deletes a metadirectory with everything in it
func (r *Repo) DeleteManifest(m *types.Manifest) error {
	r.cache.Remove(m.MetaID())
	if err := r.fs.RemoveAll(m.DataDir); err != nil {
		return errors.Wrapf(err, errors.ErrCouldNotDeleteDirectory, "could not delete %s", m.DataDir).
			WithDetail("path", m.DataDir)
	}
	return nil
}

// Purge deletes the whole repository: shared files, metadirectories, links,
// config file and lock file, in that order.
func (r *Repo) Purge() error {
	r.cache.Purge()

	for _, dir := range []string{r.config.SharedDir, r.config.ContainerDir, r.config.LinksDir} {
		ok, err := r.isDir(dir)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := r.fs.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, errors.ErrCouldNotDeleteDirectory, "could not delete %s", dir).
				WithDetail("path", dir)
		}
		r.logger.Debug().Str("path", dir).Msg("Purged directory")
	}

	ok, err := r.isFile(r.config.ConfigPath)
	if err != nil {
		return err
	}
	if ok {
		if err := r.fs.Remove(r.config.ConfigPath); err != nil {
			return errors.Wrapf(err, errors.ErrCouldNotDeleteFile, "could not delete %s", r.config.ConfigPath).
				WithDetail("path", r.config.ConfigPath)
		}
	}

	return r.lock.remove()
}
