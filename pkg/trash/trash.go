// Package trash finds and removes orphaned repository state.
//
// Links are the roots and manifests the objects of a single mark and sweep
// pass. A link is valid when its project directory still exists and its
// metadirectory is listed; a manifest is referenced when at least one valid
// link points at it. Invalid links and unreferenced manifests make up the
// trash.
package trash

import (
	"sort"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/logging"
	"github.com/arthur-debert/metadir/pkg/types"
)

// Source lists the records a trash is computed from
type Source interface {
	ListLinks() ([]types.Link, error)
	ListManifests() ([]types.Manifest, error)
	// FS is consulted for the existence of project directories
	FS() types.FS
}

// Deleter removes records when the trash is emptied
type Deleter interface {
	DeleteLink(link *types.Link) error
	DeleteManifest(manifest *types.Manifest) error
}

// Trash holds invalid links and unreferenced manifests. Links are sorted by
// project directory and manifests by meta ID.
type Trash struct {
	InvalidLinks          []types.Link     `json:"invalid_links"`
	UnreferencedManifests []types.Manifest `json:"unreferenced_manifests"`
}

type markedManifest struct {
	manifest   types.Manifest
	referenced bool
}

// Compute scans src and classifies every link and manifest
func Compute(src Source) (*Trash, error) {
	logger := logging.GetLogger("trash")
	done := logging.LogOperationStart(logger, "trash.compute")
	defer done()

	manifests, err := src.ListManifests()
	if err != nil {
		return nil, err
	}
	links, err := src.ListLinks()
	if err != nil {
		return nil, err
	}

	marks := make(map[ids.MetaID]*markedManifest, len(manifests))
	for _, m := range manifests {
		marks[m.MetaID()] = &markedManifest{manifest: m}
	}

	t := &Trash{}
	for _, link := range links {
		exists, err := isDir(src.FS(), link.ProjectDir())
		if err != nil {
			return nil, err
		}
		if !exists {
			logger.Debug().Str("projectDir", link.ProjectDir()).Msg("Project directory is gone")
			t.InvalidLinks = append(t.InvalidLinks, link)
			continue
		}
		mark, ok := marks[link.MetaID()]
		if !ok {
			logger.Debug().Str("projectDir", link.ProjectDir()).Str("metaID", link.MetaID().String()).
				Msg("Link points at a missing metadirectory")
			t.InvalidLinks = append(t.InvalidLinks, link)
			continue
		}
		mark.referenced = true
	}

	for _, mark := range marks {
		if !mark.referenced {
			t.UnreferencedManifests = append(t.UnreferencedManifests, mark.manifest)
		}
	}

	sort.Slice(t.InvalidLinks, func(i, j int) bool {
		a, b := t.InvalidLinks[i], t.InvalidLinks[j]
		if a.ProjectDir() != b.ProjectDir() {
			return a.ProjectDir() < b.ProjectDir()
		}
		return a.LinkPath < b.LinkPath
	})
	sort.Slice(t.UnreferencedManifests, func(i, j int) bool {
		return t.UnreferencedManifests[i].MetaID().String() < t.UnreferencedManifests[j].MetaID().String()
	})

	logger.Debug().
		Int("links", len(links)).
		Int("manifests", len(manifests)).
		Int("invalidLinks", len(t.InvalidLinks)).
		Int("unreferencedManifests", len(t.UnreferencedManifests)).
		Msg("Computed trash")
	return t, nil
}

// IsEmpty reports whether there is nothing to delete
func (t *Trash) IsEmpty() bool {
	return len(t.InvalidLinks) == 0 && len(t.UnreferencedManifests) == 0
}

// Empty deletes invalid links, then unreferenced metadirectories. Each entry
// leaves the trash only once it is deleted, so after a failure the trash
// still holds exactly what is left to do.
func (t *Trash) Empty(d Deleter) error {
	logger := logging.GetLogger("trash")
	done := logging.LogOperationStart(logger, "trash.empty")
	defer done()

	for len(t.InvalidLinks) > 0 {
		link := t.InvalidLinks[0]
		if err := d.DeleteLink(&link); err != nil {
			return err
		}
		logger.Info().Str("linkPath", link.LinkPath).Str("projectDir", link.ProjectDir()).Msg("Deleted invalid link")
		t.InvalidLinks = t.InvalidLinks[1:]
	}

	for len(t.UnreferencedManifests) > 0 {
		m := t.UnreferencedManifests[0]
		if err := d.DeleteManifest(&m); err != nil {
			return err
		}
		logger.Info().Str("dataDir", m.DataDir).Str("metaID", m.MetaID().String()).Msg("Deleted metadirectory")
		t.UnreferencedManifests = t.UnreferencedManifests[1:]
	}

	return nil
}

func isDir(fsys types.FS, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Other(err, "failed to stat project directory %s", path)
	}
	return info.IsDir(), nil
}
