package types

import (
	"time"

	"github.com/arthur-debert/metadir/pkg/ids"
)

// DirInfo is the combined view of a project directory's link and the
// manifest it points to
type DirInfo struct {
	Manifest Manifest `json:"manifest"`
	Link     Link     `json:"link"`
}

// DataDir returns the metadirectory path
func (d *DirInfo) DataDir() string { return d.Manifest.DataDir }

// ManifestPath returns the manifest file path
func (d *DirInfo) ManifestPath() string { return d.Manifest.ManifestPath }

// CreatedAt returns when the metadirectory was created
func (d *DirInfo) CreatedAt() time.Time { return d.Manifest.CreatedAt() }

// OriginalProjectDir returns the directory the metadirectory was created for
func (d *DirInfo) OriginalProjectDir() string { return d.Manifest.OriginalProjectDir() }

// MetaID returns the metadirectory's ID
func (d *DirInfo) MetaID() ids.MetaID { return d.Manifest.MetaID() }

// LinkPath returns the link file path
func (d *DirInfo) LinkPath() string { return d.Link.LinkPath }

// LinkCreatedAt returns when the link was created
func (d *DirInfo) LinkCreatedAt() time.Time { return d.Link.CreatedAt() }

// LinkID returns the link's ID
func (d *DirInfo) LinkID() ids.LinkID { return d.Link.LinkID() }

// ProjectDir returns the linked project directory
func (d *DirInfo) ProjectDir() string { return d.Link.ProjectDir() }
