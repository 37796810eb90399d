package types

import (
	"time"

	"github.com/arthur-debert/metadir/pkg/ids"
)

// ManifestRecord is the persisted form of a metadirectory's manifest
type ManifestRecord struct {
	CreatedAt time.Time `yaml:"created_at" toml:"created_at" json:"created_at"`
	// OriginalProjectDir is the project directory the metadirectory was
	// created for. It is informational only.
	OriginalProjectDir string     `yaml:"original_project_dir" toml:"original_project_dir" json:"original_project_dir"`
	MetaID             ids.MetaID `yaml:"meta_id" toml:"meta_id" json:"meta_id"`
}

// LinkRecord is the persisted form of a link from a project directory to a
// metadirectory
type LinkRecord struct {
	CreatedAt  time.Time  `yaml:"created_at" toml:"created_at" json:"created_at"`
	LinkID     ids.LinkID `yaml:"link_id" toml:"link_id" json:"link_id"`
	ProjectDir string     `yaml:"project_dir" toml:"project_dir" json:"project_dir"`
	MetaID     ids.MetaID `yaml:"meta_id" toml:"meta_id" json:"meta_id"`
}

// Manifest is a manifest record together with the paths it was loaded from
type Manifest struct {
	// DataDir is the metadirectory itself; it is owned exclusively by the
	// manifest and may contain arbitrary caller files.
	DataDir      string         `json:"data_dir"`
	ManifestPath string         `json:"manifest_path"`
	Record       ManifestRecord `json:"record"`
}

// MetaID returns the manifest's meta ID
func (m *Manifest) MetaID() ids.MetaID {
	return m.Record.MetaID
}

// CreatedAt returns when the metadirectory was created
func (m *Manifest) CreatedAt() time.Time {
	return m.Record.CreatedAt
}

// OriginalProjectDir returns the directory the metadirectory was created for
func (m *Manifest) OriginalProjectDir() string {
	return m.Record.OriginalProjectDir
}

// Link is a link record together with the path it was loaded from
type Link struct {
	LinkPath string     `json:"link_path"`
	Record   LinkRecord `json:"record"`
}

// LinkID returns the link's ID
func (l *Link) LinkID() ids.LinkID {
	return l.Record.LinkID
}

// MetaID returns the ID of the metadirectory the link points to
func (l *Link) MetaID() ids.MetaID {
	return l.Record.MetaID
}

// ProjectDir returns the linked project directory
func (l *Link) ProjectDir() string {
	return l.Record.ProjectDir
}

// CreatedAt returns when the link was created
func (l *Link) CreatedAt() time.Time {
	return l.Record.CreatedAt
}
