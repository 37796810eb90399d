// Package display turns repository values into label/value views shared by
// the text and terminal renderers.
package display

import (
	"fmt"
	"time"

	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/trash"
	"github.com/arthur-debert/metadir/pkg/types"
)

// Kind tells a renderer how to style a value
type Kind int

const (
	KindPlain Kind = iota
	KindPath
	KindID
	KindTime
)

// Field is one label/value line
type Field struct {
	Label string
	Value string
	Kind  Kind
}

// Block is an optional title followed by fields
type Block struct {
	Title  string
	Fields []Field
}

// View is what a text or terminal renderer prints
type View struct {
	Blocks []Block
}

// Listing is the content of a repository
type Listing struct {
	Manifests []types.Manifest `json:"manifests"`
	Links     []types.Link     `json:"links"`
}

// LabelWidth is the column labels are padded to
const LabelWidth = 26

// Build returns the view of a known result type
func Build(result interface{}) (*View, bool) {
	switch v := result.(type) {
	case *types.DirInfo:
		return &View{Blocks: []Block{{Fields: DirInfoFields(v)}}}, true
	case *types.Manifest:
		return &View{Blocks: []Block{{Fields: ManifestFields(v)}}}, true
	case *types.Link:
		return &View{Blocks: []Block{{Fields: LinkFields(v)}}}, true
	case config.RepoConfig:
		return &View{Blocks: []Block{{Fields: ConfigFields(v)}}}, true
	case *config.RepoConfig:
		return &View{Blocks: []Block{{Fields: ConfigFields(*v)}}}, true
	case *Listing:
		return ListingView(v), true
	case *trash.Trash:
		return TrashView(v), true
	default:
		return nil, false
	}
}

// DirInfoFields describes a project directory's link and metadirectory
func DirInfoFields(d *types.DirInfo) []Field {
	return []Field{
		{"Data directory", d.DataDir(), KindPath},
		{"Manifest path", d.ManifestPath(), KindPath},
		{"Data directory created at", formatTime(d.CreatedAt()), KindTime},
		{"Original project directory", d.OriginalProjectDir(), KindPath},
		{"Meta ID", d.MetaID().String(), KindID},
		{"Link path", d.LinkPath(), KindPath},
		{"Link created at", formatTime(d.LinkCreatedAt()), KindTime},
		{"Link ID", d.LinkID().String(), KindID},
		{"Project directory", d.ProjectDir(), KindPath},
	}
}

// ManifestFields describes a metadirectory
func ManifestFields(m *types.Manifest) []Field {
	return []Field{
		{"Data directory", m.DataDir, KindPath},
		{"Manifest path", m.ManifestPath, KindPath},
		{"Created at", formatTime(m.CreatedAt()), KindTime},
		{"Original project directory", m.OriginalProjectDir(), KindPath},
		{"Meta ID", m.MetaID().String(), KindID},
	}
}

// LinkFields describes a link
func LinkFields(l *types.Link) []Field {
	return []Field{
		{"Link path", l.LinkPath, KindPath},
		{"Created at", formatTime(l.CreatedAt()), KindTime},
		{"Link ID", l.LinkID().String(), KindID},
		{"Project directory", l.ProjectDir(), KindPath},
		{"Meta ID", l.MetaID().String(), KindID},
	}
}

// ConfigFields describes where a repository keeps its files
func ConfigFields(c config.RepoConfig) []Field {
	return []Field{
		{"Lock file", c.LockPath, KindPath},
		{"Configuration file", c.ConfigPath, KindPath},
		{"Links directory", c.LinksDir, KindPath},
		{"Container directory", c.ContainerDir, KindPath},
		{"Shared directory", c.SharedDir, KindPath},
		{"Record format", c.Format, KindPlain},
	}
}

// ListingView lists metadirectories then links
func ListingView(l *Listing) *View {
	view := &View{}
	if len(l.Manifests) > 0 {
		view.Blocks = append(view.Blocks, Block{Title: fmt.Sprintf("Metadirectories (%d)", len(l.Manifests))})
		for i := range l.Manifests {
			m := &l.Manifests[i]
			view.Blocks = append(view.Blocks, Block{Fields: []Field{
				{"Meta ID", m.MetaID().String(), KindID},
				{"Data directory", m.DataDir, KindPath},
			}})
		}
	}
	if len(l.Links) > 0 {
		view.Blocks = append(view.Blocks, Block{Title: fmt.Sprintf("Links (%d)", len(l.Links))})
		for i := range l.Links {
			link := &l.Links[i]
			view.Blocks = append(view.Blocks, Block{Fields: []Field{
				{"Link ID", link.LinkID().String(), KindID},
				{"Link path", link.LinkPath, KindPath},
				{"Meta ID", link.MetaID().String(), KindID},
				{"Project directory", link.ProjectDir(), KindPath},
			}})
		}
	}
	return view
}

// TrashView lists what emptying the trash would delete
func TrashView(t *trash.Trash) *View {
	view := &View{}
	if n := len(t.InvalidLinks); n > 0 {
		view.Blocks = append(view.Blocks, Block{
			Title: fmt.Sprintf("The following %d links are invalid and will be removed:", n),
		})
		for i := range t.InvalidLinks {
			view.Blocks = append(view.Blocks, Block{
				Title:  fmt.Sprintf("(%d)", i+1),
				Fields: LinkFields(&t.InvalidLinks[i]),
			})
		}
	}
	if n := len(t.UnreferencedManifests); n > 0 {
		view.Blocks = append(view.Blocks, Block{
			Title: fmt.Sprintf("The following %d metadirectories are unreferenced and will be removed:", n),
		})
		for i := range t.UnreferencedManifests {
			view.Blocks = append(view.Blocks, Block{
				Title:  fmt.Sprintf("(%d)", i+1),
				Fields: ManifestFields(&t.UnreferencedManifests[i]),
			})
		}
	}
	return view
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
