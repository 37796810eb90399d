package display

import (
	"testing"
	"time"

	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/trash"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func sampleManifest(t *testing.T) types.Manifest {
	t.Helper()
	metaID, err := ids.ParseMetaID("6f0a6b7e-3c1d-4b6a-9d8e-2f1a0b9c8d7e")
	require.NoError(t, err)
	return types.Manifest{
		DataDir:      "/repo/data/6f0a6b7e-3c1d-4b6a-9d8e-2f1a0b9c8d7e",
		ManifestPath: "/repo/data/6f0a6b7e-3c1d-4b6a-9d8e-2f1a0b9c8d7e/manifest.yaml",
		Record: types.ManifestRecord{
			CreatedAt:          created,
			OriginalProjectDir: "/proj/a",
			MetaID:             metaID,
		},
	}
}

func sampleLink(t *testing.T, m types.Manifest) types.Link {
	t.Helper()
	linkID, err := ids.LinkIDFromPath("/proj/a")
	require.NoError(t, err)
	return types.Link{
		LinkPath: "/repo/links/" + linkID.String() + ".yaml",
		Record: types.LinkRecord{
			CreatedAt:  created,
			LinkID:     linkID,
			ProjectDir: "/proj/a",
			MetaID:     m.MetaID(),
		},
	}
}

func labels(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

func TestDirInfoFields(t *testing.T) {
	m := sampleManifest(t)
	l := sampleLink(t, m)

	fields := DirInfoFields(&types.DirInfo{Manifest: m, Link: l})

	assert.Equal(t, []string{
		"Data directory",
		"Manifest path",
		"Data directory created at",
		"Original project directory",
		"Meta ID",
		"Link path",
		"Link created at",
		"Link ID",
		"Project directory",
	}, labels(fields))
	assert.Equal(t, "2024-03-01T12:30:00Z", fields[2].Value)
	assert.Equal(t, KindTime, fields[2].Kind)
	assert.Equal(t, m.MetaID().String(), fields[4].Value)
	assert.Equal(t, KindID, fields[4].Kind)
	assert.Equal(t, "/proj/a", fields[8].Value)
}

func TestBuild(t *testing.T) {
	m := sampleManifest(t)
	l := sampleLink(t, m)
	cfg := config.Default("/repo", "")

	tests := []struct {
		name   string
		result interface{}
		ok     bool
	}{
		{"dir info", &types.DirInfo{Manifest: m, Link: l}, true},
		{"manifest", &m, true},
		{"link", &l, true},
		{"config value", cfg, true},
		{"config pointer", &cfg, true},
		{"listing", &Listing{}, true},
		{"trash", &trash.Trash{}, true},
		{"string", "hello", false},
		{"manifest value", m, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, ok := Build(tt.result)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.NotNil(t, view)
			} else {
				assert.Nil(t, view)
			}
		})
	}
}

func TestConfigFields(t *testing.T) {
	cfg := config.Default("/repo", "")
	fields := ConfigFields(cfg)

	require.Len(t, fields, 6)
	assert.Equal(t, cfg.LockPath, fields[0].Value)
	assert.Equal(t, cfg.SharedDir, fields[4].Value)
	assert.Equal(t, "Record format", fields[5].Label)
	assert.Equal(t, KindPlain, fields[5].Kind)
}

func TestListingView(t *testing.T) {
	m := sampleManifest(t)
	l := sampleLink(t, m)

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ListingView(&Listing{}).Blocks)
	})

	t.Run("manifests then links", func(t *testing.T) {
		view := ListingView(&Listing{
			Manifests: []types.Manifest{m},
			Links:     []types.Link{l},
		})
		require.Len(t, view.Blocks, 4)
		assert.Equal(t, "Metadirectories (1)", view.Blocks[0].Title)
		assert.Equal(t, m.DataDir, view.Blocks[1].Fields[1].Value)
		assert.Equal(t, "Links (1)", view.Blocks[2].Title)
		assert.Equal(t, "/proj/a", view.Blocks[3].Fields[3].Value)
	})
}

func TestTrashView(t *testing.T) {
	m := sampleManifest(t)
	l := sampleLink(t, m)

	view := TrashView(&trash.Trash{
		InvalidLinks:          []types.Link{l, l},
		UnreferencedManifests: []types.Manifest{m},
	})

	require.Len(t, view.Blocks, 5)
	assert.Equal(t, "The following 2 links are invalid and will be removed:", view.Blocks[0].Title)
	assert.Equal(t, "(1)", view.Blocks[1].Title)
	assert.Equal(t, "(2)", view.Blocks[2].Title)
	assert.Equal(t, "The following 1 metadirectories are unreferenced and will be removed:", view.Blocks[3].Title)
	assert.Equal(t, labels(ManifestFields(&m)), labels(view.Blocks[4].Fields))
}
