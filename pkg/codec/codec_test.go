package codec

import (
	"testing"
	"time"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		in      string
		format  string
		ext     string
		wantErr bool
	}{
		{in: "", format: FormatYAML, ext: "yaml"},
		{in: "yaml", format: FormatYAML, ext: "yaml"},
		{in: "YML", format: FormatYAML, ext: "yaml"},
		{in: "toml", format: FormatTOML, ext: "toml"},
		{in: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ForFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, c.Format())
			assert.Equal(t, tt.ext, c.Ext())
		})
	}
}

func TestLinkRecordRoundTrip(t *testing.T) {
	linkID, err := ids.LinkIDFromPath("/home/user/project")
	require.NoError(t, err)

	in := types.LinkRecord{
		CreatedAt:  time.Date(2024, 3, 1, 12, 30, 15, 123456000, time.UTC),
		LinkID:     linkID,
		ProjectDir: "/home/user/project",
		MetaID:     ids.NewMetaID(),
	}

	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			c := MustForFormat(format)
			data, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(data), in.MetaID.String())
			assert.Contains(t, string(data), "project_dir")

			var out types.LinkRecord
			require.NoError(t, c.Unmarshal(data, &out))
			assert.True(t, in.CreatedAt.Equal(out.CreatedAt), "created_at %v != %v", in.CreatedAt, out.CreatedAt)
			assert.Equal(t, in.LinkID, out.LinkID)
			assert.Equal(t, in.ProjectDir, out.ProjectDir)
			assert.Equal(t, in.MetaID, out.MetaID)
		})
	}
}

func TestManifestRecordRoundTrip(t *testing.T) {
	in := types.ManifestRecord{
		CreatedAt:          time.Date(2023, 11, 5, 8, 0, 0, 0, time.UTC),
		OriginalProjectDir: "/srv/app",
		MetaID:             ids.NewMetaID(),
	}

	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			c := MustForFormat(format)
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out types.ManifestRecord
			require.NoError(t, c.Unmarshal(data, &out))
			assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
			assert.Equal(t, in.OriginalProjectDir, out.OriginalProjectDir)
			assert.Equal(t, in.MetaID, out.MetaID)
		})
	}
}

func TestUnmarshalRejectsBadIDs(t *testing.T) {
	var rec types.LinkRecord
	err := MustForFormat(FormatYAML).Unmarshal([]byte("link_id: xyz\n"), &rec)
	assert.Error(t, err)

	err = MustForFormat(FormatTOML).Unmarshal([]byte("meta_id = 'not-an-id'\n"), &rec)
	assert.Error(t, err)
}
