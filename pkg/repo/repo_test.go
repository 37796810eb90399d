package repo

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/arthur-debert/metadir/pkg/config"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/filesystem"
	"github.com/arthur-debert/metadir/pkg/ids"
	"github.com/arthur-debert/metadir/pkg/testutil"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep repository debug logs out of test output
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	os.Exit(m.Run())
}

// newMemRepo opens a repository whose records live in memory. The lock file
// still needs a real file, so it goes to a temp dir.
func newMemRepo(t *testing.T, format string) (*Repo, types.FS) {
	t.Helper()
	fsys := testutil.NewMemoryFS()
	r, err := New(fsys, testutil.MemRepoConfig(t, format))
	require.NoError(t, err)
	require.NotNil(t, r)
	t.Cleanup(func() { _ = r.Close() })
	return r, fsys
}

func TestNewLocksExclusively(t *testing.T) {
	base := t.TempDir()
	fsys := filesystem.NewOS()
	cfg := config.Default(base, "")

	first, err := New(fsys, cfg)
	require.NoError(t, err)
	require.NotNil(t, first)

	pid, err := os.ReadFile(cfg.LockPath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(pid)))

	second, err := New(fsys, cfg)
	require.NoError(t, err)
	assert.Nil(t, second, "second open must report busy")

	require.NoError(t, first.Close())
	// Closing twice is harmless
	require.NoError(t, first.Close())

	third, err := New(fsys, cfg)
	require.NoError(t, err)
	require.NotNil(t, third)
	require.NoError(t, third.Close())
}

func TestNewPrefixedReposDoNotConflict(t *testing.T) {
	base := t.TempDir()
	fsys := filesystem.NewOS()

	a, err := New(fsys, config.Default(base, "a"))
	require.NoError(t, err)
	require.NotNil(t, a)
	defer a.Close()

	b, err := New(fsys, config.Default(base, "b"))
	require.NoError(t, err)
	require.NotNil(t, b)
	defer b.Close()
}

func TestNewCouldNotOpenLockFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := config.Default(base, "")
	cfg.LockPath = filepath.Join(blocker, ".lock")

	r, err := New(filesystem.NewOS(), cfg)
	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCouldNotOpenLockFile))
}

func TestOpenPersistsConfig(t *testing.T) {
	base := t.TempDir()
	fsys := filesystem.NewOS()

	r, err := Open(fsys, config.Default(base, ""))
	require.NoError(t, err)
	require.NotNil(t, r)
	defer r.Close()

	assert.FileExists(t, filepath.Join(base, "config.yaml"))
	assert.Equal(t, filepath.Join(base, "links"), r.LinksDir())
	assert.Equal(t, filepath.Join(base, "data"), r.ContainerDir())
	assert.Equal(t, filepath.Join(base, "shared"), r.SharedDir())
	assert.Equal(t, filepath.Join(base, ".lock"), r.LockPath())
	assert.Equal(t, filepath.Join(base, "config.yaml"), r.ConfigPath())
}

func TestInit(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			r, fsys := newMemRepo(t, format)

			info, err := r.Init("/proj/a")
			require.NoError(t, err)
			require.NotNil(t, info)

			assert.Equal(t, "/proj/a", info.ProjectDir())
			assert.Equal(t, "/proj/a", info.OriginalProjectDir())
			assert.Equal(t, info.MetaID(), info.Link.MetaID())
			assert.Equal(t, filepath.Join("/base/data", info.MetaID().String()), info.DataDir())
			assert.Equal(t, filepath.Join(info.DataDir(), "manifest."+format), info.ManifestPath())
			assert.Equal(t, filepath.Join("/base/links", info.LinkID().String()+"."+format), info.LinkPath())

			_, err = fsys.Stat(info.ManifestPath())
			require.NoError(t, err)
			_, err = fsys.Stat(info.LinkPath())
			require.NoError(t, err)

			again, err := r.Init("/proj/a")
			require.NoError(t, err)
			assert.Nil(t, again)

			manifests, err := r.ListManifests()
			require.NoError(t, err)
			assert.Len(t, manifests, 1)
		})
	}
}

func TestInitRejectsRelativePath(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	info, err := r.Init("proj/a")
	require.Error(t, err)
	assert.Nil(t, info)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCouldNotComputeHash))
}

func TestGet(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			r, _ := newMemRepo(t, format)

			missing, err := r.Get("/proj/a")
			require.NoError(t, err)
			assert.Nil(t, missing)

			created, err := r.Init("/proj/a")
			require.NoError(t, err)

			// Bypass the cache so the records come from disk
			r.cache.Purge()

			got, err := r.Get("/proj/a")
			require.NoError(t, err)
			require.NotNil(t, got)

			assert.Equal(t, "/proj/a", got.ProjectDir())
			assert.Equal(t, created.MetaID(), got.MetaID())
			assert.Equal(t, created.LinkID(), got.LinkID())
			assert.Equal(t, created.Link.LinkPath, got.Link.LinkPath)
			assert.Equal(t, created.Manifest.DataDir, got.Manifest.DataDir)
			assert.True(t, created.CreatedAt().Equal(got.CreatedAt()))
			assert.True(t, created.LinkCreatedAt().Equal(got.LinkCreatedAt()))
			assert.Equal(t, created.OriginalProjectDir(), got.OriginalProjectDir())
		})
	}
}

func TestGetInvalidLinkFile(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	info, err := r.Init("/proj/b")
	require.NoError(t, err)

	// Put /proj/b's record under /proj/a's link name
	linkID, err := ids.LinkIDFromPath("/proj/a")
	require.NoError(t, err)
	data, err := fsys.ReadFile(info.LinkPath())
	require.NoError(t, err)
	require.NoError(t, fsys.WriteFile(r.linkPath(linkID), data, 0644))

	got, err := r.Get("/proj/a")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidLinkFile))
}

func TestGetMissingManifest(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	info, err := r.Init("/proj/a")
	require.NoError(t, err)
	require.NoError(t, r.DeleteManifest(&info.Manifest))
	_, err = fsys.Stat(info.DataDir())
	require.True(t, errors.IsNotFound(err))

	_, err = r.Get("/proj/a")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLink(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	info, err := r.Init("/proj/a")
	require.NoError(t, err)

	linked, err := r.Link(info.MetaID(), "/proj/b")
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, "/proj/b", linked.ProjectDir())
	assert.Equal(t, info.MetaID(), linked.MetaID())
	assert.Equal(t, "/proj/a", linked.OriginalProjectDir())

	again, err := r.Link(info.MetaID(), "/proj/b")
	require.NoError(t, err)
	assert.Nil(t, again)

	// Existing links are never redirected
	other, err := r.Init("/proj/c")
	require.NoError(t, err)
	redirected, err := r.Link(other.MetaID(), "/proj/a")
	require.NoError(t, err)
	assert.Nil(t, redirected)

	got, err := r.Get("/proj/a")
	require.NoError(t, err)
	assert.Equal(t, info.MetaID(), got.MetaID())

	links, err := r.ListLinks()
	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestLinkUnknownManifest(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	got, err := r.Link(ids.NewMetaID(), "/proj/a")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsNotFound(err))

	link, err := r.ReadLink("/proj/a")
	require.NoError(t, err)
	assert.Nil(t, link, "no link may be written for a missing manifest")
}

func TestRemove(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	removed, err := r.Remove("/proj/a")
	require.NoError(t, err)
	assert.False(t, removed)

	info, err := r.Init("/proj/a")
	require.NoError(t, err)

	removed, err = r.Remove("/proj/a")
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := r.Get("/proj/a")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The metadirectory stays until the trash is emptied
	_, err = fsys.Stat(info.ManifestPath())
	require.NoError(t, err)
}

func TestListLinksSkipsStaleEntries(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	_, err := r.Init("/proj/a")
	require.NoError(t, err)

	junkID, err := ids.LinkIDFromPath("/proj/junk")
	require.NoError(t, err)
	require.NoError(t, fsys.WriteFile(r.linkPath(junkID), []byte("{{ not yaml"), 0644))
	require.NoError(t, fsys.WriteFile("/base/links/.tmp-123", []byte("partial"), 0644))
	require.NoError(t, fsys.MkdirAll("/base/links/subdir.yaml", 0755))
	require.NoError(t, fsys.WriteFile("/base/links/not-an-id.yaml", []byte("link_id: x\n"), 0644))

	links, err := r.ListLinks()
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "/proj/a", links[0].ProjectDir())
}

func TestListOnEmptyRepo(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	links, err := r.ListLinks()
	require.NoError(t, err)
	assert.Empty(t, links)

	manifests, err := r.ListManifests()
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func TestListManifestsRequiresManifest(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	_, err := r.Init("/proj/a")
	require.NoError(t, err)
	require.NoError(t, fsys.MkdirAll(filepath.Join(r.ContainerDir(), "stray"), 0755))

	_, err = r.ListManifests()
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFindLink(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	_, err := r.Init("/proj")
	require.NoError(t, err)
	_, err = r.Init("/proj/a/b")
	require.NoError(t, err)

	tests := []struct {
		dir  string
		want string
	}{
		{"/proj", "/proj"},
		{"/proj/a", "/proj"},
		{"/proj/a/b", "/proj/a/b"},
		{"/proj/a/b/c/d", "/proj/a/b"},
		{"/other", ""},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			link, err := r.FindLink(tt.dir)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, link)
				return
			}
			require.NotNil(t, link)
			assert.Equal(t, tt.want, link.ProjectDir())
		})
	}
}

func TestFindLinkSkipsCorruptLink(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	_, err := r.Init("/proj")
	require.NoError(t, err)

	corruptID, err := ids.LinkIDFromPath("/proj/a")
	require.NoError(t, err)
	testutil.WriteFile(t, fsys, r.linkPath(corruptID), "{{ not yaml")

	link, err := r.FindLink("/proj/a/b")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "/proj", link.ProjectDir())

	links, err := r.ListLinks()
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestListManifestsRejectsCopiedMetadir(t *testing.T) {
	r, fsys := newMemRepo(t, "yaml")

	info, err := r.Init("/proj/a")
	require.NoError(t, err)

	copyDir := filepath.Join(r.ContainerDir(), ids.NewMetaID().String())
	testutil.WriteFile(t, fsys, r.manifestPath(copyDir), testutil.ReadFile(t, fsys, info.ManifestPath()))

	_, err = r.ListManifests()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMetaID))
	assert.Equal(t, copyDir, errors.GetErrorDetails(err)["dataDir"])

	// The original is still readable under its own ID
	m, err := r.ReadManifest(info.MetaID())
	require.NoError(t, err)
	assert.Equal(t, info.DataDir(), m.DataDir)
}

func TestDeleteManifestInvalidatesCache(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	info, err := r.Init("/proj/a")
	require.NoError(t, err)

	_, err = r.ReadManifest(info.MetaID())
	require.NoError(t, err)
	assert.True(t, r.cache.Contains(info.MetaID()))

	require.NoError(t, r.DeleteManifest(&info.Manifest))
	assert.False(t, r.cache.Contains(info.MetaID()))

	_, err = r.ReadManifest(info.MetaID())
	assert.True(t, errors.IsNotFound(err))
}

func TestPurge(t *testing.T) {
	base := t.TempDir()
	fsys := filesystem.NewOS()

	r, err := Open(fsys, config.Default(base, ""))
	require.NoError(t, err)
	require.NotNil(t, r)
	defer r.Close()

	_, err = r.Init("/proj/a")
	require.NoError(t, err)
	require.NoError(t, r.WriteSharedFile("k/v", "value"))

	require.NoError(t, r.Purge())

	for _, p := range []string{r.SharedDir(), r.ContainerDir(), r.LinksDir(), r.ConfigPath(), r.LockPath()} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should be gone", p)
	}

	// Purging an already purged repository is a no-op
	require.NoError(t, r.Purge())
}

func TestSharedFiles(t *testing.T) {
	r, _ := newMemRepo(t, "yaml")

	_, ok, err := r.ReadSharedFile("settings/theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.WriteSharedFile("settings/theme", "dark"))
	value, ok, err := r.ReadSharedFile("settings/theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)

	require.NoError(t, r.WriteSharedFile("settings/theme", "light"))
	value, _, err = r.ReadSharedFile("settings/theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	err = r.WriteSharedFile("../escape", "x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSharedPath))
	_, _, err = r.ReadSharedFile("/etc/passwd")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSharedPath))
}
