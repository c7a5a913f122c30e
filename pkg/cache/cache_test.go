package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/modlayer/pkg/cache"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

type testState struct {
	cacheDir string
	libs     syncer.Package
	assets   syncer.Package
}

func newTestState(t *testing.T) testState {
	root := t.TempDir()
	cacheDir := filepath.Join(root, "cache")
	return testState{
		cacheDir: cacheDir,
		libs:     syncer.Package{Kind: "xxmi-libs", InstallDir: filepath.Join(root, "xxmi-libs"), CacheDir: cacheDir},
		assets:   syncer.Package{Kind: "zzmi-package", InstallDir: filepath.Join(root, "zzmi-package"), CacheDir: cacheDir},
	}
}

func (s testState) packages() []syncer.Package {
	return []syncer.Package{s.libs, s.assets}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), fsutil.DirModeSecure))
	require.NoError(t, os.WriteFile(path, []byte(content), fsutil.FileModeDefault))
}

// populate leaves an archive behind in the cache, as an interrupted sync
// would, and installs the libs package.
func (s testState) populate(t *testing.T) {
	t.Helper()
	writeTestFile(t, s.libs.ArchivePath("v1.2"), "leftover archive")
	writeTestFile(t, filepath.Join(s.libs.InstallDir, "d3d11.dll"), "loader")
	writeTestFile(t, s.libs.StampPath(), `{"version":"v1.1"}`)
}

func TestNewManager(t *testing.T) {
	s := newTestState(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())
	require.NotNil(t, mgr)
	assert.Equal(t, s.cacheDir, mgr.GetDirectory())
}

func TestClean_DefaultsToArchives(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())

	result, err := mgr.Clean(cache.CleanOptions{})
	require.NoError(t, err)

	assert.NoFileExists(t, s.libs.ArchivePath("v1.2"))
	assert.DirExists(t, s.cacheDir, "cache dir is recreated empty")
	assert.FileExists(t, s.libs.StampPath(), "installs are kept")
	assert.Equal(t, int64(len("leftover archive")), result.ArchiveFreed)
	assert.Equal(t, int64(0), result.InstallFreed)
	assert.Equal(t, result.ArchiveFreed, result.TotalFreed)
}

func TestClean_Installs(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())

	result, err := mgr.Clean(cache.CleanOptions{Installs: true})
	require.NoError(t, err)

	assert.NoDirExists(t, s.libs.InstallDir)
	assert.FileExists(t, s.libs.ArchivePath("v1.2"))
	assert.Positive(t, result.InstallFreed)
	assert.Equal(t, []string{s.libs.InstallDir}, result.Removed)

	_, installed := s.libs.Installed()
	assert.False(t, installed)
}

func TestClean_All(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())

	result, err := mgr.Clean(cache.CleanOptions{All: true})
	require.NoError(t, err)

	assert.NoFileExists(t, s.libs.ArchivePath("v1.2"))
	assert.NoDirExists(t, s.libs.InstallDir)
	assert.Equal(t, result.ArchiveFreed+result.InstallFreed, result.TotalFreed)
}

func TestClean_NonExistentDirectories(t *testing.T) {
	s := newTestState(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())

	result, err := mgr.Clean(cache.CleanOptions{All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalFreed)
	assert.Empty(t, result.Removed)
}

func TestClean_EmptyDirectory(t *testing.T) {
	_, err := cache.NewManager("", nil).Clean(cache.CleanOptions{})
	assert.ErrorIs(t, err, cache.ErrCacheDirectory)
}

func TestGetInfo(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	mgr := cache.NewManager(s.cacheDir, s.packages())

	info, err := mgr.GetInfo()
	require.NoError(t, err)

	assert.Equal(t, s.cacheDir, info.Directory)
	assert.Equal(t, 1, info.ArchiveFiles)
	assert.Positive(t, info.ArchiveSize)
	require.Len(t, info.Packages, 2)

	libs := info.Packages[0]
	assert.Equal(t, "xxmi-libs", libs.Kind)
	assert.Equal(t, "v1.1", libs.Tag)
	assert.Equal(t, 2, libs.Files)

	assets := info.Packages[1]
	assert.Empty(t, assets.Tag)
	assert.Equal(t, 0, assets.Files)

	assert.Equal(t, info.ArchiveSize+libs.Size, info.TotalSize)
}

func TestGetInfo_EmptyCache(t *testing.T) {
	s := newTestState(t)
	info, err := cache.NewManager(s.cacheDir, nil).GetInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.TotalSize)
	assert.Empty(t, info.Packages)
}

// Tests for cache.Operation

func TestOperation_Clean(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	op := cache.NewOperation(cache.NewManager(s.cacheDir, s.packages()))

	msg, err := op.Clean(true, false, false)
	require.NoError(t, err)
	assert.Contains(t, msg, "Successfully cleaned cache")
	assert.Contains(t, msg, "Archives:")
	assert.Contains(t, msg, "Packages:")
}

func TestOperation_Clean_EmptyCache(t *testing.T) {
	s := newTestState(t)
	op := cache.NewOperation(cache.NewManager(s.cacheDir, s.packages()))

	msg, err := op.Clean(false, true, false)
	require.NoError(t, err)
	assert.Contains(t, msg, "No files were removed from the cache")
}

func TestOperation_GetInfo(t *testing.T) {
	s := newTestState(t)
	s.populate(t)
	op := cache.NewOperation(cache.NewManager(s.cacheDir, s.packages()))

	info, err := op.GetInfo()
	require.NoError(t, err)
	assert.Contains(t, info, "Cache Information:")
	assert.Contains(t, info, s.cacheDir)
	assert.Contains(t, info, "xxmi-libs:")
	assert.Contains(t, info, "v1.1")
	assert.Contains(t, info, "not installed")
	assert.Equal(t, s.cacheDir, op.GetDirectory())
}

func TestOperation_GetInfo_Error(t *testing.T) {
	op := cache.NewOperation(cache.NewManager("", nil))
	_, err := op.GetInfo()
	assert.ErrorIs(t, err, cache.ErrCacheDirectory)
}
