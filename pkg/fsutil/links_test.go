package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceWithSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "Core")
	require.NoError(t, os.MkdirAll(target, DirModeDefault))

	tests := []struct {
		name  string
		setup func(t *testing.T, link string)
	}{
		{
			name:  "empty slot",
			setup: func(t *testing.T, link string) {},
		},
		{
			name: "existing file",
			setup: func(t *testing.T, link string) {
				require.NoError(t, os.WriteFile(link, []byte("x"), FileModeDefault))
			},
		},
		{
			name: "existing real directory",
			setup: func(t *testing.T, link string) {
				require.NoError(t, os.MkdirAll(filepath.Join(link, "inner"), DirModeDefault))
			},
		},
		{
			name: "existing symlink",
			setup: func(t *testing.T, link string) {
				require.NoError(t, os.Symlink(filepath.Join(dir, "elsewhere"), link))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := filepath.Join(t.TempDir(), "game", "Core")
			require.NoError(t, EnsureFileDir(link))
			tt.setup(t, link)

			require.NoError(t, ReplaceWithSymlink(target, link))

			assert.True(t, IsSymlink(link))
			got, err := os.Readlink(link)
			require.NoError(t, err)
			assert.Equal(t, target, got)
		})
	}
}

func TestRemoveSlot(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, removeSlot(filepath.Join(dir, "missing")))

	slot := filepath.Join(dir, "Core")
	require.NoError(t, os.MkdirAll(filepath.Join(slot, "ZZMI"), DirModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(slot, "ZZMI", "main.ini"), []byte("x"), FileModeDefault))
	require.NoError(t, removeSlot(slot))
	assert.NoDirExists(t, slot)
}

func TestRemoveIfSymlink(t *testing.T) {
	dir := t.TempDir()

	realDir := filepath.Join(dir, "ShaderFixes")
	require.NoError(t, os.MkdirAll(realDir, DirModeDefault))
	removed, err := RemoveIfSymlink(realDir)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.DirExists(t, realDir)

	link := filepath.Join(dir, "Mods")
	require.NoError(t, os.Symlink(realDir, link))
	removed, err = RemoveIfSymlink(link)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, Exists(link))
	assert.DirExists(t, realDir)

	removed, err = RemoveIfSymlink(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRemoveFileIfPresent(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "dxgi.dll")
	require.NoError(t, os.WriteFile(file, []byte("dll"), FileModeDefault))
	removed, err := RemoveFileIfPresent(file)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, file)

	removed, err = RemoveFileIfPresent(file)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = RemoveFileIfPresent(dir)
	assert.Error(t, err)
}
