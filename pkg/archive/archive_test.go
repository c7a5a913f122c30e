package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestArchiveManager_RoundTrip(t *testing.T) {
	testFiles := map[string]string{
		"d3d11.dll":             "injector",
		"d3dx.ini":              "[Loader]",
		"Core/ZZMI/main.ini":    "core",
		"ShaderFixes/help.ini":  "fixes",
		"Core/ZZMI/nested/a.hl": "deep",
	}

	for _, name := range []string{"pkg.zip", "pkg.tar.gz", "pkg.tar"} {
		t.Run(name, func(t *testing.T) {
			tempDir := t.TempDir()
			sourceDir := filepath.Join(tempDir, "source")
			writeTree(t, sourceDir, testFiles)

			am := NewManager()
			ctx := context.Background()
			archivePath := filepath.Join(tempDir, "out", name)
			require.NoError(t, am.Create(ctx, sourceDir, archivePath))
			require.FileExists(t, archivePath)

			extractDir := filepath.Join(tempDir, "extracted")
			require.NoError(t, am.ExtractAll(ctx, archivePath, extractDir))

			for path, expected := range testFiles {
				content, err := os.ReadFile(filepath.Join(extractDir, path))
				require.NoError(t, err, path)
				assert.Equal(t, expected, string(content))
			}
		})
	}
}

func TestArchiveManager_ExtractAll_InvalidArchive(t *testing.T) {
	tempDir := t.TempDir()
	bogus := filepath.Join(tempDir, "broken.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("this is not an archive"), 0o644))

	err := NewManager().ExtractAll(context.Background(), bogus, filepath.Join(tempDir, "out"))
	assert.Error(t, err)
}

func TestArchiveManager_ExtractAll_Cancelled(t *testing.T) {
	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	writeTree(t, sourceDir, map[string]string{"a.txt": "a", "b/c.txt": "c"})

	am := NewManager()
	archivePath := filepath.Join(tempDir, "pkg.zip")
	require.NoError(t, am.Create(context.Background(), sourceDir, archivePath))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, am.ExtractAll(ctx, archivePath, filepath.Join(tempDir, "out")))
}

func TestWithin(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "install", "xxmi-libs")

	tests := []struct {
		path     string
		expected bool
	}{
		{path: filepath.Join(root, "Core"), expected: true},
		{path: root, expected: true},
		{path: filepath.Join(root, "..", "escape"), expected: false},
		{path: filepath.Join(root, "..xx"), expected: true},
		{path: filepath.Join(string(filepath.Separator), "etc", "passwd"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, within(root, tt.path))
		})
	}
}

func TestArchiveManager_ExtractAll_PlainFile(t *testing.T) {
	tempDir := t.TempDir()
	plain := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("plain text"), 0o644))

	err := NewManager().ExtractAll(context.Background(), plain, filepath.Join(tempDir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a supported archive")
}
