package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/modlayer/pkg/download"
	mock_download "github.com/glorpus-work/modlayer/pkg/download/mocks"
	pkgerrors "github.com/glorpus-work/modlayer/pkg/errors"
)

func TestFetchManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(dxvkManifest))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "components", "dxvk.json")
	dl := download.NewManager(time.Second, "test", download.WithRetries(0))

	require.NoError(t, FetchManifest(context.Background(), dl, server.URL+"/dxvk.json", dest))

	v, err := Latest(dest)
	require.NoError(t, err)
	assert.Equal(t, "vanilla", v.Name)

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory must be removed")
}

func TestFetchManifest_InvalidKeepsPrevious(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	dest := writeManifest(t, dxvkManifest)
	dl := download.NewManager(time.Second, "test", download.WithRetries(0))

	require.Error(t, FetchManifest(context.Background(), dl, server.URL, dest))

	groups, err := ListGroups(dest)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestFetchManifest_DownloadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mock_download.NewMockManager(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return("", pkgerrors.ErrDownloadFailed)

	dest := filepath.Join(t.TempDir(), "dxvk.json")
	err := FetchManifest(context.Background(), dl, "https://example.invalid/dxvk.json", dest)
	assert.ErrorIs(t, err, pkgerrors.ErrDownloadFailed)
	assert.NoFileExists(t, dest)
}
