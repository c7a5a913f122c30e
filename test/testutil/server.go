// Package testutil provides fixtures shared by the command tests.
package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/glorpus-work/modlayer/pkg/archive"
	"github.com/glorpus-work/modlayer/pkg/release"
)

// FeedServer serves GitHub-style latest-release documents and their zip
// assets for any number of feeds. A feed named "libs" is served at
// <URL>/libs/latest.
type FeedServer struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	releases map[string]release.Release
	assets   map[string][]byte
	hits     map[string]int
}

// NewFeedServer starts a FeedServer that is closed when the test ends.
func NewFeedServer(t *testing.T) *FeedServer {
	t.Helper()
	fs := &FeedServer{
		t:        t,
		releases: map[string]release.Release{},
		assets:   map[string][]byte{},
		hits:     map[string]int{},
	}
	fs.server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.server.Close)
	return fs
}

// FeedURL is the latest-release URL of feed.
func (fs *FeedServer) FeedURL(feed string) string {
	return fs.server.URL + "/" + feed + "/latest"
}

// URL is the base URL of the server.
func (fs *FeedServer) URL() string {
	return fs.server.URL
}

// Publish zips files and makes them the latest release of feed. The asset is
// named <prefix>-<tag>.zip.
func (fs *FeedServer) Publish(feed, prefix, tag string, files map[string]string) {
	fs.t.Helper()
	data := BuildZip(fs.t, files)
	name := prefix + "-" + tag + ".zip"

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.assets[feed+"/"+name] = data
	fs.releases[feed] = release.Release{
		TagName: tag,
		Assets: []release.Asset{{
			Name:               name,
			BrowserDownloadURL: fs.server.URL + "/" + feed + "/assets/" + name,
			Size:               int64(len(data)),
		}},
	}
}

// AssetHits is the number of asset downloads served for feed.
func (fs *FeedServer) AssetHits(feed string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[feed]
}

func (fs *FeedServer) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 3)
	if len(parts) < 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	feed := parts[0]

	switch {
	case parts[1] == "latest":
		rel, ok := fs.releases[feed]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rel)
	case parts[1] == "assets" && len(parts) == 3:
		data, ok := fs.assets[feed+"/"+parts[2]]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fs.hits[feed]++
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// BuildZip writes files under a temp dir and returns them zipped.
func BuildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("failed to create zip source: %v", err)
	}
	for name, content := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	zipPath := filepath.Join(t.TempDir(), "asset.zip")
	if err := archive.NewManager().Create(context.Background(), src, zipPath); err != nil {
		t.Fatalf("failed to build zip: %v", err)
	}
	data, err := os.ReadFile(zipPath)
	if err != nil {
		t.Fatalf("failed to read zip: %v", err)
	}
	return data
}
