//go:generate mockgen -destination=./mocks/release.go . Fetcher
// Package release reads GitHub-style "latest release" feeds and picks the
// asset a package kind is distributed as.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/glorpus-work/modlayer/pkg/errors"
)

// DefaultAssetSuffix is the file extension expected for release assets.
const DefaultAssetSuffix = ".zip"

// Fetcher resolves the latest release published at a feed URL.
type Fetcher interface {
	Latest(ctx context.Context, feedURL string) (*Release, error)
}

// Release is a published release: a tag plus its downloadable assets.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name,omitempty"`
	Assets  []Asset `json:"assets"`
}

// Asset is a single downloadable file of a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size,omitempty"`
}

// SelectAsset returns the first asset whose name starts with prefix and ends
// with suffix (DefaultAssetSuffix when empty). A release without a tag, an
// asset list or a matching asset yields ErrReleaseNotFound.
func (r *Release) SelectAsset(prefix, suffix string) (*Asset, error) {
	if suffix == "" {
		suffix = DefaultAssetSuffix
	}
	if r == nil || r.TagName == "" {
		return nil, fmt.Errorf("release has no tag: %w", errors.ErrReleaseNotFound)
	}
	if len(r.Assets) == 0 {
		return nil, fmt.Errorf("release %s has no assets: %w", r.TagName, errors.ErrReleaseNotFound)
	}
	for i := range r.Assets {
		asset := r.Assets[i]
		if strings.HasPrefix(asset.Name, prefix) && strings.HasSuffix(asset.Name, suffix) && asset.BrowserDownloadURL != "" {
			return &asset, nil
		}
	}
	return nil, fmt.Errorf("release %s has no asset matching %s*%s: %w", r.TagName, prefix, suffix, errors.ErrReleaseNotFound)
}
