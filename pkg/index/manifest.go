package index

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/glorpus-work/modlayer/pkg/download"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

// FetchManifest downloads a remote manifest to dest so it can be read like a
// static one. The previous file at dest stays in place until the download
// has been validated.
func FetchManifest(ctx context.Context, dl download.Manager, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrapf(err, "invalid manifest url %s", rawURL)
	}

	if err := fsutil.EnsureFileDir(dest); err != nil {
		return errors.Wrap(err, "failed to create manifest directory")
	}
	staging, err := os.MkdirTemp(filepath.Dir(dest), ".manifest-*")
	if err != nil {
		return errors.Wrap(err, "failed to create manifest staging directory")
	}
	defer func() { _ = os.RemoveAll(staging) }()

	absStaging, err := filepath.Abs(staging)
	if err != nil {
		return errors.Wrap(err, "failed to resolve manifest staging directory")
	}

	path, err := dl.Fetch(ctx, download.Item{ID: "components", URL: u, Filename: filepath.Base(dest)}, download.Options{Dir: absStaging})
	if err != nil {
		return errors.Wrap(err, "failed to fetch component index")
	}

	if _, err := LoadFile(path); err != nil {
		return err
	}

	return fsutil.Move(path, dest)
}
