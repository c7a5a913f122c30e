//go:generate mockgen -destination=./mocks/download.go . Manager
package download

import (
	"context"
	"net/url"
)

// Manager downloads remote files into a local directory.
type Manager interface {
	// Fetch downloads item into opts.Dir and returns the absolute local path.
	// The file is always downloaded in full; an existing file at the target
	// path is replaced only after the new content is complete.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item is one remote resource to download.
type Item struct {
	ID       string   // identifier used in log fields, e.g. the package kind
	URL      *url.URL // source URL
	Checksum string   // optional hex-encoded SHA-256; verified when set
	Filename string   // preferred filename; derived from the URL when empty
}

// Options control a single Fetch call.
type Options struct {
	Dir string // destination directory; must be absolute
}
