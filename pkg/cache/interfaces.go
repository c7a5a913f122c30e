package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
}

// CleanOptions specifies what to clean.
type CleanOptions struct {
	All      bool
	Archives bool // downloaded archives left in the cache dir
	Installs bool // extracted package dirs; the next sync re-downloads them
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	ArchiveFreed int64
	InstallFreed int64
	Removed      []string
}

// PackageInfo describes one package install dir.
type PackageInfo struct {
	Kind      string `json:"kind"`
	Directory string `json:"directory"`
	Tag       string `json:"tag,omitempty"`
	Size      int64  `json:"size"`
	Files     int    `json:"files"`
}

// Info represents cache information.
type Info struct {
	Directory    string        `json:"directory"`
	TotalSize    int64         `json:"total_size"`
	ArchiveSize  int64         `json:"archive_size"`
	ArchiveFiles int           `json:"archive_files"`
	Packages     []PackageInfo `json:"packages"`
}
