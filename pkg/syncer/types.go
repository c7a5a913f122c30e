package syncer

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
)

// StampFile is the name of the installed-version stamp inside an install dir.
const StampFile = "version.json"

// Package describes one package kind: where its releases are published and
// where it lives on disk.
type Package struct {
	Kind        string // e.g. "xxmi-libs"
	FeedURL     string // latest-release document URL
	AssetPrefix string // required asset name prefix
	AssetSuffix string // required asset name suffix; ".zip" when empty
	InstallDir  string // durable install directory, holds the stamp
	CacheDir    string // transient download directory
}

// StampPath is the location of the package's stamp file.
func (p Package) StampPath() string {
	return filepath.Join(p.InstallDir, StampFile)
}

// Installed returns the stamped tag. A missing or unreadable stamp reports
// not installed.
func (p Package) Installed() (string, bool) {
	return readStamp(p.StampPath())
}

// ArchivePath is the cache location of the asset for tag.
func (p Package) ArchivePath(tag string) string {
	return filepath.Join(p.CacheDir, p.ArchiveName(tag))
}

// ArchiveName is the deterministic cache file name for tag.
func (p Package) ArchiveName(tag string) string {
	suffix := p.AssetSuffix
	if suffix == "" {
		suffix = ".zip"
	}
	safeTag := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(tag)
	return p.Kind + "-" + safeTag + suffix
}

// State is the outcome of a sync.
type State string

const (
	StateCurrent State = "current"
	StateUpdated State = "updated"
)

// Direction describes how an update moved the installed tag.
type Direction string

const (
	DirectionNone      Direction = ""
	DirectionInstall   Direction = "install"
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
	DirectionReinstall Direction = "reinstall"
	DirectionChange    Direction = "change"
)

// Result reports what EnsureCurrent did for one package.
type Result struct {
	Kind      string    `json:"kind"`
	Tag       string    `json:"tag"`
	Previous  string    `json:"previous,omitempty"`
	State     State     `json:"state"`
	Direction Direction `json:"direction,omitempty"`
	Path      string    `json:"path"`
}

// Status is a read-only comparison of the installed and the published tag.
type Status struct {
	Kind      string `json:"kind"`
	Installed string `json:"installed,omitempty"`
	Latest    string `json:"latest"`
	Asset     string `json:"asset"`
	UpToDate  bool   `json:"up_to_date"`
}

// Event is a progress notification.
type Event struct {
	Phase string // resolving|downloading|extracting|stamping|done|error
	Kind  string
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// directionOf compares the previous and new tags.
func directionOf(previous, next string) Direction {
	if previous == "" {
		return DirectionInstall
	}
	prev, errPrev := version.NewVersion(previous)
	cur, errCur := version.NewVersion(next)
	if errPrev != nil || errCur != nil {
		return DirectionChange
	}
	switch prev.Compare(cur) {
	case -1:
		return DirectionUpgrade
	case 1:
		return DirectionDowngrade
	default:
		return DirectionReinstall
	}
}
