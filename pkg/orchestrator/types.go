//go:generate mockgen -destination=./mocks/orchestrator.go . PackageSyncer,Overlay,Launcher

package orchestrator

import (
	"context"

	"github.com/glorpus-work/modlayer/pkg/overlay"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

// PackageSyncer is the subset of the sync engine used by the orchestrator.
type PackageSyncer interface {
	EnsureAll(ctx context.Context, pkgs []syncer.Package) ([]syncer.Result, error)
}

// Overlay places and removes the overlay in the game dir.
type Overlay interface {
	Apply(sourceRoot, destRoot, modsRoot string) ([]overlay.Entry, error)
	Cleanup(destRoot string) error
}

// Launcher runs the game and blocks until it exits.
type Launcher interface {
	Run(ctx context.Context, gameDir string) error
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // syncing|applying|running|cleaning|done|error
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options describe one prepare/launch/cleanup cycle.
type Options struct {
	GameDir   string
	SourceDir string
	ModsDir   string
	Packages  []syncer.Package

	// ModsEnabled false skips sync and overlay entirely.
	ModsEnabled bool
	// SkipSync applies whatever is installed without contacting the feeds.
	SkipSync bool
	// AllowStale continues with the installed packages when the sync fails
	// and every package has been installed before.
	AllowStale bool
}

// PrepareResult reports what Prepare did.
type PrepareResult struct {
	Synced  []syncer.Result `json:"synced,omitempty"`
	Applied []overlay.Entry `json:"applied,omitempty"`
	// SyncError is set when a sync failure was tolerated through AllowStale.
	SyncError error `json:"-"`
}
