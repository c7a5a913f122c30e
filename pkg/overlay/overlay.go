// Package overlay places package artifacts into a game directory and removes
// them again. Nothing is recorded besides the files themselves: cleanup
// recomputes the slots from the same fixed layout that apply used.
package overlay

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

// Manager applies and cleans up the overlay.
type Manager struct {
	layout   []Entry
	maxDepth int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLayout replaces the default Layout.
func WithLayout(layout []Entry) Option {
	return func(m *Manager) {
		m.layout = layout
	}
}

// WithMaxDepth bounds the artifact search below the source root.
func WithMaxDepth(depth int) Option {
	return func(m *Manager) {
		m.maxDepth = depth
	}
}

// NewManager creates a Manager using Layout.
func NewManager(opts ...Option) *Manager {
	m := &Manager{layout: Layout, maxDepth: fsutil.DefaultMaxDepth}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Plan locates every layout artifact under sourceRoot. Optional artifacts
// that are not found are left out; a missing required one fails with
// ErrRequiredArtifactMissing. modsRoot is excluded from the search and is
// appended as the final Mods entry.
func (m *Manager) Plan(sourceRoot, modsRoot string) ([]Entry, error) {
	if sourceRoot == "" || modsRoot == "" {
		return nil, fmt.Errorf("source root and mods root are required: %w", errors.ErrInvalidPath)
	}

	opts := fsutil.FindOptions{MaxDepth: m.maxDepth, Exclude: []string{modsRoot}}
	entries := make([]Entry, 0, len(m.layout)+1)
	for _, artifact := range m.layout {
		typ := fsutil.FileEntry
		if artifact.IsDir() {
			typ = fsutil.DirEntry
		}
		path, err := fsutil.FindEntry(sourceRoot, artifact.Source, typ, opts)
		if err != nil {
			return nil, errors.NewFilesystemError("search", sourceRoot, err)
		}
		if path == "" {
			if artifact.Required {
				return nil, fmt.Errorf("%s not found under %s: %w", artifact.Source, sourceRoot, errors.ErrRequiredArtifactMissing)
			}
			logger.Debug("Optional artifact not found", logger.Fields{"artifact": artifact.Source, "root": sourceRoot})
			continue
		}
		entry := artifact
		entry.Source = path
		entries = append(entries, entry)
	}

	return append(entries, Entry{Source: modsRoot, Dest: ModsDest, Kind: PlaceSymlinkDir, Required: true}), nil
}

// Apply plans the overlay and places every entry into destRoot. Nothing in
// destRoot is touched when planning fails, and no entries are returned. The
// first placement error stops the placement; it is returned as a
// *errors.FilesystemError together with the entries touched so far, the
// failed one included.
func (m *Manager) Apply(sourceRoot, destRoot, modsRoot string) ([]Entry, error) {
	entries, err := m.Plan(sourceRoot, modsRoot)
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureDir(destRoot); err != nil {
		return nil, errors.NewFilesystemError("create", destRoot, err)
	}

	for i, entry := range entries {
		if entry.Dest == ModsDest {
			if err := fsutil.EnsureDir(modsRoot); err != nil {
				return entries[:i], errors.NewFilesystemError("create", modsRoot, err)
			}
		}
		if err := place(entry, filepath.Join(destRoot, entry.Dest)); err != nil {
			return entries[:i+1], err
		}
		logger.Debug("Placed artifact", logger.Fields{"dest": entry.Dest, "kind": string(entry.Kind)})
	}

	logger.Info("Overlay applied", logger.Fields{"path": destRoot, "entries": len(entries)})
	return entries, nil
}

func place(entry Entry, dest string) error {
	switch entry.Kind {
	case PlaceCopy:
		// A link left in the slot would make the copy write through it.
		if _, err := fsutil.RemoveFileIfPresent(dest); err != nil {
			return errors.NewFilesystemError("remove", dest, err)
		}
		if err := fsutil.Copy(entry.Source, dest); err != nil {
			return errors.NewFilesystemError("copy", dest, err)
		}
	case PlaceSymlinkFile, PlaceSymlinkDir:
		if err := fsutil.ReplaceWithSymlink(entry.Source, dest); err != nil {
			return errors.NewFilesystemError("link", dest, err)
		}
	default:
		return fmt.Errorf("unknown placement %q for %s", entry.Kind, entry.Dest)
	}
	return nil
}

// Cleanup removes every slot of the layout from destRoot. Files and file
// links are removed when present; folder slots are removed only when they
// are symlinks, so a real directory is never deleted. Every slot is
// attempted and all failures are returned together.
func (m *Manager) Cleanup(destRoot string) error {
	var result *multierror.Error
	removed := 0

	for _, slot := range Footprint(m.layout) {
		path := filepath.Join(destRoot, slot.Dest)

		var (
			ok  bool
			err error
		)
		if slot.IsDir() {
			ok, err = fsutil.RemoveIfSymlink(path)
			if !ok && err == nil && fsutil.Exists(path) {
				logger.Warn("Leaving non-link entry in place", logger.Fields{"path": path})
			}
		} else {
			ok, err = fsutil.RemoveFileIfPresent(path)
		}
		if err != nil {
			result = multierror.Append(result, errors.NewFilesystemError("remove", path, err))
			continue
		}
		if ok {
			removed++
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	logger.Info("Overlay removed", logger.Fields{"path": destRoot, "removed": removed})
	return nil
}
