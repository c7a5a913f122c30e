package fsutil

import (
	"os"
	"path/filepath"
)

// DefaultMaxDepth bounds FindEntry when FindOptions.MaxDepth is zero.
const DefaultMaxDepth = 8

// EntryType selects what FindEntry accepts as a match.
type EntryType int

const (
	// AnyEntry matches files and directories.
	AnyEntry EntryType = iota
	// FileEntry matches only non-directories.
	FileEntry
	// DirEntry matches only directories, including symlinks to directories.
	DirEntry
)

// FindOptions tunes FindEntry.
type FindOptions struct {
	// MaxDepth limits how many directory levels below root are read.
	MaxDepth int
	// Exclude lists directories that are neither matched nor descended into.
	Exclude []string
}

type queued struct {
	path  string
	depth int
}

// FindEntry searches root breadth-first for an entry named name of the given
// type and returns its path. The shallowest match wins; within one level
// entries are visited in lexical order. Symlinked directories are followed
// once, tracked by their resolved path, so link cycles terminate.
// It returns "" with a nil error when nothing matches.
func FindEntry(root, name string, typ EntryType, opts FindOptions) (string, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		excluded[resolve(dir)] = struct{}{}
	}

	rootResolved := resolve(root)
	if _, err := os.Stat(rootResolved); err != nil {
		return "", err
	}

	visited := map[string]struct{}{rootResolved: {}}
	queue := []queued{{path: root, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(current.path)
		if err != nil {
			// unreadable subtrees are skipped, only the root must be readable
			if current.depth == 0 {
				return "", err
			}
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(current.path, entry.Name())

			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			resolved := resolve(path)
			if _, skip := excluded[resolved]; skip {
				continue
			}

			if entry.Name() == name && matchesType(info, typ) {
				return path, nil
			}
			if info.IsDir() {
				subdirs = append(subdirs, path)
			}
		}

		if current.depth+1 > maxDepth {
			continue
		}
		for _, dir := range subdirs {
			resolved := resolve(dir)
			if _, seen := visited[resolved]; seen {
				continue
			}
			visited[resolved] = struct{}{}
			queue = append(queue, queued{path: dir, depth: current.depth + 1})
		}
	}

	return "", nil
}

func matchesType(info os.FileInfo, typ EntryType) bool {
	switch typ {
	case FileEntry:
		return !info.IsDir()
	case DirEntry:
		return info.IsDir()
	default:
		return true
	}
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return filepath.Clean(abs)
}
