package cache

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/modlayer/internal/logger"
)

// Operation renders cache manager results for the command line.
type Operation struct {
	manager Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// Clean cleans the cache and describes what was freed.
func (op *Operation) Clean(all, archives, installs bool) (string, error) {
	options := CleanOptions{
		All:      all,
		Archives: archives,
		Installs: installs,
	}

	logger.Debug("Cleaning cache", logger.Fields{
		"all":      options.All,
		"archives": options.Archives,
		"installs": options.Installs,
	})

	result, err := op.manager.Clean(options)
	if err != nil {
		return "", fmt.Errorf("failed to clean cache: %w", err)
	}

	if result.TotalFreed == 0 && len(result.Removed) == 0 {
		return "No files were removed from the cache.", nil
	}

	msg := fmt.Sprintf("Successfully cleaned cache. Freed %s of disk space.", formatBytes(result.TotalFreed))
	if result.ArchiveFreed > 0 {
		msg += fmt.Sprintf("\n- Archives: %s", formatBytes(result.ArchiveFreed))
	}
	if result.InstallFreed > 0 {
		msg += fmt.Sprintf("\n- Packages: %s (next sync downloads them again)", formatBytes(result.InstallFreed))
	}
	return msg, nil
}

// GetInfo describes the cache and every package install dir.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cache Information:\n")
	fmt.Fprintf(&b, "  Directory:    %s\n", info.Directory)
	fmt.Fprintf(&b, "  Total Size:   %s\n", formatBytes(info.TotalSize))
	fmt.Fprintf(&b, "  Archives:     %s (%d files)\n", formatBytes(info.ArchiveSize), info.ArchiveFiles)
	for _, pkg := range info.Packages {
		tag := pkg.Tag
		if tag == "" {
			tag = "not installed"
		}
		fmt.Fprintf(&b, "  %-13s %s (%d files, %s)\n", pkg.Kind+":", formatBytes(pkg.Size), pkg.Files, tag)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// GetDirectory returns the cache directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.GetDirectory()
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
