package cache

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

// DefaultManager implements the Manager interface for the download cache and
// the package install dirs.
type DefaultManager struct {
	directory string
	packages  []syncer.Package
}

// NewManager creates a new cache manager for the cache directory and the
// install dirs of pkgs.
func NewManager(directory string, pkgs []syncer.Package) *DefaultManager {
	return &DefaultManager{
		directory: directory,
		packages:  pkgs,
	}
}

// Clean removes cached files according to the specified options. Without
// any option set only leftover archives are removed.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	if cm.directory == "" {
		return nil, ErrCacheDirectory
	}
	if !options.All && !options.Archives && !options.Installs {
		options.Archives = true
	}

	result := &CleanResult{}

	if options.All || options.Archives {
		size, err := cleanDirectory(cm.directory, fsutil.DirModePrivate)
		if err != nil {
			return nil, errors.Wrap(ErrCacheClean, err.Error())
		}
		if size > 0 {
			result.Removed = append(result.Removed, cm.directory)
		}
		result.ArchiveFreed = size
		result.TotalFreed += size
	}

	if options.All || options.Installs {
		for _, pkg := range cm.packages {
			size, files, err := getDirSizeAndFiles(pkg.InstallDir)
			if err != nil {
				return nil, errors.Wrap(ErrCacheClean, err.Error())
			}
			if files == 0 && !fsutil.Exists(pkg.InstallDir) {
				continue
			}
			if err := os.RemoveAll(pkg.InstallDir); err != nil {
				return nil, errors.Wrap(ErrCacheClean, errors.NewFilesystemError("remove", pkg.InstallDir, err).Error())
			}
			logger.Debug("Removed package install", logger.Fields{"kind": pkg.Kind, "path": pkg.InstallDir})
			result.Removed = append(result.Removed, pkg.InstallDir)
			result.InstallFreed += size
			result.TotalFreed += size
		}
	}

	return result, nil
}

// GetInfo returns information about the cache.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	if cm.directory == "" {
		return nil, ErrCacheDirectory
	}
	info := &Info{
		Directory: cm.directory,
		Packages:  make([]PackageInfo, 0, len(cm.packages)),
	}

	size, files, err := getDirSizeAndFiles(cm.directory)
	if err != nil {
		return nil, errors.Wrap(ErrCacheInfo, err.Error())
	}
	info.ArchiveSize = size
	info.ArchiveFiles = files
	info.TotalSize = size

	for _, pkg := range cm.packages {
		size, files, err := getDirSizeAndFiles(pkg.InstallDir)
		if err != nil {
			return nil, errors.Wrap(ErrCacheInfo, err.Error())
		}
		tag, _ := pkg.Installed()
		info.Packages = append(info.Packages, PackageInfo{
			Kind:      pkg.Kind,
			Directory: pkg.InstallDir,
			Tag:       tag,
			Size:      size,
			Files:     files,
		})
		info.TotalSize += size
	}

	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// cleanDirectory empties dir and returns bytes freed.
func cleanDirectory(dir string, perm os.FileMode) (int64, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	totalSize, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}

	if err := os.MkdirAll(dir, perm); err != nil {
		return totalSize, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}

	return totalSize, nil
}

// getDirSizeAndFiles returns the total size in bytes and the number of
// files below dir. A missing dir counts as empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}
