package fsutil

import (
	"fmt"
	"os"
)

// IsSymlink reports whether path itself is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// removeSlot removes whatever occupies path: a file, a symlink, or a real
// directory with its contents. A missing path is not an error.
func removeSlot(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// ReplaceWithSymlink points link at target, replacing anything already at
// link. A real directory at link is deleted recursively, unlike
// RemoveIfSymlink which never touches one.
func ReplaceWithSymlink(target, link string) error {
	if err := removeSlot(link); err != nil {
		return fmt.Errorf("failed to clear %s: %w", link, err)
	}
	if err := EnsureFileDir(link); err != nil {
		return err
	}
	return os.Symlink(target, link)
}

// RemoveIfSymlink removes path only when it is a symbolic link. It reports
// whether something was removed. Real files and directories are left alone.
func RemoveIfSymlink(path string) (bool, error) {
	if !IsSymlink(path) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFileIfPresent removes the file or link at path. A missing path is
// not an error; a directory is refused.
func RemoveFileIfPresent(path string) (bool, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}
