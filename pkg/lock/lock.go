// Package lock serializes sync and launch runs that share a feature dir.
package lock

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

// FileName is the lock file created inside the locked dir.
const FileName = "modlayer.lock"

// StaleThreshold is how old a lock must be before it is broken when the
// holder cannot be checked.
const StaleThreshold = 10 * time.Minute

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = fmt.Errorf("another modlayer process is running")

// HeldError describes the current holder of a lock.
type HeldError struct {
	Path     string
	PID      int
	Acquired time.Time
}

// Error implements the error interface for HeldError.
func (e *HeldError) Error() string {
	if e.PID == 0 {
		return fmt.Sprintf("%s: lock %s is held", ErrLocked, e.Path)
	}
	return fmt.Sprintf("%s: lock %s is held by pid %d since %s", ErrLocked, e.Path, e.PID, e.Acquired.Format(time.RFC3339))
}

// Unwrap returns ErrLocked.
func (e *HeldError) Unwrap() error {
	return ErrLocked
}

// Lock is an acquired lock file.
type Lock struct {
	path string
	file *os.File
}

// Acquire creates the lock file in dir. A lock left behind by a dead process
// is removed and acquisition retried once.
func Acquire(dir string) (*Lock, error) {
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, errors.NewFilesystemError("create", dir, err)
	}
	path := filepath.Join(dir, FileName)

	file, err := create(path)
	if os.IsExist(err) {
		held := readHolder(path)
		if !isStale(path, held) {
			return nil, held
		}
		logger.Warn("Removing stale lock", logger.Fields{"path": path, "pid": held.PID})
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, errors.NewFilesystemError("remove", path, err)
		}
		file, err = create(path)
		if os.IsExist(err) {
			return nil, readHolder(path)
		}
	}
	if err != nil {
		return nil, errors.NewFilesystemError("create", path, err)
	}

	data := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(data); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, errors.NewFilesystemError("write", path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, errors.NewFilesystemError("sync", path, err)
	}

	logger.Debug("Lock acquired", logger.Fields{"path": path})
	return &Lock{path: path, file: file}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	if l.path == "" {
		return nil
	}
	path := l.path
	l.path = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewFilesystemError("remove", path, err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, fsutil.FileModeSecure)
}

// readHolder parses the pid and timestamp of an existing lock. Missing or
// garbled fields are left zero.
func readHolder(path string) *HeldError {
	held := &HeldError{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return held
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		switch key {
		case "pid":
			held.PID, _ = strconv.Atoi(value)
		case "timestamp":
			held.Acquired, _ = time.Parse(time.RFC3339, value)
		}
	}
	return held
}

// isStale reports whether the lock can be broken: its holder is known to be
// gone, or it cannot be checked and the lock is older than StaleThreshold.
func isStale(path string, held *HeldError) bool {
	if held.PID > 0 {
		if alive, known := processAlive(held.PID); known {
			return !alive
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return time.Since(info.ModTime()) > StaleThreshold
}
