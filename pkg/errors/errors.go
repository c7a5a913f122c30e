// Package errors defines the error kinds shared by the modlayer packages and
// small helpers for wrapping errors with context.
package errors

import (
	"errors"
	"fmt"
)

// Component lifecycle errors.
var (
	// ErrIndexEmpty is returned when the component index has no groups or versions.
	ErrIndexEmpty = fmt.Errorf("component index is empty")

	// ErrGroupNotFound is returned by callers that need an error for a group lookup miss.
	ErrGroupNotFound = fmt.Errorf("component group not found")

	// ErrVersionNotFound is returned by callers that need an error for a version lookup miss.
	ErrVersionNotFound = fmt.Errorf("component version not found")

	// ErrReleaseNotFound is returned when the release feed has no tag or no matching asset.
	ErrReleaseNotFound = fmt.Errorf("release not found")

	// ErrDownloadFailed is returned when a remote asset could not be downloaded.
	ErrDownloadFailed = fmt.Errorf("download failed")

	// ErrExtractFailed is returned when a downloaded archive could not be unpacked.
	ErrExtractFailed = fmt.Errorf("extract failed")

	// ErrRequiredArtifactMissing is returned when the overlay source lacks a required artifact.
	ErrRequiredArtifactMissing = fmt.Errorf("required artifact missing")

	// ErrInvalidPath is returned for empty or relative paths where an absolute one is needed.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrFileHashMismatch is returned when a downloaded file does not match its checksum.
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrConfigUnknownKey  = fmt.Errorf("unknown configuration key")
)

// Hook errors.
var (
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// FilesystemError records the operation and path of a failed filesystem call.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface for FilesystemError.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for FilesystemError.
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// NewFilesystemError creates a FilesystemError, returning nil for a nil err.
func NewFilesystemError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind wraps cause under the sentinel kind so that both errors.Is(err, kind)
// and errors.Is(err, cause) hold.
func Kind(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
