package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/modlayer/internal/logger"
	pkgerrors "github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

const (
	// DefaultUserAgent identifies modlayer to remote hosts.
	DefaultUserAgent = "modlayer/1.0"
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 3
	// DefaultBackoff is the delay before the first retry; it doubles per retry.
	DefaultBackoff = time.Second
)

// ManagerImpl is an HTTP download manager with retries and optional
// checksum verification.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   time.Duration
}

// Option configures a ManagerImpl.
type Option func(*ManagerImpl)

// WithRetries sets how many times a failed download is retried.
func WithRetries(n int) Option {
	return func(m *ManagerImpl) {
		if n >= 0 {
			m.retries = n
		}
	}
}

// WithBackoff sets the delay before the first retry.
func WithBackoff(d time.Duration) Option {
	return func(m *ManagerImpl) {
		m.backoff = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *ManagerImpl) {
		if c != nil {
			m.client = c
		}
	}
}

// NewManager creates a download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string, opts ...Option) *ManagerImpl {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	m := &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		retries:   DefaultRetries,
		backoff:   DefaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fetch downloads a single item and returns the path to the downloaded file.
// Failures are reported as ErrDownloadFailed.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %s: %w", opts.Dir, pkgerrors.ErrInvalidPath)
	}
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	if err := os.MkdirAll(opts.Dir, fsutil.DirModeDefault); err != nil {
		return "", pkgerrors.Kind(pkgerrors.ErrDownloadFailed, pkgerrors.Wrap(err, "could not create download dir"))
	}

	absPath := filepath.Join(opts.Dir, selectFilename(item))

	var lastErr error
	for attempt := 0; attempt <= m.retries; attempt++ {
		if attempt > 0 {
			delay := m.backoff * time.Duration(1<<uint(attempt-1))
			logger.Debug("Retrying download", logger.Fields{
				"id":      item.ID,
				"attempt": attempt,
				"delay":   delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", pkgerrors.Kind(pkgerrors.ErrDownloadFailed, ctx.Err())
			}
		}

		err := m.fetchOnce(ctx, item, absPath)
		if err == nil {
			return absPath, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryable(err) {
			break
		}
	}

	return "", pkgerrors.Kind(pkgerrors.ErrDownloadFailed, lastErr)
}

func (m *ManagerImpl) fetchOnce(ctx context.Context, item Item, absPath string) error {
	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, err := writeBodyToTemp(resp, absPath)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if item.Checksum != "" {
		ok, err := verifySHA256(tmpPath, item.Checksum)
		if err != nil {
			return err
		}
		if !ok {
			return &permanentError{err: fmt.Errorf("checksum mismatch for %s: %w", item.URL, pkgerrors.ErrFileHashMismatch)}
		}
	}
	return finalizeFile(tmpPath, absPath)
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, &permanentError{err: pkgerrors.Wrap(err, "failed to create request")}
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "request failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		statusErr := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, &permanentError{err: statusErr}
		}
		return nil, statusErr
	}
	return resp, nil
}

// permanentError marks failures that a retry cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var perm *permanentError
	return !errors.As(err, &perm)
}

func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	if base := path.Base(item.URL.Path); base != "" && base != "/" && base != "." {
		return base
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func writeBodyToTemp(resp *http.Response, absPath string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

func verifySHA256(path string, wantHex string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, pkgerrors.Wrap(err, "hashing")
	}
	return hex.EncodeToString(h.Sum(nil)) == normalizeHex(wantHex), nil
}

func normalizeHex(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
