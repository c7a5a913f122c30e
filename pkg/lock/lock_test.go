package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "zzmi")

	l, err := Acquire(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), l.Path())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), fmt.Sprintf("pid=%d\n", os.Getpid()))

	require.NoError(t, l.Release())
	assert.NoFileExists(t, filepath.Join(dir, FileName))
	assert.NoError(t, l.Release(), "second release is a no-op")
}

func TestAcquire_HeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	l, err := Acquire(dir)
	require.NoError(t, err)
	defer func() { _ = l.Release() }()

	_, err = Acquire(dir)
	require.ErrorIs(t, err, ErrLocked)

	var held *HeldError
	require.ErrorAs(t, err, &held)
	assert.Equal(t, os.Getpid(), held.PID)
	assert.False(t, held.Acquired.IsZero())
	assert.Contains(t, err.Error(), "held by pid")
}

func TestAcquire_AfterRelease(t *testing.T) {
	dir := t.TempDir()
	l, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, l.Release())

	l2, err := Acquire(dir)
	require.NoError(t, err)
	assert.NoError(t, l2.Release())
}

func TestAcquire_OldLockWithoutHolderIsStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	old := time.Now().Add(-2 * StaleThreshold)
	require.NoError(t, os.Chtimes(path, old, old))

	l, err := Acquire(dir)
	require.NoError(t, err)
	assert.NoError(t, l.Release())
}

func TestAcquire_FreshLockWithoutHolderIsHeld(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("garbage"), 0o600))

	_, err := Acquire(dir)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestReadHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("pid=4242\ntimestamp=2026-10-15T08:30:00Z\nextra\n"), 0o600))

	held := readHolder(path)
	assert.Equal(t, 4242, held.PID)
	assert.Equal(t, time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC), held.Acquired)

	missing := readHolder(filepath.Join(t.TempDir(), "missing"))
	assert.Zero(t, missing.PID)
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}
