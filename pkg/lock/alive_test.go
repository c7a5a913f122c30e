package lock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_DeadHolderIsStale(t *testing.T) {
	dir := t.TempDir()
	// Above any pid_max, so no such process exists.
	lockData := "pid=2147483000\ntimestamp=2026-10-15T08:30:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(lockData), 0o600))

	l, err := Acquire(dir)
	require.NoError(t, err)
	assert.NoError(t, l.Release())
}

func TestProcessAlive(t *testing.T) {
	alive, known := processAlive(os.Getpid())
	assert.True(t, known)
	assert.True(t, alive)
}

func TestProcessAlive_InvalidPID(t *testing.T) {
	_, known := processAlive(0)
	assert.False(t, known)
	_, known = processAlive(-1)
	assert.False(t, known)
}
