//go:build !windows

package orchestrator

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLauncher_RunsInGameDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	gameDir := t.TempDir()
	var out bytes.Buffer

	l, err := NewCommandLauncher([]string{"sh", "-c", "pwd -P; echo $MODLAYER_TEST"})
	require.NoError(t, err)
	l.Stdout = &out
	l.Env = []string{"MODLAYER_TEST=set"}

	require.NoError(t, l.Run(context.Background(), gameDir))

	resolved, err := filepath.EvalSymlinks(gameDir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), resolved)
	assert.Contains(t, out.String(), "set")
}

func TestCommandLauncher_ExitError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	l, err := NewCommandLauncher([]string{"sh", "-c", "exit 3"})
	require.NoError(t, err)

	err = l.Run(context.Background(), t.TempDir())
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestNewCommandLauncher_Empty(t *testing.T) {
	_, err := NewCommandLauncher(nil)
	assert.Error(t, err)
	_, err = NewCommandLauncher([]string{""})
	assert.Error(t, err)
}
