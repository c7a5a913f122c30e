package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:   "wrapf nil error",
			format: "formatted: %s",
			args:   []interface{}{"test"},
		},
		{
			name:     "wrapf standard error",
			err:      errors.New("original error"),
			format:   "failed to sync %s",
			args:     []interface{}{"xxmi-libs"},
			expected: "failed to sync xxmi-libs: original error",
		},
		{
			name:     "wrapf with multiple args",
			err:      errors.New("original error"),
			format:   "failed to fetch %s after %d attempts",
			args:     []interface{}{"feed", 3},
			expected: "failed to fetch feed after 3 attempts: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrapf(tt.err, tt.format, tt.args...)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestKind(t *testing.T) {
	cause := errors.New("status 404")

	err := Kind(ErrReleaseNotFound, cause)
	assert.ErrorIs(t, err, ErrReleaseNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "release not found: status 404", err.Error())

	assert.Same(t, ErrDownloadFailed, Kind(ErrDownloadFailed, nil))
}

func TestFilesystemError(t *testing.T) {
	assert.NoError(t, NewFilesystemError("remove", "/tmp/x", nil))

	err := NewFilesystemError("symlink", "/game/Mods", fs.ErrExist)
	require.Error(t, err)
	assert.Equal(t, "failed to symlink /game/Mods: file already exists", err.Error())
	assert.ErrorIs(t, err, fs.ErrExist)

	var fsErr *FilesystemError
	require.True(t, As(err, &fsErr))
	assert.Equal(t, "symlink", fsErr.Op)
	assert.Equal(t, "/game/Mods", fsErr.Path)
	assert.True(t, Is(Wrap(err, "apply"), fs.ErrExist))
}
