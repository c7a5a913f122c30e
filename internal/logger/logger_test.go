package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger(level, format)
	fn()
	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("package current") },
			contains: []string{"package current"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("dropping malformed version") },
			contains: []string{"dropping malformed version", "level=DEBUG"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("dropping malformed version") },
			excludes: []string{"dropping malformed version"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("sync failed") },
			contains: []string{"sync failed", "level=ERROR"},
		},
		{
			name:     "warn log with fields",
			level:    "warn",
			logFn:    func() { Warn("failed to remove cached archive", Fields{"kind": "xxmi-libs", "attempt": 2}) },
			contains: []string{"failed to remove cached archive", "level=WARN", "kind=xxmi-libs", "attempt=2"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("overlay applied") },
			contains: []string{"overlay applied", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("installed %s", "v0.9.1") },
			contains: []string{"installed v0.9.1"},
		},
		{
			name:     "formatted debug with fields",
			level:    "debug",
			logFn:    func() { DebugfWithFields(Fields{"depth": 1, "name": "Core"}, "searching level %d", 1) },
			contains: []string{"searching level 1", "depth=1", "name=Core"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	mu.Lock()
	logger = nil
	mu.Unlock()

	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestSetOutputFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	InitLogger("debug", FormatText)
	Info("test message 1")
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	SetOutputFormat(FormatJSON)
	Info("test message 2")
	assert.Contains(t, buf.String(), `"msg":"test message 2"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestSetLevel(t *testing.T) {
	output := captureOutput(t, "error", FormatText, func() {
		Info("hidden")
		SetLevel("info")
		Info("visible")
	})
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}

func TestJSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("sync finished", Fields{
			"kind":    "zzmi-package",
			"updated": true,
			"files":   42,
		})
	})

	assert.Contains(t, output, `"msg":"sync finished"`)
	assert.Contains(t, output, `"kind":"zzmi-package"`)
	assert.Contains(t, output, `"updated":true`)
	assert.Contains(t, output, `"files":42`)
}

func TestMergeFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []Fields
		expect []interface{}
	}{
		{
			name:   "no fields",
			expect: []interface{}{},
		},
		{
			name:   "sorted keys",
			fields: []Fields{{"tag": "v1", "kind": "xxmi-libs"}},
			expect: []interface{}{"kind", "xxmi-libs", "tag", "v1"},
		},
		{
			name:   "later maps win",
			fields: []Fields{{"path": "/a"}, {"path": "/b", "op": "copy"}},
			expect: []interface{}{"op", "copy", "path", "/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, mergeFields(tt.fields...))
		})
	}
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
