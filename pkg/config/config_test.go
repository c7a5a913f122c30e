package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultDownloadRetries, cfg.Settings.DownloadRetries)
	assert.Equal(t, DefaultFeature, cfg.Settings.Feature)
	assert.True(t, strings.HasSuffix(cfg.Settings.StateDir, AppName))
	require.Len(t, cfg.Packages, 2)
	assert.Equal(t, "xxmi-libs", cfg.Packages[0].Kind)
	assert.Equal(t, "XXMI-PACKAGE", cfg.Packages[0].AssetPrefix)
	assert.Equal(t, "zzmi-package", cfg.Packages[1].Kind)
	assert.False(t, cfg.Mods.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  state_dir: ` + tempDir + `
  log_level: debug
  http_timeout: 5s
mods:
  enabled: true
  game_dir: /games/ZenlessZoneZero Game
  hooks:
    pre-apply: /scripts/check.tengo
packages:
  - kind: xxmi-libs
    feed_url: https://api.github.com/repos/SpectrumQT/XXMI-Libs-Package/releases/latest
    asset_prefix: XXMI-PACKAGE
components:
  index: https://example.com/dxvk.json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultFeature, cfg.Settings.Feature)
	assert.Equal(t, DefaultUserAgent, cfg.Settings.UserAgent)
	assert.True(t, cfg.Mods.Enabled)
	assert.Equal(t, "/games/ZenlessZoneZero Game", cfg.Mods.GameDir)
	assert.Equal(t, "/scripts/check.tengo", cfg.Mods.Hooks["pre-apply"])
	require.Len(t, cfg.Packages, 1)
	assert.Equal(t, ".zip", cfg.Packages[0].AssetSuffix)
	assert.True(t, cfg.Components.IsRemoteIndex())
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_ExplicitEmptyPackages(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("packages: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Packages)
	assert.Empty(t, cfg.SyncPackages())
}

func TestLoadConfigFromReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"malformed yaml", "settings: [", errors.ErrConfigParse},
		{"bad log level", "settings:\n  log_level: trace\n", errors.ErrConfigValidation},
		{"bad output format", "settings:\n  output_format: table\n", errors.ErrConfigValidation},
		{"negative timeout", "settings:\n  http_timeout: -1s\n", errors.ErrConfigValidation},
		{"feature escapes", "settings:\n  feature: ../zzmi\n", errors.ErrConfigValidation},
		{"unknown hook", "mods:\n  hooks:\n    pre-install: x.tengo\n", errors.ErrConfigValidation},
		{"package without kind", "packages:\n  - feed_url: https://x\n    asset_prefix: X\n", errors.ErrConfigValidation},
		{"package without prefix", "packages:\n  - kind: a\n    feed_url: https://x\n", errors.ErrConfigValidation},
		{"duplicate kind", "packages:\n  - {kind: a, feed_url: https://x, asset_prefix: X}\n  - {kind: a, feed_url: https://y, asset_prefix: Y}\n", errors.ErrConfigValidation},
		{"shared dir", "packages:\n  - {kind: a, feed_url: https://x, asset_prefix: X, dir: libs}\n  - {kind: b, feed_url: https://y, asset_prefix: Y, dir: libs}\n", errors.ErrConfigValidation},
		{"dir is cache", "packages:\n  - {kind: a, feed_url: https://x, asset_prefix: X, dir: cache}\n", errors.ErrConfigValidation},
		{"dir with separator", "packages:\n  - {kind: a, feed_url: https://x, asset_prefix: X, dir: a/b}\n", errors.ErrConfigValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tc.content))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.GitHubToken = "ghp_secret"
	cfg.Mods.Enabled = true
	cfg.Mods.Hooks = map[string]string{"post-cleanup": "/scripts/post.tengo"}

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fsutil.FileModeSecure), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, DefaultConfig().SaveConfig(""), errors.ErrEmptyConfigPath)
}

func TestToYAML(t *testing.T) {
	data, err := DefaultConfig().ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "settings:\n  state_dir:")
	assert.Contains(t, string(data), "asset_prefix: XXMI-PACKAGE")
	assert.NotContains(t, string(data), "github_token")
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.StateDir = "/state"

	p := cfg.Paths()
	assert.Equal(t, filepath.Join("/state", "zzmi"), p.FeatureDir)
	assert.Equal(t, filepath.Join("/state", "zzmi", "cache"), p.CacheDir)
	assert.Equal(t, filepath.Join("/state", "zzmi", "Mods"), p.ModsDir)
	assert.Equal(t, p.FeatureDir, p.SourceDir)
	assert.Equal(t, filepath.Join("/state", "zzmi", "hooks"), p.HooksDir)
	assert.Equal(t, filepath.Join("/state", "components", "index.json"), p.IndexFile())
	assert.Equal(t, filepath.Join("/state", "zzmi", "xxmi-libs"), p.KindDir("xxmi-libs"))

	cfg.Mods.ModsDir = "/mods"
	cfg.Mods.SourceDir = "/src"
	cfg.Components.InstallRoot = "/dxvk"
	p = cfg.Paths()
	assert.Equal(t, "/mods", p.ModsDir)
	assert.Equal(t, "/src", p.SourceDir)
	assert.Equal(t, "/dxvk", p.ComponentsDir)
}

func TestSyncPackages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.StateDir = "/state"
	cfg.Packages = append(cfg.Packages, PackageConfig{
		Kind:        "extra",
		FeedURL:     "https://api.github.com/repos/o/r/releases/latest",
		AssetPrefix: "EXTRA",
	})

	pkgs := cfg.SyncPackages()
	require.Len(t, pkgs, 3)
	assert.Equal(t, filepath.Join("/state", "zzmi", "xxmi-libs"), pkgs[0].InstallDir)
	assert.Equal(t, filepath.Join("/state", "zzmi", "cache"), pkgs[0].CacheDir)
	assert.Equal(t, filepath.Join("/state", "zzmi", "extra"), pkgs[2].InstallDir, "dir defaults to the kind")

	pkg, ok := cfg.FindPackage("zzmi-package")
	require.True(t, ok)
	assert.Equal(t, "ZZMI-PACKAGE", pkg.AssetPrefix)
	_, ok = cfg.FindPackage("missing")
	assert.False(t, ok)
}

func TestSetAndGetValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"log_level", "debug", "debug"},
		{"output_format", "json", "json"},
		{"http_timeout", "90s", "1m30s"},
		{"download_retries", "5", "5"},
		{"user_agent", "sleepy-launcher", "sleepy-launcher"},
		{"feature", "gimi", "gimi"},
		{"mods.enabled", "true", "true"},
		{"mods.game_dir", "/games/zzz", "/games/zzz"},
		{"mods.source_dir", "/src", "/src"},
		{"mods.mods_dir", "/mods", "/mods"},
		{"components.index", "/idx.json", "/idx.json"},
		{"components.install_root", "/dxvk", "/dxvk"},
		{"state_dir", "/state", "/state"},
		{"github_token", "ghp", "ghp"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.SetValue(tc.key, tc.value))
			got, err := cfg.GetValue(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetValue_Errors(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.SetValue("color_output", "true"), errors.ErrConfigUnknownKey)
	assert.Error(t, cfg.SetValue("mods.enabled", "maybe"))
	assert.Error(t, cfg.SetValue("http_timeout", "soon"))
	assert.Error(t, cfg.SetValue("download_retries", "many"))
	assert.ErrorIs(t, cfg.SetValue("log_level", "trace"), errors.ErrConfigValidation)

	_, err := cfg.GetValue("color_output")
	assert.ErrorIs(t, err, errors.ErrConfigUnknownKey)
}

func TestToMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.GitHubToken = "ghp_secret"

	m := cfg.ToMap()
	assert.Len(t, m, len(Keys))
	assert.Equal(t, "info", m["log_level"])
	assert.Equal(t, "********", m["github_token"])
	assert.Equal(t, "false", m["mods.enabled"])
}
