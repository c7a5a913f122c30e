// Package config loads and saves the modlayer configuration file and derives
// every on-disk location from it. Components receive the resolved Paths
// rather than computing locations themselves, so tests can point a whole
// run at a temporary root.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
	"github.com/glorpus-work/modlayer/pkg/hook"
)

// AppName names the config and state directories.
const AppName = "modlayer"

// Config represents the application configuration.
type Config struct {
	Settings   Settings         `yaml:"settings"`
	Mods       ModsConfig       `yaml:"mods"`
	Packages   []PackageConfig  `yaml:"packages"`
	Components ComponentsConfig `yaml:"components"`
}

// Settings represents general application settings.
type Settings struct {
	// StateDir is the launcher state dir every feature lives under.
	StateDir string `yaml:"state_dir,omitempty"`
	// Feature names the subdirectory holding the packages, cache and mods.
	Feature string `yaml:"feature"`

	// Network settings
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	DownloadRetries int           `yaml:"download_retries"`
	UserAgent       string        `yaml:"user_agent"`
	GitHubToken     string        `yaml:"github_token,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error
}

// ModsConfig controls the overlay applied around a game launch.
type ModsConfig struct {
	Enabled bool `yaml:"enabled"`
	// SourceDir is searched for the overlay artifacts; defaults to the feature dir.
	SourceDir string `yaml:"source_dir,omitempty"`
	// ModsDir is linked into the game as Mods; defaults to <feature>/Mods.
	ModsDir string `yaml:"mods_dir,omitempty"`
	GameDir string `yaml:"game_dir,omitempty"`
	// Hooks maps a hook type to a Tengo script path.
	Hooks map[string]string `yaml:"hooks,omitempty"`
}

// PackageConfig describes one synced package kind.
type PackageConfig struct {
	Kind        string `yaml:"kind"`
	FeedURL     string `yaml:"feed_url"`
	AssetPrefix string `yaml:"asset_prefix"`
	AssetSuffix string `yaml:"asset_suffix,omitempty"`
	// Dir is the install dir name below the feature dir; defaults to Kind.
	Dir string `yaml:"dir,omitempty"`
}

// ComponentsConfig points at the version index of installable components.
type ComponentsConfig struct {
	// Index is a local path or an http(s) URL of the manifest.
	Index       string `yaml:"index,omitempty"`
	InstallRoot string `yaml:"install_root,omitempty"`
}

// Default configuration values.
const (
	DefaultFeature         = "zzmi"
	DefaultHTTPTimeout     = 60 * time.Second
	DefaultDownloadRetries = 3
	DefaultUserAgent       = "modlayer/1.0"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultPackages are the library and asset packages the overlay is built from.
func DefaultPackages() []PackageConfig {
	return []PackageConfig{
		{
			Kind:        "xxmi-libs",
			FeedURL:     "https://api.github.com/repos/SpectrumQT/XXMI-Libs-Package/releases/latest",
			AssetPrefix: "XXMI-PACKAGE",
			AssetSuffix: ".zip",
			Dir:         "xxmi-libs",
		},
		{
			Kind:        "zzmi-package",
			FeedURL:     "https://api.github.com/repos/SpectrumQT/ZZMI-Package/releases/latest",
			AssetPrefix: "ZZMI-PACKAGE",
			AssetSuffix: ".zip",
			Dir:         "zzmi-package",
		},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			StateDir:        filepath.Join(xdg.DataHome, AppName),
			Feature:         DefaultFeature,
			HTTPTimeout:     DefaultHTTPTimeout,
			DownloadRetries: DefaultDownloadRetries,
			UserAgent:       DefaultUserAgent,
			OutputFormat:    "text",
			LogLevel:        "info",
		},
		Packages: DefaultPackages(),
	}
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig writes the configuration to path atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	// The file may hold a GitHub token.
	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return []byte(b.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	if err := validatePackages(c.Packages); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	for name := range c.Mods.Hooks {
		if _, err := hook.ParseType(name); err != nil {
			return errors.Wrap(errors.ErrConfigValidation, err.Error())
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	if s.DownloadRetries < 0 {
		return fmt.Errorf("download_retries cannot be negative")
	}
	if !isPlainName(s.Feature) {
		return fmt.Errorf("feature %q must be a plain directory name", s.Feature)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return fmt.Errorf("invalid output_format '%s', must be one of: text, json", s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("invalid log_level '%s', must be one of: debug, info, warn, error", s.LogLevel)
	}
	return nil
}

func validatePackages(pkgs []PackageConfig) error {
	kinds := make(map[string]bool, len(pkgs))
	dirs := make(map[string]bool, len(pkgs))
	for i, pkg := range pkgs {
		switch {
		case pkg.Kind == "":
			return fmt.Errorf("package %d: kind cannot be empty", i)
		case pkg.FeedURL == "":
			return fmt.Errorf("package '%s': feed_url cannot be empty", pkg.Kind)
		case pkg.AssetPrefix == "":
			return fmt.Errorf("package '%s': asset_prefix cannot be empty", pkg.Kind)
		case !isPlainName(pkg.installDirName()):
			return fmt.Errorf("package '%s': dir must be a plain directory name", pkg.Kind)
		case kinds[pkg.Kind]:
			return fmt.Errorf("package '%s': duplicate kind", pkg.Kind)
		case dirs[pkg.installDirName()]:
			return fmt.Errorf("package '%s': dir %s is already used", pkg.Kind, pkg.installDirName())
		}
		kinds[pkg.Kind] = true
		dirs[pkg.installDirName()] = true
	}
	return nil
}

// isPlainName rejects names that would escape the feature dir or collide
// with the cache and mods dirs.
func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	return name != cacheDirName && name != modsDirName && name != hooksDirName
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.StateDir == "" {
		c.Settings.StateDir = defaults.Settings.StateDir
	}
	if c.Settings.Feature == "" {
		c.Settings.Feature = defaults.Settings.Feature
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.DownloadRetries == 0 {
		c.Settings.DownloadRetries = defaults.Settings.DownloadRetries
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	// An explicit empty list disables package sync; only an absent key gets the defaults.
	if c.Packages == nil {
		c.Packages = defaults.Packages
	}
	for i := range c.Packages {
		if c.Packages[i].AssetSuffix == "" {
			c.Packages[i].AssetSuffix = ".zip"
		}
	}
}
