package config

import (
	"path/filepath"
	"strings"

	"github.com/glorpus-work/modlayer/pkg/syncer"
)

const (
	cacheDirName = "cache"
	modsDirName  = "Mods"
	hooksDirName = "hooks"
)

// Paths holds every location derived from the configuration.
type Paths struct {
	StateDir   string
	FeatureDir string // <state>/<feature>
	CacheDir   string // <feature>/cache, transient downloads
	ModsDir    string // default <feature>/Mods
	SourceDir  string // overlay search root, default the feature dir
	HooksDir   string // <feature>/hooks, scripts named <hook-type>.tengo
	// ComponentsDir holds installed component versions and the fetched index.
	ComponentsDir string
}

// KindDir is the install dir of a package below the feature dir.
func (p Paths) KindDir(dir string) string {
	return filepath.Join(p.FeatureDir, dir)
}

// IndexFile is where a remote component index is stored.
func (p Paths) IndexFile() string {
	return filepath.Join(p.ComponentsDir, "index.json")
}

// Paths resolves the configured locations.
func (c *Config) Paths() Paths {
	feature := filepath.Join(c.Settings.StateDir, c.Settings.Feature)
	p := Paths{
		StateDir:      c.Settings.StateDir,
		FeatureDir:    feature,
		CacheDir:      filepath.Join(feature, cacheDirName),
		ModsDir:       filepath.Join(feature, modsDirName),
		SourceDir:     feature,
		HooksDir:      filepath.Join(feature, hooksDirName),
		ComponentsDir: filepath.Join(c.Settings.StateDir, "components"),
	}
	if c.Mods.ModsDir != "" {
		p.ModsDir = c.Mods.ModsDir
	}
	if c.Mods.SourceDir != "" {
		p.SourceDir = c.Mods.SourceDir
	}
	if c.Components.InstallRoot != "" {
		p.ComponentsDir = c.Components.InstallRoot
	}
	return p
}

// SyncPackages returns the configured packages ready for the sync engine.
func (c *Config) SyncPackages() []syncer.Package {
	paths := c.Paths()
	pkgs := make([]syncer.Package, 0, len(c.Packages))
	for _, pc := range c.Packages {
		pkgs = append(pkgs, syncer.Package{
			Kind:        pc.Kind,
			FeedURL:     pc.FeedURL,
			AssetPrefix: pc.AssetPrefix,
			AssetSuffix: pc.AssetSuffix,
			InstallDir:  paths.KindDir(pc.installDirName()),
			CacheDir:    paths.CacheDir,
		})
	}
	return pkgs
}

// FindPackage returns the package of the given kind.
func (c *Config) FindPackage(kind string) (syncer.Package, bool) {
	for _, pkg := range c.SyncPackages() {
		if pkg.Kind == kind {
			return pkg, true
		}
	}
	return syncer.Package{}, false
}

// IsRemoteIndex reports whether the component index is fetched over HTTP.
func (c ComponentsConfig) IsRemoteIndex() bool {
	return strings.HasPrefix(c.Index, "http://") || strings.HasPrefix(c.Index, "https://")
}

func (pc PackageConfig) installDirName() string {
	if pc.Dir != "" {
		return pc.Dir
	}
	return pc.Kind
}
