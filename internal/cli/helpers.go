package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/archive"
	"github.com/glorpus-work/modlayer/pkg/config"
	"github.com/glorpus-work/modlayer/pkg/download"
	"github.com/glorpus-work/modlayer/pkg/hook"
	"github.com/glorpus-work/modlayer/pkg/lock"
	"github.com/glorpus-work/modlayer/pkg/release"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.GetDefaultConfigPath()
}

// loadConfig loads the configuration, applies the global flags and sets up
// logging from the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	configureLogging(cfg)

	return cfg, nil
}

func jsonOutput(cfg *config.Config) bool {
	return cfg.Settings.OutputFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadDownloadManager(cfg *config.Config) download.Manager {
	return download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent,
		download.WithRetries(cfg.Settings.DownloadRetries))
}

func loadReleaseClient(cfg *config.Config) release.Fetcher {
	return release.NewClient(cfg.Settings.HTTPTimeout,
		release.WithUserAgent(cfg.Settings.UserAgent),
		release.WithToken(cfg.Settings.GitHubToken))
}

func loadEngine(cfg *config.Config) *syncer.Engine {
	engine := syncer.NewEngine(loadReleaseClient(cfg), loadDownloadManager(cfg), archive.NewManager())
	engine.Hooks = syncer.Hooks{OnEvent: func(e syncer.Event) {
		logger.Debug(e.Msg, logger.Fields{"phase": e.Phase, "kind": e.Kind})
	}}
	return engine
}

// loadScripts collects the launch hooks from the hooks dir and the config.
// Scripts named in the config replace those found in the directory.
func loadScripts(cfg *config.Config) (hook.Manager, error) {
	manager := hook.NewManager()
	if err := hook.LoadDir(manager, cfg.Paths().HooksDir); err != nil {
		return nil, err
	}
	if err := hook.LoadFiles(manager, cfg.Mods.Hooks); err != nil {
		return nil, err
	}
	return manager, nil
}

// acquireLock takes the feature lock for commands that modify state.
func acquireLock(cfg *config.Config) (*lock.Lock, error) {
	l, err := lock.Acquire(cfg.Paths().FeatureDir)
	if err != nil {
		return nil, fmt.Errorf("another modlayer process is running: %w", err)
	}
	return l, nil
}

func releaseLock(l *lock.Lock) {
	if err := l.Release(); err != nil {
		logger.Warn("Failed to release lock", logger.Fields{"path": l.Path(), "error": err.Error()})
	}
}

// selectPackages returns the configured packages, restricted to kinds when
// any are given.
func selectPackages(cfg *config.Config, kinds []string) ([]syncer.Package, error) {
	if len(kinds) == 0 {
		return cfg.SyncPackages(), nil
	}
	pkgs := make([]syncer.Package, 0, len(kinds))
	for _, kind := range kinds {
		pkg, ok := cfg.FindPackage(kind)
		if !ok {
			return nil, fmt.Errorf("unknown package kind %q", kind)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
