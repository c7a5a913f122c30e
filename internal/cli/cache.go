package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/pkg/cache"
	"github.com/glorpus-work/modlayer/pkg/config"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
		Long:  "Clean, show information about, and locate the download cache and package installs",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all      bool
		archives bool
		installs bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the download cache",
		Long: `Remove leftover downloaded archives. With --installs the package install
directories are removed too, so the next sync downloads them again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClean(cmd, all, archives, installs)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean archives and package installs")
	cmd.Flags().BoolVar(&archives, "archives", false, "Clean only downloaded archives")
	cmd.Flags().BoolVar(&installs, "installs", false, "Clean only package install directories")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display the size of the download cache and of every package install",
		RunE:  runCacheInfo,
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.Paths().CacheDir)
			return nil
		},
	}
}

func loadCacheManager(cfg *config.Config) *cache.DefaultManager {
	return cache.NewManager(cfg.Paths().CacheDir, cfg.SyncPackages())
}

func runCacheClean(cmd *cobra.Command, all, archives, installs bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := acquireLock(cfg)
	if err != nil {
		return err
	}
	defer releaseLock(l)

	manager := loadCacheManager(cfg)
	if jsonOutput(cfg) {
		result, err := manager.Clean(cache.CleanOptions{All: all, Archives: archives, Installs: installs})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}

	msg, err := cache.NewOperation(manager).Clean(all, archives, installs)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager := loadCacheManager(cfg)
	if jsonOutput(cfg) {
		info, err := manager.GetInfo()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), info)
	}

	msg, err := cache.NewOperation(manager).GetInfo()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
