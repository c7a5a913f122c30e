package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/config"
	"github.com/glorpus-work/modlayer/pkg/orchestrator"
	"github.com/glorpus-work/modlayer/pkg/overlay"
)

// overlayFlags are shared by apply, cleanup and launch.
type overlayFlags struct {
	gameDir    string
	skipSync   bool
	allowStale bool
}

func (f *overlayFlags) register(cmd *cobra.Command, withSync bool) {
	cmd.Flags().StringVar(&f.gameDir, "game-dir", "", "Game directory (defaults to mods.game_dir)")
	if withSync {
		cmd.Flags().BoolVar(&f.skipSync, "skip-sync", false, "Use the installed packages without checking for updates")
		cmd.Flags().BoolVar(&f.allowStale, "allow-stale", false, "Continue with installed packages when the sync fails")
	}
}

func (f *overlayFlags) options(cfg *config.Config) (orchestrator.Options, error) {
	paths := cfg.Paths()
	gameDir := f.gameDir
	if gameDir == "" {
		gameDir = cfg.Mods.GameDir
	}
	if gameDir == "" {
		return orchestrator.Options{}, fmt.Errorf("no game directory: pass --game-dir or set mods.game_dir")
	}
	return orchestrator.Options{
		GameDir:     gameDir,
		SourceDir:   paths.SourceDir,
		ModsDir:     paths.ModsDir,
		Packages:    cfg.SyncPackages(),
		ModsEnabled: cfg.Mods.Enabled,
		SkipSync:    f.skipSync,
		AllowStale:  f.allowStale,
	}, nil
}

func loadOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	scripts, err := loadScripts(cfg)
	if err != nil {
		return nil, err
	}
	return &orchestrator.Orchestrator{
		Syncer:  loadEngine(cfg),
		Overlay: overlay.NewManager(),
		Scripts: scripts,
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			logger.Debug(e.Msg, logger.Fields{"phase": e.Phase})
		}},
	}, nil
}

// NewApplyCmd creates the apply command.
func NewApplyCmd() *cobra.Command {
	var flags overlayFlags

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Sync packages and place the overlay into the game directory",
		Long: `Bring the packages up to date and place the overlay files and links into the
game directory, as done before a launch. Use cleanup to remove them again.
The overlay is applied even when mods are disabled in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, &flags)
		},
	}

	flags.register(cmd, true)

	return cmd
}

func runApply(cmd *cobra.Command, flags *overlayFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg)
	if err != nil {
		return err
	}
	opts.ModsEnabled = true

	orch, err := loadOrchestrator(cfg)
	if err != nil {
		return err
	}

	l, err := acquireLock(cfg)
	if err != nil {
		return err
	}
	defer releaseLock(l)

	result, err := orch.Prepare(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if jsonOutput(cfg) {
		return printJSON(cmd.OutOrStdout(), result)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DEST\tKIND\tSOURCE")
	for _, e := range result.Applied {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Dest, e.Kind, e.Source)
	}
	return tw.Flush()
}
