package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/internal/logger"
)

// NewCleanupCmd creates the cleanup command.
func NewCleanupCmd() *cobra.Command {
	var flags overlayFlags

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove the overlay from the game directory",
		Long: `Remove the overlay files and links placed by apply or launch. Real
directories found in a linked slot are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCleanup(cmd, &flags)
		},
	}

	flags.register(cmd, false)

	return cmd
}

func runCleanup(cmd *cobra.Command, flags *overlayFlags) error {
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

	if err := orch.Cleanup(cmd.Context(), opts); err != nil {
		return fmt.Errorf("failed to clean up overlay: %w", err)
	}

	logger.Success("Overlay removed", logger.Fields{"game_dir": opts.GameDir})
	return nil
}
