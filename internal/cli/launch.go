package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/pkg/orchestrator"
)

// NewLaunchCmd creates the launch command.
func NewLaunchCmd() *cobra.Command {
	var flags overlayFlags

	cmd := &cobra.Command{
		Use:   "launch [flags] -- COMMAND [ARG...]",
		Short: "Apply the overlay, run the game and clean up",
		Long: `Sync the packages, place the overlay into the game directory, run COMMAND
with the game directory as working directory and remove the overlay once it
exits. The overlay is removed even when COMMAND fails. With mods disabled
COMMAND is run on its own.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, &flags, args)
		},
	}

	flags.register(cmd, true)

	return cmd
}

func runLaunch(cmd *cobra.Command, flags *overlayFlags, argv []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := flags.options(cfg)
	if err != nil {
		return err
	}
	launcher, err := orchestrator.NewCommandLauncher(argv)
	if err != nil {
		return err
	}
	launcher.Stdout = cmd.OutOrStdout()
	launcher.Stderr = cmd.ErrOrStderr()

	orch, err := loadOrchestrator(cfg)
	if err != nil {
		return err
	}

	l, err := acquireLock(cfg)
	if err != nil {
		return err
	}
	defer releaseLock(l)

	return orch.Launch(cmd.Context(), opts, launcher)
}
