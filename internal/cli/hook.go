package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
	"github.com/glorpus-work/modlayer/pkg/hook"
)

// NewHookCmd creates the hook command with subcommands.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage launch hook scripts",
		Long: `Launch hooks are Tengo scripts run around placing and removing the overlay.
Scripts named <type>.tengo in the hooks directory are picked up automatically.`,
	}

	cmd.AddCommand(
		newHookTemplateCmd(),
		newHookListCmd(),
	)

	return cmd
}

func newHookTemplateCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:       "template TYPE",
		Short:     "Print or write a starter script",
		Args:      cobra.ExactArgs(1),
		ValidArgs: hookTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookType, err := hook.ParseType(args[0])
			if err != nil {
				return err
			}
			if !write {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), hook.Template(hookType))
				return nil
			}
			return writeHookTemplate(hookType)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the script into the hooks directory")

	return cmd
}

func newHookListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show which hooks are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			scripts, err := loadScripts(cfg)
			if err != nil {
				return err
			}
			for _, t := range hook.Types {
				state := "-"
				if scripts.HasHook(t) {
					state = "configured"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", t, state)
			}
			return nil
		},
	}
}

func writeHookTemplate(hookType hook.Type) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Paths().HooksDir, string(hookType)+hook.FileExtension)
	if fsutil.Exists(path) {
		return fmt.Errorf("hook script already exists at %s", path)
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.NewFilesystemError("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(hook.Template(hookType)), fsutil.FileModeDefault); err != nil {
		return errors.NewFilesystemError("write", path, err)
	}
	logger.Success("Hook script created", logger.Fields{"path": path})
	return nil
}

func hookTypeNames() []string {
	names := make([]string, 0, len(hook.Types))
	for _, t := range hook.Types {
		names = append(names, string(t))
	}
	return names
}
