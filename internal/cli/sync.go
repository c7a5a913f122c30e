package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/syncer"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [KIND...]",
		Short: "Bring packages to their latest release",
		Long: `Check each configured package feed for its latest release and replace the
installed package when the published tag differs from the installed one.
Without arguments every configured package is synced.`,
		RunE: runSync,
	}

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pkgs, err := selectPackages(cfg, args)
	if err != nil {
		return err
	}

	l, err := acquireLock(cfg)
	if err != nil {
		return err
	}
	defer releaseLock(l)

	results, err := loadEngine(cfg).EnsureAll(cmd.Context(), pkgs)
	if err != nil {
		return fmt.Errorf("failed to sync packages: %w", err)
	}

	if jsonOutput(cfg) {
		return printJSON(cmd.OutOrStdout(), results)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tTAG\tSTATE\tCHANGE")
	for _, r := range results {
		change := string(r.Direction)
		if r.State == syncer.StateCurrent {
			change = "-"
		} else if r.Previous != "" {
			change = fmt.Sprintf("%s from %s", r.Direction, r.Previous)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Kind, r.Tag, r.State, change)
	}
	_ = tw.Flush()

	logger.Success("Packages synchronized", logger.Fields{"count": len(results)})
	return nil
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status [KIND...]",
		Short: "Show installed and published package versions",
		Long: `Compare the installed tag of each package with the latest published one.
Nothing is downloaded or written. Use --offline to only report installed tags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, offline)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not query the release feeds")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string, offline bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pkgs, err := selectPackages(cfg, args)
	if err != nil {
		return err
	}

	engine := loadEngine(cfg)
	statuses := make([]syncer.Status, 0, len(pkgs))
	for _, pkg := range pkgs {
		installed, _ := pkg.Installed()
		if offline {
			statuses = append(statuses, syncer.Status{Kind: pkg.Kind, Installed: installed})
			continue
		}
		status, err := engine.Check(cmd.Context(), pkg)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", pkg.Kind, err)
		}
		statuses = append(statuses, status)
	}

	if jsonOutput(cfg) {
		return printJSON(cmd.OutOrStdout(), statuses)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KIND\tINSTALLED\tLATEST\tSTATUS")
	for _, s := range statuses {
		installed := s.Installed
		if installed == "" {
			installed = "-"
		}
		latest, state := s.Latest, "up to date"
		switch {
		case offline:
			latest, state = "-", "unknown"
		case s.Installed == "":
			state = "not installed"
		case !s.UpToDate:
			state = "update available"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Kind, installed, latest, state)
	}
	return tw.Flush()
}
