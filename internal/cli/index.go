package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/config"
	"github.com/glorpus-work/modlayer/pkg/errors"
	"github.com/glorpus-work/modlayer/pkg/fsutil"
	"github.com/glorpus-work/modlayer/pkg/index"
)

// NewComponentsCmd creates the components command with subcommands.
func NewComponentsCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "components",
		Short: "Query the component version index",
		Long: `Look up component groups and versions in the configured index. A remote
index is downloaded on first use and reused until --refresh is given.`,
	}

	cmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Download the remote index again")

	cmd.AddCommand(
		newComponentsListCmd(&refresh),
		newComponentsFindCmd(&refresh),
		newComponentsLatestCmd(&refresh),
		newComponentsInstalledCmd(&refresh),
	)

	return cmd
}

func newComponentsListCmd(refresh *bool) *cobra.Command {
	var sortTags bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every group and its versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := loadIndexSource(cmd.Context(), *refresh)
			if err != nil {
				return err
			}
			groups, err := index.ListGroups(source)
			if err != nil {
				return err
			}
			if sortTags {
				for i := range groups {
					groups[i].Versions = index.SortedByTag(groups[i].Versions)
				}
			}
			return printGroups(cmd.OutOrStdout(), cfg, groups)
		},
	}

	cmd.Flags().BoolVar(&sortTags, "sort-tags", false, "Order versions by tag, newest first, instead of index order")

	return cmd
}

func newComponentsFindCmd(refresh *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "find QUERY",
		Short: "Find a version by name or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadIndexSource(cmd.Context(), *refresh)
			if err != nil {
				return err
			}
			v, err := index.FindVersion(source, args[0])
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("%s: %w", args[0], errors.ErrVersionNotFound)
			}
			group, err := v.FindGroup(source)
			if err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), cfg, *v, group)
		},
	}
}

func newComponentsLatestCmd(refresh *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the newest version of the first group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := loadIndexSource(cmd.Context(), *refresh)
			if err != nil {
				return err
			}
			v, err := index.Latest(source)
			if err != nil {
				return err
			}
			group, err := v.FindGroup(source)
			if err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), cfg, v, group)
		},
	}
}

func newComponentsInstalledCmd(refresh *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "installed",
		Short: "List the versions present in the install root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := loadIndexSource(cmd.Context(), *refresh)
			if err != nil {
				return err
			}
			groups, err := index.Downloaded(source, cfg.Paths().ComponentsDir)
			if err != nil {
				return err
			}
			return printGroups(cmd.OutOrStdout(), cfg, groups)
		},
	}
}

// loadIndexSource returns the local manifest path, downloading a remote
// index when it is missing or refresh is set.
func loadIndexSource(ctx context.Context, refresh bool) (*config.Config, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.Components.Index == "" {
		return nil, "", fmt.Errorf("no component index configured: set components.index")
	}
	if !cfg.Components.IsRemoteIndex() {
		return cfg, cfg.Components.Index, nil
	}

	dest := cfg.Paths().IndexFile()
	if refresh || !fsutil.Exists(dest) {
		logger.Debug("Fetching component index", logger.Fields{"url": cfg.Components.Index, "path": dest})
		if err := index.FetchManifest(ctx, loadDownloadManager(cfg), cfg.Components.Index, dest); err != nil {
			return nil, "", err
		}
	}
	return cfg, dest, nil
}

func printGroups(w io.Writer, cfg *config.Config, groups []index.Group) error {
	if jsonOutput(cfg) {
		return printJSON(w, groups)
	}
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, "No components found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GROUP\tVERSION\tTAG")
	for _, g := range groups {
		for _, v := range g.Versions {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Name, v.Name, v.Version)
		}
	}
	return tw.Flush()
}

func printVersion(w io.Writer, cfg *config.Config, v index.Version, group *index.Group) error {
	features := v.EffectiveFeatures(group)
	if jsonOutput(cfg) {
		return printJSON(w, struct {
			index.Version
			Group    string         `json:"group,omitempty"`
			Features index.Features `json:"features"`
		}{Version: v, Group: groupName(group), Features: features})
	}

	_, _ = fmt.Fprintf(w, "Name:    %s\n", v.Name)
	_, _ = fmt.Fprintf(w, "Version: %s\n", v.Version)
	_, _ = fmt.Fprintf(w, "Group:   %s\n", groupName(group))
	_, _ = fmt.Fprintf(w, "URI:     %s\n", v.URI)
	if len(features.Env) > 0 {
		_, _ = fmt.Fprintln(w, "Env:")
		keys := make([]string, 0, len(features.Env))
		for k := range features.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  %s=%s\n", k, features.Env[k])
		}
	}
	return nil
}

func groupName(g *index.Group) string {
	if g == nil {
		return "-"
	}
	return g.Name
}
