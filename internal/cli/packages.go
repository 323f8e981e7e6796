package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cperrin88/vpmsync/pkg/packages"
)

// packageList is the JSON form of packages list.
type packageList struct {
	Version  uint64           `json:"version"`
	Packages []packages.Entry `json:"packages"`
}

// NewPackagesCmd creates the packages command with subcommands.
func NewPackagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List available packages",
		Long:  "List the packages of every repository and the local user packages",
	}

	cmd.AddCommand(
		newPackagesListCmd(),
		newPackagesRefetchCmd(),
	)

	return cmd
}

func newPackagesListCmd() *cobra.Command {
	var (
		nameFilter string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages",
		Long: `List every package version known from the repositories and the
local user packages. Repositories are refetched when their cached copy is
older than the cache TTL.

Hidden repositories and hidden local packages are left out unless --all is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackagesList(cmd, nameFilter, all, false)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter packages by name (partial match)")
	cmd.Flags().BoolVar(&all, "all", false, "Include hidden repositories and local packages")

	return cmd
}

func newPackagesRefetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refetch",
		Short: "Refetch every repository",
		Long:  "Download every repository again and list the resulting packages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackagesList(cmd, "", false, true)
		},
	}

	return cmd
}

func runPackagesList(cmd *cobra.Command, nameFilter string, all, refetch bool) error {
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if refetch {
		if _, err := svc.RefetchPackages(ctx); err != nil {
			return fmt.Errorf("failed to refetch packages: %w", err)
		}
	}

	var (
		entries []packages.Entry
		version uint64
	)
	if all {
		snap, err := svc.Packages(ctx)
		if err != nil {
			return fmt.Errorf("failed to load packages: %w", err)
		}
		entries, version = snap.Entries, snap.Version
	} else {
		entries, version, err = svc.VisiblePackages(ctx)
		if err != nil {
			return err
		}
	}

	filtered := make([]packages.Entry, 0, len(entries))
	for _, entry := range entries {
		if nameFilter == "" || strings.Contains(entry.Manifest.Name, nameFilter) {
			filtered = append(filtered, entry)
		}
	}

	if jsonOutput(cfg) {
		return printJSON(packageList{Version: version, Packages: filtered})
	}
	if len(filtered) == 0 {
		_, _ = fmt.Fprintln(stdout, "No packages found")
		return nil
	}

	tabWriter := tabwriter.NewWriter(stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tVERSION\tSOURCE\tDESCRIPTION")
	for _, entry := range filtered {
		source := entry.Source.RepositoryName
		if entry.Source.Kind == packages.SourceLocalUser {
			source = entry.Source.Path
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\n",
			entry.Manifest.Name, entry.Manifest.Version, source, truncate(entry.Manifest.Description, MaxDescriptionLength))
	}
	_ = tabWriter.Flush()
	return nil
}
