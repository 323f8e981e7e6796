package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/userpackage"
)

// NewUserPackageCmd creates the user-package command with subcommands.
func NewUserPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-package",
		Short: "Manage local user packages",
		Long:  "Add, remove and list packages that live in local directories",
	}

	cmd.AddCommand(
		newUserPackageListCmd(),
		newUserPackageAddCmd(),
		newUserPackageRemoveCmd(),
	)

	return cmd
}

func newUserPackageListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user packages",
		Long:  "List the configured local user packages",
		RunE:  runUserPackageList,
	}

	return cmd
}

func newUserPackageAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add DIR",
		Short: "Add a user package",
		Long:  "Add the package in DIR, which must contain a package.json",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserPackageAdd,
	}

	return cmd
}

func newUserPackageRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove DIR",
		Short: "Remove a user package",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserPackageRemove,
	}

	return cmd
}

func runUserPackageList(*cobra.Command, []string) error {
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}

	pkgs, err := svc.GetUserPackages()
	if err != nil {
		return err
	}
	if jsonOutput(cfg) {
		return printJSON(pkgs)
	}
	if len(pkgs) == 0 {
		_, _ = fmt.Fprintln(stdout, "No user packages")
		return nil
	}

	tabWriter := tabwriter.NewWriter(stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tVERSION\tPATH")
	for _, pkg := range pkgs {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", pkg.Manifest.Name, pkg.Manifest.Version, pkg.Path)
	}
	_ = tabWriter.Flush()
	return nil
}

// absPath makes a command line path absolute. Relative paths are resolved
// against the working directory.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func runUserPackageAdd(cmd *cobra.Command, args []string) error {
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}

	path := absPath(args[0])
	result, err := svc.AddUserPackage(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to add user package: %w", err)
	}
	if jsonOutput(cfg) {
		return printJSON(map[string]userpackage.AddResult{"result": result})
	}

	switch result {
	case userpackage.Success:
		logger.Success("User package added", logger.Fields{"path": path})
	case userpackage.AlreadyAdded:
		logger.Warn("User package already added", logger.Fields{"path": path})
	case userpackage.NonAbsolute:
		return fmt.Errorf("user package path must be absolute: %s", path)
	default:
		return fmt.Errorf("%w: %s", userpackage.ErrBadPackage, path)
	}
	return nil
}

func runUserPackageRemove(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	path := absPath(args[0])
	removed, err := svc.RemoveUserPackage(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to remove user package: %w", err)
	}
	if !removed {
		return fmt.Errorf("user package '%s' not found", path)
	}
	logger.Success("User package removed", logger.Fields{"path": path})
	return nil
}
