package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// NewRepoCmd creates the repo command with subcommands.
func NewRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage repositories",
		Long:  "Add, remove, list, import and export package repositories",
	}

	cmd.AddCommand(
		newRepoListCmd(),
		newRepoAddCmd(),
		newRepoRemoveCmd(),
		newRepoDownloadCmd(),
		newRepoImportCmd(),
		newRepoExportCmd(),
		newRepoHideCmd(),
		newRepoShowCmd(),
	)

	return cmd
}

func newRepoListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured repositories",
		Long:  "List the user repositories and the display preferences",
		RunE:  runRepoList,
	}

	return cmd
}

func newRepoAddCmd() *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:   "add URL",
		Short: "Add a repository",
		Long: `Download a repository and add it to the configuration.

Custom headers are sent with every request to the repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepoAdd(cmd, args[0], headers)
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Header sent to the repository as Name=Value (repeatable)")

	return cmd
}

func newRepoRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a repository",
		Long:  "Remove a repository by its id, or by its URL if it declares no id",
		Args:  cobra.ExactArgs(1),
		RunE:  runRepoRemove,
	}

	return cmd
}

func newRepoDownloadCmd() *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Preview a repository",
		Long:  "Download a repository and show its packages without adding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepoDownload(cmd, args[0], headers)
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Header sent to the repository as Name=Value (repeatable)")

	return cmd
}

func newRepoExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export repositories",
		Long:  "Write the user repositories as a repository list, to FILE or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRepoExport,
	}

	return cmd
}

func newRepoHideCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "hide [ID]",
		Short: "Hide a repository from package listings",
		Long:  "Hide the packages of a repository, or with --local the local user packages, from package listings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepoVisibility(cmd, args, local, true)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Hide local user packages")

	return cmd
}

func newRepoShowCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a hidden repository in package listings",
		Long:  "Undo repo hide for a repository, or with --local for the local user packages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepoVisibility(cmd, args, local, false)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Show local user packages")

	return cmd
}

// parseHeaders converts Name=Value flag values to headers.
func parseHeaders(values []string) (model.Headers, error) {
	var headers model.Headers
	for _, value := range values {
		name, val, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q (expected Name=Value)", value)
		}
		if _, exists := headers.Get(name); exists {
			return nil, fmt.Errorf("duplicate header %q", name)
		}
		headers.Set(strings.TrimSpace(name), val)
	}
	return headers, nil
}

func runRepoList(*cobra.Command, []string) error {
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}

	info, err := svc.RepositoriesInfo()
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}
	if jsonOutput(cfg) {
		return printJSON(info)
	}

	tabWriter := tabwriter.NewWriter(stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "ID\tNAME\tURL\tHIDDEN")
	for _, repo := range info.UserRepositories {
		hidden := ""
		for _, id := range info.HiddenUserRepositories {
			if id == repo.ID {
				hidden = "yes"
			}
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\n", repo.ID, repo.DisplayName, repo.URL, hidden)
	}
	_ = tabWriter.Flush()

	if info.HideLocalUserPackages {
		_, _ = fmt.Fprintln(stdout, "\nLocal user packages are hidden")
	}
	return nil
}

func runRepoAdd(cmd *cobra.Command, rawURL string, headerFlags []string) error {
	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return err
	}
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}

	result, err := svc.AddRepository(cmd.Context(), rawURL, headers)
	if err != nil {
		return fmt.Errorf("failed to add repository: %w", err)
	}
	if jsonOutput(cfg) {
		return printJSON(result)
	}

	switch result.Kind {
	case model.OutcomeBadURL:
		return fmt.Errorf("invalid repository URL: %s", rawURL)
	case model.OutcomeDuplicated:
		logger.Warn("Repository already added", logger.Fields{"url": rawURL})
	default:
		_, _ = fmt.Fprintf(stdout, "Added %s (%s) with %d packages\n",
			result.Repository.DisplayName, result.Repository.ID, len(result.Repository.Packages))
	}
	return nil
}

func runRepoRemove(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	removed, err := svc.RemoveRepository(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove repository '%s': %w", args[0], err)
	}
	if removed == 0 {
		return fmt.Errorf("repository '%s' not found", args[0])
	}
	logger.Success("Repository removed", logger.Fields{"id": args[0], "count": removed})
	return nil
}

func runRepoDownload(cmd *cobra.Command, rawURL string, headerFlags []string) error {
	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return err
	}
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}

	outcome, err := svc.DownloadRepository(cmd.Context(), rawURL, headers)
	if err != nil {
		return err
	}
	if jsonOutput(cfg) {
		return printJSON(outcome)
	}

	switch outcome.Kind {
	case model.OutcomeBadURL:
		return fmt.Errorf("invalid repository URL: %s", rawURL)
	case model.OutcomeDuplicated:
		_, _ = fmt.Fprintln(stdout, "Repository is already added")
	case model.OutcomeDownloadError:
		return fmt.Errorf("failed to download repository: %s", outcome.Message)
	default:
		printResolved(outcome.Repository)
	}
	return nil
}

func printResolved(repo *model.ResolvedRepository) {
	_, _ = fmt.Fprintf(stdout, "%s (%s)\n%s\n\n", repo.DisplayName, repo.ID, repo.URL)
	tabWriter := tabwriter.NewWriter(stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tVERSION\tDESCRIPTION")
	for _, pkg := range repo.Packages {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\n", pkg.Name, pkg.Version, truncate(pkg.Description, MaxDescriptionLength))
	}
	_ = tabWriter.Flush()
}

func runRepoExport(_ *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		list, err := svc.ExportRepositories()
		if err != nil {
			return fmt.Errorf("failed to export repositories: %w", err)
		}
		_, _ = fmt.Fprint(stdout, list)
		return nil
	}

	if err := svc.ExportRepositoriesTo(args[0]); err != nil {
		return fmt.Errorf("failed to export repositories: %w", err)
	}
	logger.Success("Repositories exported", logger.Fields{"path": args[0]})
	return nil
}

func runRepoVisibility(cmd *cobra.Command, args []string, local, hide bool) error {
	if local == (len(args) == 1) {
		return fmt.Errorf("expected either a repository id or --local")
	}
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch {
	case local:
		err = svc.SetHideLocalUserPackages(ctx, hide)
	case hide:
		err = svc.HideRepository(ctx, args[0])
	default:
		err = svc.ShowRepository(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to update display settings: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
