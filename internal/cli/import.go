package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/cperrin88/vpmsync/pkg/repository"
)

// importReport is the JSON form of repo import.
type importReport struct {
	UnparseableLines []string                    `json:"unparseable_lines"`
	Results          []repository.BatchResult    `json:"results"`
	Added            []*model.ResolvedRepository `json:"added"`
}

func newRepoImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import repositories from a list",
		Long: `Import every repository listed in FILE.

Each line holds a repository URL followed by optional Name=Value headers
with percent-encoded values. Blank lines and lines starting with # are
skipped. All repositories are downloaded first; the new ones are then
added together, or none is added if any download fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepoImport(cmd, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only download and show what would be added")

	return cmd
}

func newProgressBar(total int, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Downloading repositories"),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func runRepoImport(cmd *cobra.Command, path string, dryRun bool) error {
	svc, cfg, err := loadService()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	list, err := svc.ImportPick(path)
	if err != nil {
		return err
	}
	report := importReport{UnparseableLines: list.UnparseableLines, Added: []*model.ResolvedRepository{}}
	if !jsonOutput(cfg) {
		for _, line := range list.UnparseableLines {
			_, _ = fmt.Fprintf(stdout, "Skipping unparseable line: %s\n", line)
		}
	}
	if len(list.Repositories) == 0 {
		if jsonOutput(cfg) {
			report.Results = []repository.BatchResult{}
			return printJSON(report)
		}
		_, _ = fmt.Fprintln(stdout, "No repositories to import")
		return nil
	}

	bar := newProgressBar(len(list.Repositories), os.Stderr)
	results, err := svc.ImportDownload(ctx, list.Repositories, repository.Hooks{
		OnProgress: func(done, _ int) {
			_ = bar.Set(done)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("failed to download repositories: %w", err)
	}
	report.Results = results

	var accepted []model.RepositoryDescriptor
	for _, res := range results {
		if res.Outcome.IsSuccess() {
			accepted = append(accepted, res.Descriptor)
		}
	}
	if !jsonOutput(cfg) {
		printImportResults(results)
	}

	if !dryRun && len(accepted) > 0 {
		added, err := svc.ImportAdd(ctx, accepted)
		if err != nil {
			return fmt.Errorf("failed to add repositories: %w", err)
		}
		report.Added = added
		logger.Success("Repositories imported", logger.Fields{"count": len(added)})
	}

	if jsonOutput(cfg) {
		return printJSON(report)
	}
	return nil
}

func printImportResults(results []repository.BatchResult) {
	for _, res := range results {
		target := ""
		if res.Descriptor.URL != nil {
			target = res.Descriptor.URL.String()
		}
		switch res.Outcome.Kind {
		case model.OutcomeSuccess:
			repo := res.Outcome.Repository
			_, _ = fmt.Fprintf(stdout, "  new        %s (%s, %d packages)\n", target, repo.DisplayName, len(repo.Packages))
		case model.OutcomeDuplicated:
			_, _ = fmt.Fprintf(stdout, "  duplicate  %s\n", target)
		case model.OutcomeDownloadError:
			_, _ = fmt.Fprintf(stdout, "  failed     %s: %s\n", target, res.Outcome.Message)
		default:
			_, _ = fmt.Fprintf(stdout, "  invalid    %s\n", target)
		}
	}
}
