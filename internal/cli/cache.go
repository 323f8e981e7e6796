package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/cache"
	"github.com/cperrin88/vpmsync/pkg/config"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the repository cache",
		Long:  "Clean, show information about, and locate the cached repository documents",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all     bool
		builtIn bool
		user    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the repository cache",
		Long: `Remove cached repository documents. Removed documents are downloaded
again the next time packages are listed.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCacheClean(all, builtIn, user)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean all cached documents")
	cmd.Flags().BoolVar(&builtIn, "builtin", false, "Clean only the official and curated repositories")
	cmd.Flags().BoolVar(&user, "user", false, "Clean only user repositories")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display size and file counts of the repository cache",
		RunE:  runCacheInfo,
	}

	return cmd
}

func newCacheDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the repository cache directory",
		RunE:  runCacheDir,
	}

	return cmd
}

func loadCacheManager() (*cache.DefaultManager, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg)

	return cache.NewManager(cfg.GetCacheDir()), cfg, nil
}

func runCacheClean(all, builtIn, user bool) error {
	manager, _, err := loadCacheManager()
	if err != nil {
		return err
	}

	msg, err := cache.NewOperation(manager).Clean(all, builtIn, user)
	if err != nil {
		return err
	}
	logger.Success("Cache cleaning completed")
	_, _ = fmt.Fprintln(stdout, msg)
	return nil
}

func runCacheInfo(*cobra.Command, []string) error {
	manager, cfg, err := loadCacheManager()
	if err != nil {
		return err
	}

	if jsonOutput(cfg) {
		info, err := manager.GetInfo()
		if err != nil {
			return err
		}
		return printJSON(info)
	}

	text, err := cache.NewOperation(manager).GetInfo()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, text)
	return nil
}

func runCacheDir(*cobra.Command, []string) error {
	manager, _, err := loadCacheManager()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(stdout, manager.RepositoryDirectory())
	return nil
}
