package environment

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/config"
	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/fsutil"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/cperrin88/vpmsync/pkg/repository"
)

// ImportPick parses the repository list file at path.
func (s *Service) ImportPick(path string) (*repository.ImportList, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open repository list %s", path)
	}
	defer func() { _ = file.Close() }()
	return repository.ParseList(file)
}

// ImportDownload fetches every descriptor for preview and classifies each
// one. Nothing is recorded.
func (s *Service) ImportDownload(ctx context.Context, descriptors []model.RepositoryDescriptor, hooks repository.Hooks) ([]repository.BatchResult, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	batch := repository.NewSynchronizer(s.fetcher, cfg.Settings.MaxConcurrent)
	return batch.ImportBatch(ctx, descriptors, knownSet(cfg), hooks)
}

// ImportAdd fetches and records every descriptor. Either all repositories are
// recorded or, on any failure, none is. Descriptors with a known URL are skipped
// without being fetched; those whose document turns out to be known are
// skipped when saving. It returns the repositories that were added.
func (s *Service) ImportAdd(ctx context.Context, descriptors []model.RepositoryDescriptor) ([]*model.ResolvedRepository, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return nil, err
	}

	for i, desc := range descriptors {
		if desc.URL == nil {
			return nil, errors.Wrapf(repository.ErrRepositoryURLInvalid, "descriptor %d", i)
		}
	}

	seen := knownSet(cfg)
	pending := make([]model.RepositoryDescriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		u := desc.URL.String()
		if seen.ContainsURL(u) {
			logger.Info("duplicated repository in list", logger.Fields{"url": u})
			continue
		}
		seen.AddURL(u)
		pending = append(pending, desc)
	}
	if len(pending) == 0 {
		return []*model.ResolvedRepository{}, nil
	}

	items := make([]*fetched, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Settings.MaxConcurrent)
	for i, desc := range pending {
		g.Go(func() error {
			item, err := s.download(gctx, desc)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discard(items...)
		return nil, err
	}

	var added []*fetched
	_, err = s.update(ctx, func(cfg *config.Config) error {
		added = added[:0]
		known := knownSet(cfg)
		for _, item := range items {
			if known.ContainsURL(item.descriptor.URL.String()) || known.IsDuplicate(item.ident) {
				logger.Info("duplicated repository in list", logger.Fields{"url": item.descriptor.URL.String(), "id": item.ident.ID})
				continue
			}
			if err := cfg.AddRepo(item.repoConfig()); err != nil {
				return err
			}
			known.AddURL(item.descriptor.URL.String())
			known.AddURL(item.ident.URL)
			known.AddID(item.ident.ID)
			added = append(added, item)
		}
		if len(added) == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		s.discard(items...)
		return nil, err
	}

	result := make([]*model.ResolvedRepository, 0, len(added))
	keep := make(map[*fetched]bool, len(added))
	for _, item := range added {
		keep[item] = true
		result = append(result, item.resolved())
	}
	for _, item := range items {
		if !keep[item] {
			s.discard(item)
		}
	}
	if len(added) > 0 {
		s.packages.ClearCache()
	}
	return result, nil
}

// ExportRepositories renders the user repositories as a repository list.
func (s *Service) ExportRepositories() (string, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return "", err
	}
	descriptors := make([]model.RepositoryDescriptor, 0, len(cfg.Repositories))
	for _, repo := range cfg.GetUserRepos() {
		if desc, ok := repo.Descriptor(); ok {
			descriptors = append(descriptors, desc)
		}
	}
	return repository.FormatList(descriptors), nil
}

// ExportRepositoriesTo writes the repository list to path.
func (s *Service) ExportRepositoriesTo(path string) error {
	list, err := s.ExportRepositories()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, []byte(list), fsutil.FileModeSecure); err != nil {
		return errors.Wrap(errors.ErrFileWriteFailed, err.Error())
	}
	return nil
}
