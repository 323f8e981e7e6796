package environment

import (
	"context"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/config"
	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/cperrin88/vpmsync/pkg/repository"
)

// UserRepository describes a user repository for listing.
type UserRepository struct {
	ID          string `json:"id"`
	URL         string `json:"url,omitempty"`
	DisplayName string `json:"display_name"`
}

// RepositoriesInfo is the repository listing with its display preferences.
type RepositoriesInfo struct {
	UserRepositories       []UserRepository `json:"user_repositories"`
	HiddenUserRepositories []string         `json:"hidden_user_repositories"`
	HideLocalUserPackages  bool             `json:"hide_local_user_packages"`
	ShowPrereleasePackages bool             `json:"show_prerelease_packages"`
}

// AddRepositoryResult classifies an attempt to add one repository.
type AddRepositoryResult struct {
	Kind       model.OutcomeKind         `json:"type"`
	Repository *model.ResolvedRepository `json:"value,omitempty"`
}

// RepositoriesInfo lists the user repositories in config order.
func (s *Service) RepositoriesInfo() (*RepositoriesInfo, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	info := &RepositoriesInfo{
		UserRepositories:       make([]UserRepository, 0, len(cfg.Repositories)),
		HiddenUserRepositories: append([]string{}, cfg.Display.HiddenRepositories...),
		HideLocalUserPackages:  cfg.Display.HideLocalUserPackages,
		ShowPrereleasePackages: cfg.ShowPrereleasePackages(),
	}
	for _, repo := range cfg.GetUserRepos() {
		info.UserRepositories = append(info.UserRepositories, UserRepository{
			ID:          repo.Key(),
			URL:         repo.URL,
			DisplayName: repo.DisplayName(),
		})
	}
	return info, nil
}

// HideRepository hides a repository from package listings.
func (s *Service) HideRepository(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(cfg *config.Config) error {
		if cfg.IsRepositoryHidden(id) {
			return errUnchanged
		}
		cfg.HideRepository(id)
		return nil
	})
	return err
}

// ShowRepository undoes HideRepository.
func (s *Service) ShowRepository(ctx context.Context, id string) error {
	_, err := s.update(ctx, func(cfg *config.Config) error {
		if !cfg.IsRepositoryHidden(id) {
			return errUnchanged
		}
		cfg.ShowRepository(id)
		return nil
	})
	return err
}

// SetHideLocalUserPackages sets whether local user packages are listed.
func (s *Service) SetHideLocalUserPackages(ctx context.Context, hide bool) error {
	_, err := s.update(ctx, func(cfg *config.Config) error {
		if cfg.Display.HideLocalUserPackages == hide {
			return errUnchanged
		}
		cfg.Display.HideLocalUserPackages = hide
		return nil
	})
	return err
}

// DownloadRepository fetches a repository for preview without adding it.
func (s *Service) DownloadRepository(ctx context.Context, rawURL string, headers model.Headers) (model.DownloadOutcome, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return model.DownloadOutcome{}, err
	}
	return s.fetcher.FetchRaw(ctx, rawURL, headers, knownSet(cfg)), nil
}

// fetched is a downloaded repository waiting to be recorded.
type fetched struct {
	descriptor model.RepositoryDescriptor
	doc        *model.Document
	ident      repository.Identity
	localPath  string
}

func (f *fetched) repoConfig() *config.RepositoryConfig {
	return &config.RepositoryConfig{
		ID:        f.doc.ID,
		URL:       f.descriptor.URL.String(),
		Name:      f.doc.Name,
		Headers:   f.descriptor.Headers.Clone(),
		LocalPath: f.localPath,
	}
}

func (f *fetched) resolved() *model.ResolvedRepository {
	return &model.ResolvedRepository{
		ID:          f.ident.ID,
		URL:         f.ident.URL,
		DisplayName: f.ident.DisplayName,
		Packages:    f.doc.LatestPackages(true),
	}
}

// download fetches the document of desc and writes it to a fresh store file.
func (s *Service) download(ctx context.Context, desc model.RepositoryDescriptor) (*fetched, error) {
	doc, raw, err := s.fetcher.Download(ctx, desc.URL, desc.Headers)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", desc.URL)
	}
	f := &fetched{
		descriptor: desc,
		doc:        doc,
		ident:      repository.Resolve(doc, desc.URL.String()),
		localPath:  repository.NewLocalPath(),
	}
	if err := s.store.Write(f.localPath, raw); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) discard(items ...*fetched) {
	for _, f := range items {
		if f == nil {
			continue
		}
		if err := s.store.Remove(f.localPath); err != nil {
			logger.Warn("failed to remove repository document", logger.Fields{"path": f.localPath, "error": err.Error()})
		}
	}
}

// AddRepository fetches a repository and records it in the settings.
// Download and persistence failures are returned as errors.
func (s *Service) AddRepository(ctx context.Context, rawURL string, headers model.Headers) (AddRepositoryResult, error) {
	u, err := repository.ParseURL(rawURL)
	if err != nil {
		return AddRepositoryResult{Kind: model.OutcomeBadURL}, nil
	}

	cfg, err := s.settings.Load()
	if err != nil {
		return AddRepositoryResult{}, err
	}
	if knownSet(cfg).ContainsURL(u.String()) {
		return AddRepositoryResult{Kind: model.OutcomeDuplicated}, nil
	}

	desc := model.RepositoryDescriptor{URL: u, Headers: headers}
	item, err := s.download(ctx, desc)
	if err != nil {
		return AddRepositoryResult{}, err
	}

	duplicated := false
	_, err = s.update(ctx, func(cfg *config.Config) error {
		known := knownSet(cfg)
		if known.ContainsURL(u.String()) || known.IsDuplicate(item.ident) {
			duplicated = true
			return errUnchanged
		}
		return cfg.AddRepo(item.repoConfig())
	})
	if err != nil || duplicated {
		s.discard(item)
		if err != nil {
			return AddRepositoryResult{}, err
		}
		return AddRepositoryResult{Kind: model.OutcomeDuplicated}, nil
	}

	s.packages.ClearCache()
	logger.Success("repository added", logger.Fields{"id": item.ident.ID, "url": item.ident.URL})
	return AddRepositoryResult{Kind: model.OutcomeSuccess, Repository: item.resolved()}, nil
}

// RemoveRepository removes every user repository whose id (or URL, for
// repositories without an id) equals id, together with its cached document.
func (s *Service) RemoveRepository(ctx context.Context, id string) (int, error) {
	var removed []*config.RepositoryConfig
	_, err := s.update(ctx, func(cfg *config.Config) error {
		removed = cfg.RemoveRepo(func(r *config.RepositoryConfig) bool { return r.Key() == id })
		if len(removed) == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, repo := range removed {
		localPath := repo.LocalPath
		if localPath == "" {
			localPath = repository.DerivedLocalPath(repo.URL)
		}
		if err := s.store.Remove(localPath); err != nil {
			logger.Warn("failed to remove repository document", logger.Fields{"path": localPath, "error": err.Error()})
		}
	}
	if len(removed) > 0 {
		s.packages.ClearCache()
	}
	return len(removed), nil
}

