// Package environment implements the user-facing operations on repositories,
// user packages and the package cache.
package environment

import (
	"context"
	"fmt"

	"github.com/cperrin88/vpmsync/pkg/cache"
	"github.com/cperrin88/vpmsync/pkg/config"
	vhttp "github.com/cperrin88/vpmsync/pkg/http"
	"github.com/cperrin88/vpmsync/pkg/packages"
	"github.com/cperrin88/vpmsync/pkg/repository"
)

// errUnchanged aborts a settings update that has nothing to save.
var errUnchanged = fmt.Errorf("settings unchanged")

// Service runs environment operations. Every operation that changes the
// repository set or the user packages clears the package cache.
type Service struct {
	settings *config.Manager
	store    *repository.Store
	fetcher  *repository.Fetcher
	packages *packages.Cache
	cache    cache.Manager
}

// New creates a service over the settings file, downloading through client
// and keeping documents below cacheDir.
func New(settings *config.Manager, client vhttp.Client, cacheDir string) *Service {
	store := repository.NewStore(cacheDir)
	fetcher := repository.NewFetcher(client)
	return &Service{
		settings: settings,
		store:    store,
		fetcher:  fetcher,
		packages: packages.NewCache(packages.NewCollector(store, fetcher), settings.Load),
		cache:    cache.NewManager(cacheDir),
	}
}

// PackageCache returns the shared package cache.
func (s *Service) PackageCache() *packages.Cache {
	return s.packages
}

// Store returns the repository document store.
func (s *Service) Store() *repository.Store {
	return s.store
}

// update applies fn to the settings. fn returns errUnchanged to skip saving;
// update then reports changed as false.
func (s *Service) update(ctx context.Context, fn func(*config.Config) error) (changed bool, err error) {
	_, err = s.settings.Update(ctx, fn)
	if err == errUnchanged {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func knownSet(cfg *config.Config) *repository.KnownSet {
	return repository.BuildKnownSet(cfg.GetUserRepos(), !cfg.IgnoreCuratedRepository(), !cfg.IgnoreOfficialRepository())
}
