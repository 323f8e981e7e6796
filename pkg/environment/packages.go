package environment

import (
	"context"
	"slices"

	"github.com/cperrin88/vpmsync/pkg/cache"
	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/packages"
)

// Packages returns the merged package view, computing it if needed.
func (s *Service) Packages(ctx context.Context) (*packages.Snapshot, error) {
	return s.packages.Load(ctx)
}

// RefetchPackages refetches every repository and rebuilds the package view.
func (s *Service) RefetchPackages(ctx context.Context) (*packages.Snapshot, error) {
	return s.packages.LoadForce(ctx)
}

// VisiblePackages returns the entries of the package view that are not hidden
// by the display preferences, together with the snapshot version. Display
// preferences do not clear the cache, so they are read after the snapshot.
func (s *Service) VisiblePackages(ctx context.Context) ([]packages.Entry, uint64, error) {
	snap, err := s.packages.Load(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to load packages")
	}
	cfg, err := s.settings.Load()
	if err != nil {
		return nil, 0, err
	}

	visible := make([]packages.Entry, 0, snap.Len())
	for _, entry := range snap.Entries {
		switch entry.Source.Kind {
		case packages.SourceLocalUser:
			if cfg.Display.HideLocalUserPackages {
				continue
			}
		case packages.SourceRemote:
			if slices.Contains(cfg.Display.HiddenRepositories, entry.Source.RepositoryID) {
				continue
			}
		}
		visible = append(visible, entry)
	}
	return visible, snap.Version, nil
}

// ClearPackageCache removes every cached repository document and clears the
// package view. The next load fetches all repositories again.
func (s *Service) ClearPackageCache() error {
	if _, err := s.cache.Clean(cache.CleanOptions{All: true}); err != nil {
		return err
	}
	s.packages.ClearCache()
	return nil
}
