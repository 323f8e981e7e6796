package environment

import (
	"context"

	"github.com/cperrin88/vpmsync/pkg/config"
	"github.com/cperrin88/vpmsync/pkg/userpackage"
)

// GetUserPackages loads every configured user package. Directories that no
// longer hold a valid package are left out.
func (s *Service) GetUserPackages() ([]userpackage.Package, error) {
	cfg, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	return userpackage.Collect(cfg.UserPackages), nil
}

// AddUserPackage adds the package directory at path.
func (s *Service) AddUserPackage(ctx context.Context, path string) (userpackage.AddResult, error) {
	result := userpackage.Success
	changed, err := s.update(ctx, func(cfg *config.Config) error {
		result = userpackage.Check(path, cfg.UserPackages)
		if result != userpackage.Success {
			return errUnchanged
		}
		cfg.AddUserPackage(path)
		return nil
	})
	if err != nil {
		return "", err
	}
	if changed {
		s.packages.ClearCache()
	}
	return result, nil
}

// RemoveUserPackage removes path from the user packages. It reports whether
// path was configured.
func (s *Service) RemoveUserPackage(ctx context.Context, path string) (bool, error) {
	changed, err := s.update(ctx, func(cfg *config.Config) error {
		if !cfg.RemoveUserPackage(path) {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.packages.ClearCache()
	}
	return changed, nil
}
