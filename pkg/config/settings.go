package config

import (
	"slices"

	"github.com/cperrin88/vpmsync/pkg/errors"
)

// GetUserRepos returns the user repositories in config order.
func (c *Config) GetUserRepos() []*RepositoryConfig {
	return c.Repositories
}

// IgnoreCuratedRepository reports whether the curated repository is disabled.
func (c *Config) IgnoreCuratedRepository() bool {
	return c.Settings.IgnoreCuratedRepository
}

// IgnoreOfficialRepository reports whether the official repository is disabled.
func (c *Config) IgnoreOfficialRepository() bool {
	return c.Settings.IgnoreOfficialRepository
}

// ShowPrereleasePackages reports whether prerelease versions are listed.
func (c *Config) ShowPrereleasePackages() bool {
	return c.Settings.ShowPrereleasePackages
}

// AddRepo appends a user repository.
// Returns an error if a repository with the same id already exists.
func (c *Config) AddRepo(repo *RepositoryConfig) error {
	if repo.ID != "" {
		for _, existing := range c.Repositories {
			if existing.ID == repo.ID {
				return errors.ErrRepositoryExistsWithID(repo.ID)
			}
		}
	}
	c.Repositories = append(c.Repositories, repo)
	return nil
}

// RemoveRepo removes every repository matching pred and returns the removed ones.
func (c *Config) RemoveRepo(pred func(*RepositoryConfig) bool) []*RepositoryConfig {
	var removed []*RepositoryConfig
	kept := c.Repositories[:0]
	for _, repo := range c.Repositories {
		if pred(repo) {
			removed = append(removed, repo)
			continue
		}
		kept = append(kept, repo)
	}
	clear(c.Repositories[len(kept):])
	c.Repositories = kept
	return removed
}

// AddUserPackage records a user package directory. Returns false if it is
// already recorded.
func (c *Config) AddUserPackage(path string) bool {
	if slices.Contains(c.UserPackages, path) {
		return false
	}
	c.UserPackages = append(c.UserPackages, path)
	return true
}

// RemoveUserPackage forgets a user package directory. Returns false if it was
// not recorded.
func (c *Config) RemoveUserPackage(path string) bool {
	i := slices.Index(c.UserPackages, path)
	if i < 0 {
		return false
	}
	c.UserPackages = slices.Delete(c.UserPackages, i, i+1)
	return true
}

// HideRepository hides a repository from package listings.
func (c *Config) HideRepository(id string) {
	if !slices.Contains(c.Display.HiddenRepositories, id) {
		c.Display.HiddenRepositories = append(c.Display.HiddenRepositories, id)
	}
}

// ShowRepository undoes HideRepository.
func (c *Config) ShowRepository(id string) {
	c.Display.HiddenRepositories = slices.DeleteFunc(c.Display.HiddenRepositories, func(h string) bool {
		return h == id
	})
}

// IsRepositoryHidden reports whether a repository is hidden.
func (c *Config) IsRepositoryHidden(id string) bool {
	return slices.Contains(c.Display.HiddenRepositories, id)
}
