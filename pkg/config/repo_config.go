package config

import (
	"net/url"

	"github.com/cperrin88/vpmsync/pkg/model"
)

// GetID returns the declared repository id, possibly empty.
func (rc *RepositoryConfig) GetID() string {
	return rc.ID
}

// GetURL returns the repository URL, possibly empty.
func (rc *RepositoryConfig) GetURL() string {
	return rc.URL
}

// Key returns the id, or the URL for repositories without one.
func (rc *RepositoryConfig) Key() string {
	if rc.ID != "" {
		return rc.ID
	}
	return rc.URL
}

// DisplayName returns the name, falling back to Key.
func (rc *RepositoryConfig) DisplayName() string {
	if rc.Name != "" {
		return rc.Name
	}
	return rc.Key()
}

// ParsedURL parses and returns the repository URL.
func (rc *RepositoryConfig) ParsedURL() *url.URL {
	if rc.URL == "" {
		return nil
	}
	parse, err := url.Parse(rc.URL)
	if err != nil {
		return nil
	}
	return parse
}

// Descriptor returns the repository as a descriptor. The second result is
// false for repositories without a usable URL.
func (rc *RepositoryConfig) Descriptor() (model.RepositoryDescriptor, bool) {
	u := rc.ParsedURL()
	if u == nil {
		return model.RepositoryDescriptor{}, false
	}
	return model.RepositoryDescriptor{URL: u, Headers: rc.Headers.Clone()}, true
}
