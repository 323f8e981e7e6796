package packages

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/config"
)

// Loader computes the entries of a new snapshot. force requests that every
// repository is refetched regardless of cache age.
type Loader interface {
	Collect(ctx context.Context, cfg *config.Config, force bool) ([]Entry, error)
}

// SettingsSource returns the settings a new snapshot is computed from.
type SettingsSource func() (*config.Config, error)

// Cache memoizes the merged package view. Load, LoadForce and ClearCache are
// mutually exclusive; Current never waits.
type Cache struct {
	mu       sync.Mutex
	loader   Loader
	settings SettingsSource
	version  uint64
	current  atomic.Pointer[Snapshot]
}

// NewCache creates an empty cache computing snapshots with loader from the
// settings returned by settings.
func NewCache(loader Loader, settings SettingsSource) *Cache {
	return &Cache{loader: loader, settings: settings}
}

// Load returns the current snapshot, computing one if the cache is empty.
func (c *Cache) Load(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap := c.current.Load(); snap != nil {
		return snap, nil
	}
	return c.recompute(ctx, false)
}

// LoadForce refetches every repository and replaces the snapshot.
func (c *Cache) LoadForce(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recompute(ctx, true)
}

// ClearCache drops the snapshot. The next Load computes a new one.
func (c *Cache) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current.Store(nil)
}

// Current returns the last published snapshot, or nil if the cache is empty.
func (c *Cache) Current() *Snapshot {
	return c.current.Load()
}

// recompute must be called with mu held. Settings are read under mu, after any
// ClearCache that preceded it. On failure the cache state is left unchanged.
func (c *Cache) recompute(ctx context.Context, force bool) (*Snapshot, error) {
	cfg, err := c.settings()
	if err != nil {
		return nil, err
	}
	entries, err := c.loader.Collect(ctx, cfg, force)
	if err != nil {
		return nil, err
	}
	c.version++
	snap := &Snapshot{Version: c.version, Entries: entries}
	c.current.Store(snap)
	logger.Debug("package cache refreshed", logger.Fields{"version": snap.Version, "packages": len(entries), "force": force})
	return snap, nil
}
