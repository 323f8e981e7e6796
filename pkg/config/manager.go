package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/fsutil"
)

const lockRetryDelay = 50 * time.Millisecond

// Manager owns the settings file. Reads return independent snapshots;
// updates are serialized within the process and across processes.
type Manager struct {
	path string
	mu   sync.Mutex
}

// NewManager creates a manager for the settings file at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the settings file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the current settings.
func (m *Manager) Load() (*Config, error) {
	return LoadConfig(m.path)
}

// Update loads the settings, applies fn and saves the result. Nothing is saved
// when fn returns an error or the result does not validate.
func (m *Manager) Update(ctx context.Context, fn func(*Config) error) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, err := m.acquireFileLock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	cfg, err := LoadConfig(m.path)
	if err != nil {
		return nil, err
	}
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	if err := cfg.SaveConfig(m.path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (m *Manager) acquireFileLock(ctx context.Context) (*flock.Flock, error) {
	if m.path == "" {
		return nil, errors.ErrEmptyConfigPath
	}
	absPath, err := filepath.Abs(m.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return nil, errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	fileLock := flock.New(absPath + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigLock, err)
	}
	if !locked {
		return nil, errors.ErrConfigLock
	}
	return fileLock, nil
}
