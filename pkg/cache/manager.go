package cache

import (
	"os"
	"path/filepath"

	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/fsutil"
	"github.com/cperrin88/vpmsync/pkg/repository"
)

// DefaultManager implements the Manager interface over the repository
// document store below the cache directory.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager for the cache directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// NewDefaultManager creates a new cache manager with default directory.
func NewDefaultManager() (*DefaultManager, error) {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user cache directory")
	}

	if err := os.MkdirAll(cacheDir, fsutil.DirModeSecure); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory")
	}

	return NewManager(cacheDir), nil
}

// Clean removes cached repository documents according to the options.
// Removed documents are fetched again on the next package load.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	result := &CleanResult{}

	// Default to cleaning all if no specific flags are set
	if !options.BuiltIn && !options.User {
		options.All = true
	}

	entries, err := cm.documents()
	if err != nil {
		return nil, errors.Wrap(ErrCacheClean, err.Error())
	}

	for _, doc := range entries {
		if !options.matches(doc.builtIn) {
			continue
		}
		if err := os.Remove(doc.path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to remove %s", doc.path)
		}
		if doc.builtIn {
			result.BuiltInFreed += doc.size
		} else {
			result.UserFreed += doc.size
		}
		result.TotalFreed += doc.size
		result.FilesRemoved++
	}

	return result, nil
}

// GetInfo returns information about the cache.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{
		Directory: cm.RepositoryDirectory(),
	}

	entries, err := cm.documents()
	if err != nil {
		return nil, errors.Wrap(ErrCacheInfo, err.Error())
	}
	for _, doc := range entries {
		if doc.builtIn {
			info.BuiltInSize += doc.size
			info.BuiltInFiles++
		} else {
			info.UserSize += doc.size
			info.UserFiles++
		}
	}
	info.TotalSize = info.BuiltInSize + info.UserSize

	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// RepositoryDirectory returns the directory holding repository documents.
func (cm *DefaultManager) RepositoryDirectory() string {
	return repository.NewStore(cm.directory).Dir()
}

// SetDirectory sets the cache directory path.
func (cm *DefaultManager) SetDirectory(dir string) error {
	if dir == "" {
		return ErrCacheDirectory
	}
	cm.directory = dir
	return nil
}

func (o CleanOptions) matches(builtIn bool) bool {
	if o.All {
		return true
	}
	if builtIn {
		return o.BuiltIn
	}
	return o.User
}

type document struct {
	path    string
	size    int64
	builtIn bool
}

// documents lists the regular files of the repository store.
// A missing store is empty.
func (cm *DefaultManager) documents() ([]document, error) {
	if cm.directory == "" {
		return nil, ErrCacheDirectory
	}
	dir := cm.RepositoryDirectory()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	docs := make([]document, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", entry.Name())
		}
		docs = append(docs, document{
			path:    filepath.Join(dir, entry.Name()),
			size:    fi.Size(),
			builtIn: isBuiltIn(entry.Name()),
		})
	}
	return docs, nil
}

func isBuiltIn(name string) bool {
	return name == repository.OfficialLocalPath || name == repository.CuratedLocalPath
}
