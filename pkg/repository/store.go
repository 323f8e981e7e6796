package repository

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cperrin88/vpmsync/pkg/fsutil"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// StoreDirName is the directory below the cache directory holding
// repository documents.
const StoreDirName = "repos"

// Local document names of the built-in repositories.
const (
	OfficialLocalPath = "vrc-official.json"
	CuratedLocalPath  = "vrc-curated.json"
)

// Store keeps the last fetched document of every repository on disk.
// Documents are addressed by a file name relative to the store directory.
type Store struct {
	dir string
}

// NewStore creates a store below cacheDir.
func NewStore(cacheDir string) *Store {
	return &Store{dir: filepath.Join(cacheDir, StoreDirName)}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// NewLocalPath returns a fresh document name for a user repository.
func NewLocalPath() string {
	return uuid.NewString() + ".json"
}

// DerivedLocalPath returns a stable document name for a repository URL,
// for repositories recorded without a local path.
func DerivedLocalPath(rawURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String() + ".json"
}

// Path returns the absolute path of the document named localPath.
func (s *Store) Path(localPath string) (string, error) {
	if localPath == "" || localPath != filepath.Base(localPath) || localPath == "." || localPath == ".." {
		return "", Wrapf(ErrLocalPathInvalid, "%q", localPath)
	}
	return filepath.Join(s.dir, localPath), nil
}

// Read loads and parses a stored document.
func (s *Store) Read(localPath string) (*model.Document, error) {
	path, err := s.Path(localPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Wrapf(ErrRepositoryNotFound, "%s", localPath)
		}
		return nil, Wrapf(err, "failed to read %s", localPath)
	}
	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, Wrapf(ErrRepositoryDocumentInvalid, "%s: %v", localPath, err)
	}
	return doc, nil
}

// Write stores data as the document named localPath, replacing it atomically.
func (s *Store) Write(localPath string, data []byte) error {
	path, err := s.Path(localPath)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault); err != nil {
		return Wrapf(err, "failed to write %s", localPath)
	}
	return nil
}

// Remove deletes a stored document. A missing document is not an error.
func (s *Store) Remove(localPath string) error {
	path, err := s.Path(localPath)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Wrapf(err, "failed to remove %s", localPath)
	}
	return nil
}

// IsStale reports whether the document is missing or older than ttl.
// A zero ttl makes every document stale.
func (s *Store) IsStale(localPath string, ttl time.Duration) bool {
	path, err := s.Path(localPath)
	if err != nil {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return ttl <= 0 || time.Since(info.ModTime()) > ttl
}
