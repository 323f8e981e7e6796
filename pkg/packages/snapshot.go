// Package packages maintains the merged, versioned view of every package
// available from the enabled repositories and the local user packages.
package packages

import "github.com/cperrin88/vpmsync/pkg/model"

// SourceKind tells where a package entry came from.
type SourceKind string

// Source kinds.
const (
	SourceRemote    SourceKind = "Remote"
	SourceLocalUser SourceKind = "LocalUser"
)

// Source identifies the origin of an entry. Remote entries carry the
// repository id and display name, local user entries the package directory.
type Source struct {
	Kind           SourceKind `json:"type"`
	RepositoryID   string     `json:"repository_id,omitempty"`
	RepositoryName string     `json:"repository_name,omitempty"`
	Path           string     `json:"path,omitempty"`
}

// Remote returns the source of a package published by a repository.
func Remote(id, displayName string) Source {
	return Source{Kind: SourceRemote, RepositoryID: id, RepositoryName: displayName}
}

// LocalUser returns the source of a local user package.
func LocalUser(path string) Source {
	return Source{Kind: SourceLocalUser, Path: path}
}

// Entry is one package version in the merged view.
type Entry struct {
	Manifest *model.PackageManifest `json:"package"`
	Source   Source                 `json:"source"`
}

// Snapshot is one generation of the merged view. A snapshot is never
// modified after it is published; a refresh publishes a new one.
type Snapshot struct {
	Version uint64  `json:"version"`
	Entries []Entry `json:"packages"`
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.Entries)
}
