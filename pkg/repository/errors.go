package repository

import (
	"fmt"

	"github.com/cperrin88/vpmsync/pkg/errors"
)

// Common repository errors.
var (
	// ErrRepositoryNotFound is returned when no cached document exists for a repository.
	ErrRepositoryNotFound = fmt.Errorf("repository not found")

	// ErrRepositoryURLInvalid is returned when a repository URL is invalid.
	ErrRepositoryURLInvalid = fmt.Errorf("repository URL is invalid")

	// ErrRepositoryDocumentInvalid is returned when a repository document cannot be parsed.
	ErrRepositoryDocumentInvalid = fmt.Errorf("invalid repository document")

	// ErrLocalPathInvalid is returned when a cached document path escapes the store directory.
	ErrLocalPathInvalid = fmt.Errorf("invalid local repository path")
)

// Wrap wraps an error with additional context specific to the repository package.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, "repository: "+msg)
}

// Wrapf wraps an error with additional formatted context specific to the repository package.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, "repository: "+format, args...)
}

// Errorf creates a new error with formatted message specific to the repository package.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("repository: "+format, args...)
}
