// Package userpackage loads packages that live in local directories instead
// of a remote repository.
package userpackage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// ManifestFile is the manifest file name inside a package directory.
const ManifestFile = "package.json"

// ErrBadPackage is returned when a directory holds no usable manifest.
var ErrBadPackage = fmt.Errorf("not a valid package directory")

// AddResult classifies an attempt to add a user package.
type AddResult string

// Add results.
const (
	Success      AddResult = "Success"
	NonAbsolute  AddResult = "NonAbsolute"
	BadPackage   AddResult = "BadPackage"
	AlreadyAdded AddResult = "AlreadyAdded"
)

// Package is a loaded user package.
type Package struct {
	Path     string                 `json:"path"`
	Manifest *model.PackageManifest `json:"package"`
}

// Load reads the manifest of the package directory dir.
func Load(dir string) (*model.PackageManifest, error) {
	data, err := os.ReadFile(filepath.Join(filepath.Clean(dir), ManifestFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s in %s", ManifestFile, dir)
	}
	var manifest model.PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadPackage, dir, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadPackage, dir, err)
	}
	return &manifest, nil
}

// Check decides whether path can be added next to the existing user packages.
func Check(path string, existing []string) AddResult {
	if !filepath.IsAbs(path) {
		return NonAbsolute
	}
	if slices.Contains(existing, path) {
		return AlreadyAdded
	}
	if _, err := Load(path); err != nil {
		logger.Debug("rejected user package", logger.Fields{"path": path, "error": err.Error()})
		return BadPackage
	}
	return Success
}

// Collect loads every package in paths, in order. Directories that cannot be
// loaded are skipped with a warning.
func Collect(paths []string) []Package {
	packages := make([]Package, 0, len(paths))
	for _, path := range paths {
		manifest, err := Load(path)
		if err != nil {
			logger.Warn("skipping user package", logger.Fields{"path": path, "error": err.Error()})
			continue
		}
		packages = append(packages, Package{Path: path, Manifest: manifest})
	}
	return packages
}
