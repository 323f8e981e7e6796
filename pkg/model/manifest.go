package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-version"
)

// Yanked records whether a package version was withdrawn. Documents encode
// it either as a boolean or as a non-empty reason string.
type Yanked struct {
	Yanked bool
	Reason string
}

// UnmarshalJSON accepts true/false, a reason string, or null.
func (y *Yanked) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = Yanked{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*y = Yanked{Yanked: b}
		return nil
	}
	var reason string
	if err := json.Unmarshal(data, &reason); err != nil {
		return fmt.Errorf("yanked must be a boolean or a string: %w", err)
	}
	*y = Yanked{Yanked: reason != "", Reason: reason}
	return nil
}

// MarshalJSON writes the reason when present, otherwise a boolean.
func (y Yanked) MarshalJSON() ([]byte, error) {
	if y.Reason != "" {
		return json.Marshal(y.Reason)
	}
	return json.Marshal(y.Yanked)
}

// PackageManifest is the package.json of one package version, as found both in
// remote repository documents and in local user package directories.
type PackageManifest struct {
	Name            string            `json:"name"`
	DisplayName     string            `json:"displayName,omitempty"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	URL             string            `json:"url,omitempty"`
	Unity           string            `json:"unity,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	VPMDependencies map[string]string `json:"vpmDependencies,omitempty"`
	LegacyPackages  []string          `json:"legacyPackages,omitempty"`
	ChangelogURL    string            `json:"changelogUrl,omitempty"`
	Yanked          Yanked            `json:"yanked"`
}

// GetVersion returns the parsed version, or nil when it is not a valid version.
func (m *PackageManifest) GetVersion() *version.Version {
	v, err := version.NewVersion(m.Version)
	if err != nil {
		return nil
	}
	return v
}

// IsYanked reports whether this version was withdrawn.
func (m *PackageManifest) IsYanked() bool {
	return m.Yanked.Yanked
}

// IsPrerelease reports whether the version carries a prerelease tag.
func (m *PackageManifest) IsPrerelease() bool {
	v := m.GetVersion()
	return v != nil && v.Prerelease() != ""
}

// GetDisplayName returns the display name, falling back to the package name.
func (m *PackageManifest) GetDisplayName() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// Validate checks the fields a manifest must carry to be usable.
func (m *PackageManifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("package name is missing")
	}
	if m.GetVersion() == nil {
		return fmt.Errorf("package %s has invalid version %q", m.Name, m.Version)
	}
	return nil
}
