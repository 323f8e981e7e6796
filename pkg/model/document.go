package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PackageVersions holds every published version of one package, keyed by
// version string.
type PackageVersions struct {
	Versions map[string]*PackageManifest `json:"versions"`
}

// Document is a remote repository document. Only packages is required; id,
// url and name are optional and resolved with fallbacks.
type Document struct {
	ID       string                      `json:"id,omitempty"`
	URL      string                      `json:"url,omitempty"`
	Name     string                      `json:"name,omitempty"`
	Author   string                      `json:"author,omitempty"`
	Packages map[string]*PackageVersions `json:"packages"`
}

// ParseDocument parses a repository document from JSON data.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse repository document: %w", err)
	}
	if doc.Packages == nil {
		return nil, fmt.Errorf("repository document has no packages")
	}
	// Fill in names left out of version entries so callers can rely on them.
	for name, pkg := range doc.Packages {
		if pkg == nil {
			continue
		}
		for ver, m := range pkg.Versions {
			if m == nil {
				delete(pkg.Versions, ver)
				continue
			}
			if m.Name == "" {
				m.Name = name
			}
			if m.Version == "" {
				m.Version = ver
			}
		}
	}
	return &doc, nil
}

// ToJSON converts the document to indented JSON bytes.
func (d *Document) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal repository document: %w", err)
	}
	return data, nil
}

// PackageNames returns the package names in lexical order.
func (d *Document) PackageNames() []string {
	names := make([]string, 0, len(d.Packages))
	for name, pkg := range d.Packages {
		if pkg != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Sorted returns the versions with a parseable version, newest first.
// Yanked versions are left out, and prereleases unless includePrerelease.
func (p *PackageVersions) Sorted(includePrerelease bool) []*PackageManifest {
	out := make([]*PackageManifest, 0, len(p.Versions))
	for _, m := range p.Versions {
		if m.IsYanked() || m.GetVersion() == nil {
			continue
		}
		if !includePrerelease && m.IsPrerelease() {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].GetVersion(), out[j].GetVersion()
		if vi.Equal(vj) {
			return out[i].Version > out[j].Version
		}
		return vi.GreaterThan(vj)
	})
	return out
}

// Latest returns the newest non-yanked version, or nil when none qualifies.
func (p *PackageVersions) Latest(includePrerelease bool) *PackageManifest {
	sorted := p.Sorted(includePrerelease)
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// LatestPackages returns the newest non-yanked version of every package,
// ordered by package name.
func (d *Document) LatestPackages(includePrerelease bool) []*PackageManifest {
	out := make([]*PackageManifest, 0, len(d.Packages))
	for _, name := range d.PackageNames() {
		if latest := d.Packages[name].Latest(includePrerelease); latest != nil {
			out = append(out, latest)
		}
	}
	return out
}
