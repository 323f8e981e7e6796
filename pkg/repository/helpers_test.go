package repository

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cperrin88/vpmsync/pkg/model"
)

// testDocument builds a repository document. Each version is "name@version",
// with a trailing "!" marking it yanked.
func testDocument(t *testing.T, id, docURL, name string, versions ...string) []byte {
	t.Helper()
	doc := model.Document{ID: id, URL: docURL, Name: name, Packages: map[string]*model.PackageVersions{}}
	for _, spec := range versions {
		yanked := false
		if spec[len(spec)-1] == '!' {
			yanked = true
			spec = spec[:len(spec)-1]
		}
		var pkgName, ver string
		for i := range spec {
			if spec[i] == '@' {
				pkgName, ver = spec[:i], spec[i+1:]
				break
			}
		}
		require.NotEmpty(t, pkgName, "version spec %q", spec)
		entry := doc.Packages[pkgName]
		if entry == nil {
			entry = &model.PackageVersions{Versions: map[string]*model.PackageManifest{}}
			doc.Packages[pkgName] = entry
		}
		entry.Versions[ver] = &model.PackageManifest{Name: pkgName, Version: ver, Yanked: model.Yanked{Yanked: yanked}}
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
