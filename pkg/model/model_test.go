package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaders_SetKeepsOrderAndUniqueness(t *testing.T) {
	var h Headers
	h.Set("Authorization", "Bearer a")
	h.Set("X-Api-Key", "k")
	h.Set("authorization", "Bearer b")

	require.Equal(t, 2, h.Len())
	assert.Equal(t, Headers{{Name: "Authorization", Value: "Bearer b"}, {Name: "X-Api-Key", Value: "k"}}, h)

	v, ok := h.Get("AUTHORIZATION")
	assert.True(t, ok)
	assert.Equal(t, "Bearer b", v)

	_, ok = h.Get("Missing")
	assert.False(t, ok)
}

func TestYanked_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Yanked
		err    bool
	}{
		{name: "true", input: `true`, expect: Yanked{Yanked: true}},
		{name: "false", input: `false`, expect: Yanked{}},
		{name: "reason", input: `"broken build"`, expect: Yanked{Yanked: true, Reason: "broken build"}},
		{name: "empty reason", input: `""`, expect: Yanked{}},
		{name: "null", input: `null`, expect: Yanked{}},
		{name: "number", input: `1`, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Yanked
			err := json.Unmarshal([]byte(tt.input), &y)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, y)
		})
	}
}

const sampleDocument = `{
	"name": "Example",
	"id": "com.example.repo",
	"packages": {
		"com.example.b": {"versions": {
			"1.0.0": {"version": "1.0.0"},
			"2.0.0": {"version": "2.0.0", "yanked": true},
			"1.5.0-beta.1": {"version": "1.5.0-beta.1"}
		}},
		"com.example.a": {"versions": {
			"0.1.0": {"name": "com.example.a", "version": "0.1.0"},
			"0.2.0": {"name": "com.example.a", "version": "0.2.0", "yanked": "bad"}
		}},
		"com.example.gone": {"versions": {
			"1.0.0": {"version": "1.0.0", "yanked": true}
		}}
	}
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "com.example.repo", doc.ID)
	assert.Equal(t, "Example", doc.Name)
	assert.Empty(t, doc.URL)
	assert.Equal(t, []string{"com.example.a", "com.example.b", "com.example.gone"}, doc.PackageNames())
	assert.Equal(t, "com.example.b", doc.Packages["com.example.b"].Versions["1.0.0"].Name, "name filled from key")
}

func TestParseDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `<html>`},
		{name: "no packages", input: `{"id": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestDocument_LatestPackages(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	t.Run("with prerelease", func(t *testing.T) {
		latest := doc.LatestPackages(true)
		require.Len(t, latest, 2)
		assert.Equal(t, "com.example.a", latest[0].Name)
		assert.Equal(t, "0.1.0", latest[0].Version)
		assert.Equal(t, "com.example.b", latest[1].Name)
		assert.Equal(t, "1.5.0-beta.1", latest[1].Version)
	})

	t.Run("stable only", func(t *testing.T) {
		latest := doc.LatestPackages(false)
		require.Len(t, latest, 2)
		assert.Equal(t, "1.0.0", latest[1].Version)
	})
}

func TestPackageVersions_Sorted(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	sorted := doc.Packages["com.example.b"].Sorted(true)
	versions := make([]string, 0, len(sorted))
	for _, m := range sorted {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []string{"1.5.0-beta.1", "1.0.0"}, versions)
}

func TestDownloadOutcome_JSON(t *testing.T) {
	data, err := json.Marshal(DownloadError("timeout"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"DownloadError","message":"timeout"}`, string(data))

	data, err = json.Marshal(Duplicated())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Duplicated"}`, string(data))
}

func TestPackageManifest_Validate(t *testing.T) {
	assert.NoError(t, (&PackageManifest{Name: "com.example", Version: "1.0.0"}).Validate())
	assert.Error(t, (&PackageManifest{Version: "1.0.0"}).Validate())
	assert.Error(t, (&PackageManifest{Name: "com.example", Version: "latest"}).Validate())
}
