package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type storedRepo struct {
	id, url string
}

func (r storedRepo) GetID() string  { return r.id }
func (r storedRepo) GetURL() string { return r.url }

func TestBuildKnownSet(t *testing.T) {
	stored := []storedRepo{
		{id: "a.repo", url: "https://a/repo"},
		{url: "https://b/repo"},
		{id: "c.repo"},
	}

	tests := []struct {
		name            string
		includeCurated  bool
		includeOfficial bool
		urls            map[string]bool
		ids             map[string]bool
	}{
		{
			name:            "built-ins included",
			includeCurated:  true,
			includeOfficial: true,
			urls:            map[string]bool{"https://a/repo": true, "https://b/repo": true, CuratedURL: true, OfficialURL: true},
			ids:             map[string]bool{"a.repo": true, "c.repo": true, CuratedID: true, OfficialID: true},
		},
		{
			name:            "curated ignored",
			includeCurated:  false,
			includeOfficial: true,
			urls:            map[string]bool{CuratedURL: false, OfficialURL: true},
			ids:             map[string]bool{CuratedID: false, OfficialID: true},
		},
		{
			name: "built-ins ignored",
			urls: map[string]bool{"https://a/repo": true, CuratedURL: false, OfficialURL: false},
			ids:  map[string]bool{"a.repo": true, "": false, CuratedID: false, OfficialID: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := BuildKnownSet(stored, tt.includeCurated, tt.includeOfficial)
			for u, want := range tt.urls {
				assert.Equal(t, want, k.ContainsURL(u), "url %q", u)
			}
			for id, want := range tt.ids {
				assert.Equal(t, want, k.ContainsID(id), "id %q", id)
			}
		})
	}
}

func TestKnownSet_IsDuplicate(t *testing.T) {
	k := NewKnownSet()
	k.AddID("a.repo")
	k.AddURL("https://a/repo")

	assert.True(t, k.IsDuplicate(Identity{ID: "a.repo", URL: "https://b/repo"}))
	assert.True(t, k.IsDuplicate(Identity{ID: "b.repo", URL: "https://a/repo"}))
	assert.False(t, k.IsDuplicate(Identity{ID: "b.repo", URL: "https://b/repo"}))
	assert.False(t, k.IsDuplicate(Identity{ID: "A.repo", URL: "https://a/repo/"}), "comparison is byte exact")
}

func TestKnownSet_IDsIsCopy(t *testing.T) {
	k := NewKnownSet()
	k.AddID("a.repo")

	ids := k.IDs()
	ids["b.repo"] = struct{}{}

	assert.False(t, k.ContainsID("b.repo"))
}
