package repository

// Built-in repositories.
const (
	OfficialID  = "com.vrchat.repos.official"
	OfficialURL = "https://packages.vrchat.com/official?download"
	CuratedID   = "com.vrchat.repos.curated"
	CuratedURL  = "https://packages.vrchat.com/curated?download"
)

// Stored is a repository already present in the settings. Either accessor may
// return an empty string.
type Stored interface {
	GetID() string
	GetURL() string
}

// KnownSet is a snapshot of the repository URLs and ids already present.
// Ids and URLs are compared byte for byte.
type KnownSet struct {
	urls map[string]struct{}
	ids  map[string]struct{}
}

// NewKnownSet creates an empty known set.
func NewKnownSet() *KnownSet {
	return &KnownSet{
		urls: make(map[string]struct{}),
		ids:  make(map[string]struct{}),
	}
}

// BuildKnownSet collects the identity keys of the stored repositories and of
// the enabled built-in repositories.
func BuildKnownSet[S Stored](stored []S, includeCurated, includeOfficial bool) *KnownSet {
	k := NewKnownSet()
	for _, repo := range stored {
		k.AddURL(repo.GetURL())
		k.AddID(repo.GetID())
	}
	if includeCurated {
		k.AddURL(CuratedURL)
		k.AddID(CuratedID)
	}
	if includeOfficial {
		k.AddURL(OfficialURL)
		k.AddID(OfficialID)
	}
	return k
}

// AddURL records a known URL. Empty values are ignored.
func (k *KnownSet) AddURL(u string) {
	if u != "" {
		k.urls[u] = struct{}{}
	}
}

// AddID records a known id. Empty values are ignored.
func (k *KnownSet) AddID(id string) {
	if id != "" {
		k.ids[id] = struct{}{}
	}
}

// ContainsURL reports whether u is a known URL.
func (k *KnownSet) ContainsURL(u string) bool {
	_, ok := k.urls[u]
	return ok
}

// ContainsID reports whether id is a known id.
func (k *KnownSet) ContainsID(id string) bool {
	_, ok := k.ids[id]
	return ok
}

// IsDuplicate reports whether a resolved repository matches a known URL or id.
func (k *KnownSet) IsDuplicate(ident Identity) bool {
	return k.ContainsURL(ident.URL) || k.ContainsID(ident.ID)
}

// IDs returns a copy of the known id set.
func (k *KnownSet) IDs() map[string]struct{} {
	out := make(map[string]struct{}, len(k.ids))
	for id := range k.ids {
		out[id] = struct{}{}
	}
	return out
}
