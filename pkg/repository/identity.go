package repository

import "github.com/cperrin88/vpmsync/pkg/model"

// Identity is the canonical identity of a fetched repository.
type Identity struct {
	ID          string
	URL         string
	DisplayName string
}

// Resolve derives the identity of doc fetched from fetchURL. A URL declared
// by the document wins over fetchURL, a declared id wins over the URL, and the
// display name falls back to the id.
func Resolve(doc *model.Document, fetchURL string) Identity {
	ident := Identity{URL: fetchURL}
	if doc == nil {
		ident.ID = ident.URL
		ident.DisplayName = ident.ID
		return ident
	}
	if doc.URL != "" {
		ident.URL = doc.URL
	}
	ident.ID = ident.URL
	if doc.ID != "" {
		ident.ID = doc.ID
	}
	ident.DisplayName = ident.ID
	if doc.Name != "" {
		ident.DisplayName = doc.Name
	}
	return ident
}
