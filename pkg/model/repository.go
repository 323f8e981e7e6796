// Package model provides the data types shared by the repository fetcher, the
// batch importer and the package cache.
package model

import (
	"encoding/json"
	"net/url"
)

// RepositoryDescriptor is a repository the user wants to add.
type RepositoryDescriptor struct {
	URL     *url.URL `json:"url"`
	Headers Headers  `json:"headers,omitempty"`
}

// MarshalJSON encodes the URL as a string.
func (d RepositoryDescriptor) MarshalJSON() ([]byte, error) {
	var raw string
	if d.URL != nil {
		raw = d.URL.String()
	}
	return json.Marshal(struct {
		URL     string  `json:"url"`
		Headers Headers `json:"headers,omitempty"`
	}{URL: raw, Headers: d.Headers})
}

// ResolvedRepository is a fetched repository with its canonical identity and
// a preview of its packages (latest non-yanked version of each).
type ResolvedRepository struct {
	ID          string             `json:"id"`
	URL         string             `json:"url"`
	DisplayName string             `json:"display_name"`
	Packages    []*PackageManifest `json:"packages"`
}

// OutcomeKind classifies the result of materializing one descriptor.
type OutcomeKind string

// Outcome kinds.
const (
	OutcomeBadURL        OutcomeKind = "BadUrl"
	OutcomeDuplicated    OutcomeKind = "Duplicated"
	OutcomeDownloadError OutcomeKind = "DownloadError"
	OutcomeSuccess       OutcomeKind = "Success"
)

// DownloadOutcome is the classified result of fetching one repository.
// Message is set for DownloadError, Repository for Success.
type DownloadOutcome struct {
	Kind       OutcomeKind         `json:"type"`
	Message    string              `json:"message,omitempty"`
	Repository *ResolvedRepository `json:"value,omitempty"`
}

// BadURL returns the outcome for an input that is not a well-formed URL.
func BadURL() DownloadOutcome {
	return DownloadOutcome{Kind: OutcomeBadURL}
}

// Duplicated returns the outcome for a repository that is already known.
func Duplicated() DownloadOutcome {
	return DownloadOutcome{Kind: OutcomeDuplicated}
}

// DownloadError returns the outcome for a transport or parse failure.
func DownloadError(message string) DownloadOutcome {
	return DownloadOutcome{Kind: OutcomeDownloadError, Message: message}
}

// Success returns the outcome for a fetched, previously unknown repository.
func Success(repo *ResolvedRepository) DownloadOutcome {
	return DownloadOutcome{Kind: OutcomeSuccess, Repository: repo}
}

// IsSuccess reports whether the outcome carries a repository.
func (o DownloadOutcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess && o.Repository != nil
}
