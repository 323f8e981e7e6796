package repository

import (
	"context"
	"net/url"

	"github.com/cperrin88/vpmsync/internal/logger"
	vhttp "github.com/cperrin88/vpmsync/pkg/http"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// Fetcher downloads single repository documents and classifies the result.
type Fetcher struct {
	client vhttp.Client
}

// NewFetcher creates a fetcher that downloads through client.
func NewFetcher(client vhttp.Client) *Fetcher {
	return &Fetcher{client: client}
}

// ParseURL parses raw as an absolute repository URL with a scheme and a host.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Wrapf(ErrRepositoryURLInvalid, "%q", raw)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Wrapf(ErrRepositoryURLInvalid, "%q", raw)
	}
	return u, nil
}

// Download fetches and parses the document at repoURL. It returns the raw
// body alongside the parsed document so callers can store it unchanged.
func (f *Fetcher) Download(ctx context.Context, repoURL *url.URL, headers model.Headers) (*model.Document, []byte, error) {
	data, err := f.client.FetchRepository(ctx, repoURL, headers)
	if err != nil {
		return nil, nil, err
	}
	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, nil, Wrapf(ErrRepositoryDocumentInvalid, "%s: %v", repoURL, err)
	}
	return doc, data, nil
}

// FetchRaw parses raw and fetches it. A malformed URL yields BadUrl without
// any network activity.
func (f *Fetcher) FetchRaw(ctx context.Context, raw string, headers model.Headers, known *KnownSet) model.DownloadOutcome {
	u, err := ParseURL(raw)
	if err != nil {
		logger.Debug("rejected malformed repository url", logger.Fields{"url": raw})
		return model.BadURL()
	}
	return f.Fetch(ctx, u, headers, known)
}

// Fetch downloads the repository at repoURL and classifies the result.
// A URL already in known is reported as Duplicated before any network
// activity; a document resolving to a known URL or id is reported as
// Duplicated after the fetch.
func (f *Fetcher) Fetch(ctx context.Context, repoURL *url.URL, headers model.Headers, known *KnownSet) model.DownloadOutcome {
	if repoURL == nil {
		return model.BadURL()
	}
	fetchURL := repoURL.String()
	if known != nil && known.ContainsURL(fetchURL) {
		logger.Debug("repository url already known", logger.Fields{"url": fetchURL})
		return model.Duplicated()
	}

	doc, _, err := f.Download(ctx, repoURL, headers)
	if err != nil {
		logger.Debug("downloading repository failed", logger.Fields{"url": fetchURL, "error": err.Error()})
		return model.DownloadError(err.Error())
	}

	ident := Resolve(doc, fetchURL)
	if known != nil && known.IsDuplicate(ident) {
		logger.Debug("repository id already known", logger.Fields{"url": fetchURL, "id": ident.ID})
		return model.Duplicated()
	}

	logger.Debug("downloaded repository", logger.Fields{"url": fetchURL, "id": ident.ID})
	return model.Success(&model.ResolvedRepository{
		ID:          ident.ID,
		URL:         ident.URL,
		DisplayName: ident.DisplayName,
		Packages:    doc.LatestPackages(true),
	})
}
