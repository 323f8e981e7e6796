package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cperrin88/vpmsync/pkg/auth"
	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/model"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "vpmsync/1.0"

// maxDocumentSize caps the size of a repository document read into memory.
const maxDocumentSize = 64 << 20

// HTTPClient handles HTTP operations for repositories.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewHTTPClient creates a new HTTP client for repository operations.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		maxSize:   maxDocumentSize,
	}
}

// FetchRepository downloads a repository document.
func (hc *HTTPClient) FetchRepository(ctx context.Context, repoURL *url.URL, headers model.Headers) ([]byte, error) {
	if repoURL == nil {
		return nil, fmt.Errorf("nil URL: %w", errors.ErrDownloadFailed)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repoURL.String(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "application/json")
	if a := auth.FromHeaders(headers); a != nil {
		if err := a.Apply(req); err != nil {
			return nil, errors.Wrap(err, "failed to apply repository headers")
		}
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download repository")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errors.ErrDownloadFailed)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, hc.maxSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if int64(len(data)) > hc.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", errors.ErrDocumentTooLarge, hc.maxSize)
	}
	return data, nil
}
