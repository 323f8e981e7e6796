//go:generate mockgen -destination=mocks/http.go . Client
package http

import (
	"context"
	"net/url"

	"github.com/cperrin88/vpmsync/pkg/model"
)

// Client defines the interface for HTTP operations.
type Client interface {
	// FetchRepository downloads the repository document at repoURL, sending
	// headers in order. It returns the raw body of a 200 response.
	FetchRepository(ctx context.Context, repoURL *url.URL, headers model.Headers) ([]byte, error)
}
