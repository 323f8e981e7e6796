// Package auth applies per-repository credentials to outgoing HTTP requests.
// Repositories carry credentials as opaque custom headers; auth forwards them
// without interpreting their values.
package auth

import (
	"net/http"

	"github.com/cperrin88/vpmsync/pkg/model"
)

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
}

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers model.Headers
}

// Apply adds custom headers to the HTTP request in declaration order.
// A custom header replaces any value already present on the request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for _, hdr := range h.Headers {
		req.Header.Set(hdr.Name, hdr.Value)
	}
	return nil
}

// FromHeaders returns the authenticator for a repository's headers, or nil
// when there is nothing to apply.
func FromHeaders(headers model.Headers) Authenticator {
	if headers.Len() == 0 {
		return nil
	}
	return HeaderAuth{Headers: headers.Clone()}
}
