package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cperrin88/vpmsync/pkg/errors"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		userAgent  string
		expectedUA string
	}{
		{name: "default user agent", timeout: time.Second, expectedUA: DefaultUserAgent},
		{name: "custom user agent", timeout: 2 * time.Second, userAgent: "test-agent/1.0", expectedUA: "test-agent/1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHTTPClient(tt.timeout, tt.userAgent)
			require.NotNil(t, hc)
			assert.Equal(t, tt.timeout, hc.client.Timeout)
			assert.Equal(t, tt.expectedUA, hc.userAgent)
		})
	}
}

func TestFetchRepository(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		headers     model.Headers
		expectError string
	}{
		{
			name:   "successful download",
			status: http.StatusOK,
			body:   `{"packages":{}}`,
		},
		{
			name:    "forwards custom headers",
			status:  http.StatusOK,
			body:    `{"packages":{}}`,
			headers: model.Headers{{Name: "X-Token", Value: "secret"}},
		},
		{
			name:   "accepts other 2xx status",
			status: http.StatusNonAuthoritativeInfo,
			body:   `{"packages":{}}`,
		},
		{
			name:        "redirect status is not success",
			status:      http.StatusNotModified,
			expectError: "unexpected status code: 304",
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			expectError: "unexpected status code: 404",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			expectError: "unexpected status code: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeaders http.Header
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeaders = r.Header.Clone()
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			u, err := url.Parse(server.URL + "/index.json")
			require.NoError(t, err)

			hc := NewHTTPClient(time.Second, "test")
			data, err := hc.FetchRepository(context.Background(), u, tt.headers)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.body, string(data))
			assert.Equal(t, "test", gotHeaders.Get("User-Agent"))
			for _, h := range tt.headers {
				assert.Equal(t, h.Value, gotHeaders.Get(h.Name))
			}
		})
	}
}

func TestFetchRepository_DocumentSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("x", 16)))
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	hc := NewHTTPClient(time.Second, "")
	assert.Equal(t, int64(maxDocumentSize), hc.maxSize)

	hc.maxSize = 16
	data, err := hc.FetchRepository(context.Background(), u, nil)
	require.NoError(t, err)
	assert.Len(t, data, 16)

	hc.maxSize = 15
	_, err = hc.FetchRepository(context.Background(), u, nil)
	require.ErrorIs(t, err, errors.ErrDocumentTooLarge)
}

func TestFetchRepository_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewHTTPClient(time.Second, "").FetchRepository(ctx, u, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
