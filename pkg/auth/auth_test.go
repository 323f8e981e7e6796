package auth_test

import (
	"net/http"
	"testing"

	"github.com/cperrin88/vpmsync/pkg/auth"
	"github.com/cperrin88/vpmsync/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderAuth(t *testing.T) {
	tests := []struct {
		name    string
		headers model.Headers
		expect  map[string]string
	}{
		{
			name:    "single header",
			headers: model.Headers{{Name: "X-API-Key", Value: "test-key"}},
			expect: map[string]string{
				"X-Api-Key": "test-key", // http.Header canonicalizes headers
			},
		},
		{
			name: "multiple headers",
			headers: model.Headers{
				{Name: "Authorization", Value: "Bearer abc"},
				{Name: "X-Client-ID", Value: "client-123"},
			},
			expect: map[string]string{
				"Authorization": "Bearer abc",
				"X-Client-Id":   "client-123",
			},
		},
		{
			name:    "overrides default header",
			headers: model.Headers{{Name: "User-Agent", Value: "custom"}},
			expect:  map[string]string{"User-Agent": "custom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "http://example.com", http.NoBody)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "vpmsync/test")

			require.NoError(t, auth.HeaderAuth{Headers: tt.headers}.Apply(req))
			for k, v := range tt.expect {
				assert.Equal(t, v, req.Header.Get(k))
			}
		})
	}
}

func TestFromHeaders(t *testing.T) {
	assert.Nil(t, auth.FromHeaders(nil))

	headers := model.Headers{{Name: "X-Token", Value: "a"}}
	a := auth.FromHeaders(headers)
	require.NotNil(t, a)

	headers[0].Value = "changed"
	req, err := http.NewRequest(http.MethodGet, "http://example.com", http.NoBody)
	require.NoError(t, err)
	require.NoError(t, a.Apply(req))
	assert.Equal(t, "a", req.Header.Get("X-Token"), "authenticator keeps its own copy")
}
