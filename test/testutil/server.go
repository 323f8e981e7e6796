// Package testutil provides a fake VPM repository server and settings files
// for command level tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cperrin88/vpmsync/pkg/config"
)

// TestServer serves repository documents by request path.
type TestServer struct {
	*httptest.Server

	mu       sync.Mutex
	docs     map[string][]byte
	requests map[string]int
	headers  map[string]http.Header
}

// NewTestServer starts a server answering GET <path> with docs[path]. Unknown
// paths get 404. The server is closed when the test ends.
func NewTestServer(t *testing.T, docs map[string][]byte) *TestServer {
	t.Helper()
	ts := &TestServer{
		docs:     docs,
		requests: make(map[string]int),
		headers:  make(map[string]http.Header),
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.serve))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) serve(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.requests[r.URL.Path]++
	ts.headers[r.URL.Path] = r.Header.Clone()
	body, ok := ts.docs[r.URL.Path]
	ts.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// RepoURL returns the absolute URL of path on the server.
func (ts *TestServer) RepoURL(path string) string {
	return ts.URL + path
}

// Requests returns how often path was requested.
func (ts *TestServer) Requests(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[path]
}

// LastHeaders returns the headers of the last request for path.
func (ts *TestServer) LastHeaders(path string) http.Header {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.headers[path]
}

// SetupTestConfig writes a settings file with its own cache directory and
// the built-in repositories disabled. It returns the settings file path.
func SetupTestConfig(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Settings.CacheDir = filepath.Join(tempDir, "cache")
	cfg.Settings.IgnoreCuratedRepository = true
	cfg.Settings.IgnoreOfficialRepository = true

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := cfg.SaveConfig(configPath); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}
