//go:build e2e && unix

package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// stubServer stands in for both the GitHub search API and the background URL
type stubServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
	pings   int
}

func newStubServer(t *testing.T) *stubServer {
	t.Helper()
	s := &stubServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		s.mu.Lock()
		s.queries = append(s.queries, q)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"total_count": 2, "incomplete_results": false, "items": [
			{"name": "%[1]s-one", "full_name": "octo/%[1]s-one", "html_url": "https://github.com/octo/%[1]s-one", "stargazers_count": 42},
			{"name": "%[1]s-two", "full_name": "octo/%[1]s-two", "html_url": "https://github.com/octo/%[1]s-two"}
		]}`, q)
	})
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.pings++
		s.mu.Unlock()
		fmt.Fprint(w, "<html>pong</html>")
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func (s *stubServer) Pings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

// CreateTestWorkspace creates an isolated directory used as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	workspace, err := os.MkdirTemp("", "ghsearch-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = workspace
	return workspace, nil
}

// WriteConfig writes a config file pointing every request at server
func (tf *TUITestFramework) WriteConfig(server *stubServer, debounceMs int) (string, error) {
	path := filepath.Join(tf.workspace, "config.toml")
	content := fmt.Sprintf(`version = 1

[search]
base_url = "%[1]s/search/repositories"
debounce_ms = %[2]d
min_query_length = 1

[background]
enabled = true
url = "%[1]s/ping"
interval_ms = 100
count = 2

[http]
timeout_ms = 5000
max_in_flight = 4

[ui]
alt_screen = false
hyperlinks = true
log_file = "%[3]s"
`, server.URL, debounceMs, filepath.Join(tf.workspace, "ghsearch.log"))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
