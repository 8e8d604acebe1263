package openai_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/docrag/openai"
	goopenai "github.com/sashabaranov/go-openai"
)

// newTestClient returns a client whose requests are served by h.
func newTestClient(t *testing.T, h http.HandlerFunc) *goopenai.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return openai.NewClient("test-key", srv.URL+"/v1")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
