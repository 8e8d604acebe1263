package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/docrag/gemini"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newTestClient returns a client talking to a fake Gemini API served by h.
func newTestClient(t *testing.T, h http.HandlerFunc) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := gemini.NewClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)
	return client
}

// fakeGemini answers generateContent with reply and embedding requests with
// one vector per input whose first value is the input's length.
func fakeGemini(t *testing.T, reply string, bodies chan<- string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if bodies != nil {
			bodies <- string(body)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []any{map[string]any{
					"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
					"finishReason": "STOP",
				}},
			})
		case strings.HasSuffix(r.URL.Path, ":batchEmbedContents"):
			var req struct {
				Requests []struct {
					Content struct {
						Parts []struct {
							Text string `json:"text"`
						} `json:"parts"`
					} `json:"content"`
				} `json:"requests"`
			}
			_ = json.Unmarshal(body, &req)
			embeddings := make([]any, len(req.Requests))
			for i, rq := range req.Requests {
				n := 0
				for _, p := range rq.Content.Parts {
					n += len(p.Text)
				}
				embeddings[i] = map[string]any{"values": []float32{float32(n), 1}}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
		default:
			http.NotFound(w, r)
		}
	}
}
