package mock

import (
	"context"
	"strings"
)

// NewKeywordEmbedder returns an Embedder whose vectors count occurrences of
// each vocabulary word in the lowercased text. Texts sharing keywords score
// high under cosine similarity, which is enough to exercise ranking.
func NewKeywordEmbedder(vocab ...string) *BatchEmbedder {
	embed := func(text string) []float32 {
		text = strings.ToLower(text)
		vec := make([]float32, len(vocab))
		for i, w := range vocab {
			vec[i] = float32(strings.Count(text, strings.ToLower(w)))
		}
		return vec
	}
	return &BatchEmbedder{
		EmbedFn: func(_ context.Context, text string) ([]float32, error) {
			return embed(text), nil
		},
		EmbedBatchFn: func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, t := range texts {
				out[i] = embed(t)
			}
			return out, nil
		},
	}
}
