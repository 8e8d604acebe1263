package docrag

import (
	"context"
	"math"
	"sort"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 8

// IndexEntry pairs a chunk with its embedding inside an index.
type IndexEntry struct {
	ID     string
	Chunk  *Chunk
	Vector []float32
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Index provides similarity search over a fixed set of chunks.
// An Index is read-only once built and safe for concurrent searches.
type Index interface {
	// Search embeds query and returns at most k chunks ordered by
	// descending similarity. Equal scores keep insertion order.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)

	// Len returns the number of entries in the index.
	Len() int
}

// IndexBuilder embeds chunks and builds an Index over them.
// Build is all-or-nothing: an embedding failure returns no index.
type IndexBuilder interface {
	Build(ctx context.Context, chunks []*Chunk) (Index, error)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Vectors of different length or zero magnitude score 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// RankEntries scores every entry against query and returns the k best in
// descending score order. The sort is stable so ties keep entry order.
func RankEntries(query []float32, entries []IndexEntry, k int) []SearchResult {
	results := make([]SearchResult, len(entries))
	for i, e := range entries {
		results[i] = SearchResult{
			Chunk: e.Chunk,
			Score: CosineSimilarity(query, e.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}
