// Package memory implements the similarity index as an in-process slice
// scanned linearly on every search.
package memory

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
	"github.com/google/uuid"
)

var (
	_ docrag.IndexBuilder = (*Builder)(nil)
	_ docrag.Index        = (*Index)(nil)
)

// Builder embeds chunks and builds an in-memory Index.
type Builder struct {
	Embedder docrag.Embedder

	// Concurrency bounds outstanding embedding requests.
	Concurrency int

	// BatchSize is the texts-per-request for batch-capable embedders.
	BatchSize int
}

// Build embeds every chunk and returns an index over them. Chunk order is
// the index's insertion order. Any embedding failure returns no index.
func (b *Builder) Build(ctx context.Context, chunks []*docrag.Chunk) (docrag.Index, error) {
	vectors, err := docrag.EmbedChunks(ctx, b.Embedder, chunks, docrag.EmbedOptions{
		Concurrency: b.Concurrency,
		BatchSize:   b.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	entries := make([]docrag.IndexEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = docrag.IndexEntry{
			ID:     uuid.NewString(),
			Chunk:  c,
			Vector: vectors[i],
		}
	}
	return NewIndex(b.Embedder, entries), nil
}

// Index is a read-only set of entries. Searches do not lock.
type Index struct {
	embedder docrag.Embedder
	entries  []docrag.IndexEntry
}

// NewIndex returns an index over entries that embeds queries with embedder.
// The index takes ownership of entries.
func NewIndex(embedder docrag.Embedder, entries []docrag.IndexEntry) *Index {
	return &Index{embedder: embedder, entries: entries}
}

// Search returns the k entries most similar to query.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	if k <= 0 {
		return nil, docrag.Errorf(docrag.EINVALID, "k must be positive, got %d", k)
	}
	if len(idx.entries) == 0 {
		return []docrag.SearchResult{}, nil
	}

	vec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return docrag.RankEntries(vec, idx.entries, k), nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns the index entries in insertion order.
func (idx *Index) Entries() []docrag.IndexEntry {
	return idx.entries
}
