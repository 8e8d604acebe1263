package docrag

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Embedding defaults.
const (
	DefaultEmbedConcurrency = 4
	DefaultEmbedBatchSize   = 100
)

// Embedder converts text into a fixed-dimension vector.
// Build and query must use the same Embedder for similarity to be meaningful.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder vectorizes multiple texts in a single request.
// The returned slice has one vector per input text, in input order.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedOptions configures EmbedChunks.
type EmbedOptions struct {
	// Concurrency bounds the number of outstanding embedding requests.
	Concurrency int

	// BatchSize is the number of texts per request when the embedder
	// implements BatchEmbedder.
	BatchSize int
}

// EmbedChunks embeds the content of every chunk and returns the vectors in
// chunk order. The first failing request cancels the rest and its error is
// returned; no partial result is produced.
func EmbedChunks(ctx context.Context, e Embedder, chunks []*Chunk, opts EmbedOptions) ([][]float32, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultEmbedConcurrency
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}

	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	if be, ok := e.(BatchEmbedder); ok {
		for offset := 0; offset < len(chunks); offset += batchSize {
			end := min(offset+batchSize, len(chunks))
			g.Go(func() error {
				texts := make([]string, 0, end-offset)
				for _, c := range chunks[offset:end] {
					texts = append(texts, c.Content)
				}
				batch, err := be.EmbedBatch(gctx, texts)
				if err != nil {
					return fmt.Errorf("embed chunks %d-%d: %w", offset, end-1, err)
				}
				if len(batch) != len(texts) {
					return Errorf(EINTERNAL, "embedding service returned %d vectors for %d texts", len(batch), len(texts))
				}
				copy(vectors[offset:end], batch)
				return nil
			})
		}
	} else {
		for i, c := range chunks {
			g.Go(func() error {
				vec, err := e.Embed(gctx, c.Content)
				if err != nil {
					return fmt.Errorf("embed chunk %d of %s: %w", c.Position, c.Source, err)
				}
				vectors[i] = vec
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkDimensions(vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}

// checkDimensions verifies that every vector is non-empty and has the same
// length as the first.
func checkDimensions(vectors [][]float32) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) == 0 {
			return Errorf(EINTERNAL, "empty embedding for chunk %d", i)
		}
		if len(v) != dim {
			return Errorf(EINTERNAL, "embedding dimension mismatch: chunk %d has %d, want %d", i, len(v), dim)
		}
	}
	return nil
}
