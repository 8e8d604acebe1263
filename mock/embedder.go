package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docrag.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var (
	_ docrag.Embedder      = (*BatchEmbedder)(nil)
	_ docrag.BatchEmbedder = (*BatchEmbedder)(nil)
)

// BatchEmbedder is a mock implementation of docrag.BatchEmbedder.
type BatchEmbedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *BatchEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *BatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatchFn(ctx, texts)
}
