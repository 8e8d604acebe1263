package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrag"
)

var (
	_ docrag.Embedder      = (*LoggingEmbedder)(nil)
	_ docrag.BatchEmbedder = (*LoggingEmbedder)(nil)
)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   docrag.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docrag.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.DebugContext(ctx, "embed",
			"chars", len(text),
			"dim", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// EmbedBatch delegates to the wrapped embedder's batch call, or embeds the
// texts one at a time when it has none.
func (e *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.InfoContext(ctx, "embed batch",
			"texts", len(texts),
			"vectors", len(vecs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	if be, ok := e.next.(docrag.BatchEmbedder); ok {
		return be.EmbedBatch(ctx, texts)
	}
	vecs = make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.next.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vecs[i] = v
	}
	return vecs, nil
}
