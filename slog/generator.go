package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrag"
)

var _ docrag.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   docrag.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next docrag.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt docrag.Prompt) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.InfoContext(ctx, "generate",
			"prompt_chars", len(prompt.System)+len(prompt.User),
			"answer_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
