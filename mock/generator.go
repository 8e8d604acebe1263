package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.Generator = (*Generator)(nil)

// Generator is a mock implementation of docrag.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt docrag.Prompt) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt docrag.Prompt) (string, error) {
	return g.GenerateFn(ctx, prompt)
}
