package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.Index = (*Index)(nil)

// Index is a mock implementation of docrag.Index.
type Index struct {
	SearchFn func(ctx context.Context, query string, k int) ([]docrag.SearchResult, error)
	LenFn    func() int
}

func (i *Index) Search(ctx context.Context, query string, k int) ([]docrag.SearchResult, error) {
	return i.SearchFn(ctx, query, k)
}

func (i *Index) Len() int {
	return i.LenFn()
}

var _ docrag.IndexBuilder = (*IndexBuilder)(nil)

// IndexBuilder is a mock implementation of docrag.IndexBuilder.
type IndexBuilder struct {
	BuildFn func(ctx context.Context, chunks []*docrag.Chunk) (docrag.Index, error)
}

func (b *IndexBuilder) Build(ctx context.Context, chunks []*docrag.Chunk) (docrag.Index, error) {
	return b.BuildFn(ctx, chunks)
}
