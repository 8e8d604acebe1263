package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docrag.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ docrag.UnitFetcher = (*UnitFetcher)(nil)

// UnitFetcher is a mock implementation of docrag.UnitFetcher.
type UnitFetcher struct {
	FetchUnitsFn func(ctx context.Context, urls []string, progress docrag.FetchProgressFunc) ([]*docrag.TextUnit, error)
}

func (f *UnitFetcher) FetchUnits(ctx context.Context, urls []string, progress docrag.FetchProgressFunc) ([]*docrag.TextUnit, error) {
	return f.FetchUnitsFn(ctx, urls, progress)
}
