package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docrag.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docrag.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docrag.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ docrag.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of docrag.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}
