package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
)

var _ docrag.URLSource = (*Discoverer)(nil)

// Discoverer lists documentation URLs from the site's sitemap, falling back
// to a link walk when the sitemap yields nothing.
type Discoverer struct {
	Sitemaps docrag.SitemapService

	// Filter restricts discovered URLs; nil keeps all.
	Filter *docrag.URLFilter

	// Walker is used when the sitemap is empty; nil disables the fallback.
	Walker *Walker
}

// Discover returns candidate page URLs for sourceURL in discovery order.
func (d *Discoverer) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	urls, err := d.Sitemaps.DiscoverURLs(ctx, sourceURL, d.Filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	if len(urls) > 0 || d.Walker == nil {
		return urls, nil
	}

	urls, err = d.Walker.Walk(ctx, sourceURL, d.Filter)
	if err != nil {
		return nil, fmt.Errorf("link walk: %w", err)
	}
	return urls, nil
}
