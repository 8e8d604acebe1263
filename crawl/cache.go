package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/docrag"
)

// PageCache holds pages fetched during a link walk so the unit fetch that
// follows discovery does not request them again.
type PageCache struct {
	mu    sync.Mutex
	pages map[string]string
}

// NewPageCache creates an empty PageCache.
func NewPageCache() *PageCache {
	return &PageCache{pages: make(map[string]string)}
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Recording returns a Fetcher that stores every page next fetches
// successfully.
func (c *PageCache) Recording(next docrag.Fetcher) docrag.Fetcher {
	return &recordingFetcher{cache: c, next: next}
}

// Serving returns a Fetcher that answers from the cache and falls through to
// next on a miss. A cached page is served once and then evicted.
func (c *PageCache) Serving(next docrag.Fetcher) docrag.Fetcher {
	return &servingFetcher{cache: c, next: next}
}

func (c *PageCache) put(url, html string) {
	c.mu.Lock()
	c.pages[url] = html
	c.mu.Unlock()
}

func (c *PageCache) take(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	html, ok := c.pages[url]
	if ok {
		delete(c.pages, url)
	}
	return html, ok
}

type recordingFetcher struct {
	cache *PageCache
	next  docrag.Fetcher
}

func (f *recordingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	f.cache.put(url, html)
	return html, nil
}

// Close is a no-op; the wrapped fetcher is closed by its owner.
func (f *recordingFetcher) Close() error { return nil }

type servingFetcher struct {
	cache *PageCache
	next  docrag.Fetcher
}

func (f *servingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if html, ok := f.cache.take(url); ok {
		return html, nil
	}
	return f.next.Fetch(ctx, url)
}

func (f *servingFetcher) Close() error { return nil }
