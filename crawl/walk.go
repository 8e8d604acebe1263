package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docrag"
	"golang.org/x/sync/errgroup"
)

// Walk defaults.
const (
	DefaultWalkLimit       = 1000
	DefaultWalkConcurrency = 3

	// Bloom filter sizing for the walk frontier.
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Walker discovers documentation pages by following links from a start
// page. It stays on the start page's host and under its directory.
//
// Pages are fetched in rounds of up to Concurrency links popped from a
// priority frontier. Results of a round are handled in pop order, so the
// walk is deterministic for a given site.
type Walker struct {
	Fetcher docrag.Fetcher
	Links   docrag.LinkExtractor

	// RateLimiter spaces requests per host; nil disables it.
	RateLimiter docrag.DomainLimiter

	// Concurrency bounds in-flight fetches. Defaults to DefaultWalkConcurrency.
	Concurrency int

	// Limit caps the number of pages fetched. Defaults to DefaultWalkLimit.
	Limit int

	// RetryDelays enables retries of failed fetches; nil means one attempt.
	RetryDelays []time.Duration
}

type walkResult struct {
	link  docrag.DiscoveredLink
	links []docrag.DiscoveredLink
	err   error
}

// Walk returns the in-scope URLs of the pages it fetched successfully, in
// visit order. Links that fail filter are neither visited nor returned; the
// start page is always visited but returned only if it passes filter.
// Failed pages are skipped. Only an invalid start URL or context
// cancellation returns an error.
func (w *Walker) Walk(ctx context.Context, startURL string, filter *docrag.URLFilter) ([]string, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "invalid start URL: %q", startURL)
	}
	prefix := scopePrefix(start.Path)

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultWalkConcurrency
	}
	limit := w.Limit
	if limit <= 0 {
		limit = DefaultWalkLimit
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(docrag.DiscoveredLink{URL: startURL, Priority: docrag.PriorityNavigation})

	var visited []string
	fetched := 0
	for fetched < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var batch []docrag.DiscoveredLink
		for len(batch) < concurrency && fetched+len(batch) < limit {
			link, ok := frontier.Pop()
			if !ok {
				break
			}
			batch = append(batch, link)
		}
		if len(batch) == 0 {
			break
		}
		fetched += len(batch)

		results, err := w.visit(ctx, batch)
		if err != nil {
			return nil, err
		}

		for _, r := range results {
			if r.err != nil {
				continue
			}
			if filter.Match(r.link.URL) {
				visited = append(visited, r.link.URL)
			}
			for _, l := range r.links {
				if inScope(l.URL, start.Host, prefix) && filter.Match(l.URL) {
					frontier.Push(l)
				}
			}
		}
	}

	return visited, nil
}

// visit fetches a batch of links concurrently and extracts their links.
func (w *Walker) visit(ctx context.Context, batch []docrag.DiscoveredLink) ([]walkResult, error) {
	results := make([]walkResult, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	for i, link := range batch {
		g.Go(func() error {
			results[i] = walkResult{link: link}
			if err := waitFor(gctx, w.RateLimiter, link.URL); err != nil {
				return err
			}
			html, err := FetchWithRetry(gctx, link.URL, w.Fetcher.Fetch, w.RetryDelays, nil)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				results[i].err = err
				return nil
			}
			links, err := w.Links.ExtractLinks(html, link.URL)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].links = links
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return results, nil
}

// scopePrefix returns the directory a walk is confined to: the start path
// itself when it ends in a slash, else its parent directory when the last
// segment names a file, else the path as a directory.
func scopePrefix(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	i := strings.LastIndex(p, "/")
	if strings.Contains(p[i+1:], ".") {
		return p[:i+1]
	}
	return p + "/"
}

func inScope(rawURL, host, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != host {
		return false
	}
	return docrag.MatchesPathPrefix(rawURL, prefix)
}
