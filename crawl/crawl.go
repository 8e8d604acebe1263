// Package crawl orchestrates documentation acquisition: discovering page
// URLs, fetching pages concurrently, and normalizing them into text units.
package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/docrag"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of pages fetched at once.
const DefaultConcurrency = 10

var _ docrag.UnitFetcher = (*UnitFetcher)(nil)

// UnitFetcher fetches pages concurrently and normalizes them into text units.
type UnitFetcher struct {
	Fetcher    docrag.Fetcher
	Normalizer docrag.Normalizer

	// Metadata is copied onto every unit.
	Metadata docrag.UnitMetadata

	// Concurrency bounds in-flight fetches. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays enables retries of failed fetches; nil means one attempt.
	RetryDelays []time.Duration

	// RateLimiter spaces requests per host; nil disables it.
	RateLimiter docrag.DomainLimiter

	// OnRetry, if set, is notified before each retry.
	OnRetry RetryFunc
}

// FetchUnits fetches every URL and returns one unit per page that yielded
// text, in the order of urls. Unit Position is the URL's index in urls.
//
// A page that fails to fetch or normalize is reported through progress and
// skipped. Only context cancellation fails the batch.
func (f *UnitFetcher) FetchUnits(ctx context.Context, urls []string, progress docrag.FetchProgressFunc) ([]*docrag.TextUnit, error) {
	concurrency := f.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*docrag.TextUnit, len(urls))

	var mu sync.Mutex
	completed := 0
	report := func(url string, err error) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		completed++
		progress(docrag.FetchProgress{
			URL:       url,
			Completed: completed,
			Total:     len(urls),
			Error:     err,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, url := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			unit, err := f.fetchUnit(gctx, i, url)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = unit
			report(url, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	units := make([]*docrag.TextUnit, 0, len(urls))
	for _, u := range results {
		if u != nil {
			units = append(units, u)
		}
	}
	return units, nil
}

func (f *UnitFetcher) fetchUnit(ctx context.Context, position int, url string) (*docrag.TextUnit, error) {
	if err := waitFor(ctx, f.RateLimiter, url); err != nil {
		return nil, err
	}

	html, err := FetchWithRetry(ctx, url, f.Fetcher.Fetch, f.RetryDelays, f.OnRetry)
	if err != nil {
		return nil, err
	}

	normalized, err := f.Normalizer.Normalize(html)
	if err != nil {
		return nil, err
	}

	unit := &docrag.TextUnit{
		Source:      url,
		Title:       normalized.Title,
		Content:     normalized.Text,
		ContentHash: ComputeHash(normalized.Text),
		Position:    position,
		Metadata:    f.Metadata,
	}
	if err := unit.Validate(); err != nil {
		return nil, err
	}
	return unit, nil
}
