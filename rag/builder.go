// Package rag composes the build phase (discover, fetch, split, dedupe,
// index) and the answering pipeline (retrieve, assemble, generate, cite).
package rag

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
)

// DefaultMaxUnits caps the number of pages fetched per build.
const DefaultMaxUnits = 600

// BuildStats summarizes a build.
type BuildStats struct {
	URLs         int // discovered, after truncation
	Units        int // pages that yielded text
	DupUnits     int // pages dropped for repeating an earlier page's content
	Bytes        int // of unit content
	Chunks       int // before dedup
	UniqueChunks int
	Tokens       int // of unique chunks; zero without a TokenCounter
}

// Builder runs the build phase for one documentation site.
type Builder struct {
	Sources docrag.URLSource
	Fetcher docrag.UnitFetcher
	Indexer docrag.IndexBuilder

	// Split configures chunking. The zero value selects the defaults.
	Split docrag.SplitOptions

	// MaxUnits truncates the discovered URL list; zero or less means no cap.
	MaxUnits int

	// TokenCounter, if set, is used to report the token size of the corpus.
	TokenCounter docrag.TokenCounter

	// Progress, if set, receives fetch progress events.
	Progress docrag.FetchProgressFunc
}

// FetchDocs discovers the site's pages, truncates the list to MaxUnits, and
// fetches them into text units in discovery order.
func (b *Builder) FetchDocs(ctx context.Context, sourceURL string) ([]*docrag.TextUnit, int, error) {
	urls, err := b.Sources.Discover(ctx, sourceURL)
	if err != nil {
		return nil, 0, fmt.Errorf("discover %s: %w", sourceURL, err)
	}
	if b.MaxUnits > 0 && len(urls) > b.MaxUnits {
		urls = urls[:b.MaxUnits]
	}

	units, err := b.Fetcher.FetchUnits(ctx, urls, b.Progress)
	if err != nil {
		return nil, len(urls), err
	}
	return units, len(urls), nil
}

// Build fetches the site and indexes it. An empty site yields an empty
// index, not an error.
func (b *Builder) Build(ctx context.Context, sourceURL string) (docrag.Index, BuildStats, error) {
	units, n, err := b.FetchDocs(ctx, sourceURL)
	if err != nil {
		return nil, BuildStats{URLs: n}, err
	}

	idx, stats, err := b.BuildUnits(ctx, units)
	stats.URLs = n
	return idx, stats, err
}

// BuildUnits drops duplicate pages, then splits, dedupes, and indexes the
// remaining units.
func (b *Builder) BuildUnits(ctx context.Context, units []*docrag.TextUnit) (docrag.Index, BuildStats, error) {
	stats := BuildStats{Units: len(units)}
	for _, u := range units {
		stats.Bytes += len(u.Content)
	}
	units = docrag.DedupeUnits(units)
	stats.DupUnits = stats.Units - len(units)

	opts := b.Split
	if opts == (docrag.SplitOptions{}) {
		opts = docrag.DefaultSplitOptions()
	}
	chunks, err := docrag.SplitUnits(units, opts)
	if err != nil {
		return nil, stats, err
	}
	stats.Chunks = len(chunks)

	unique := docrag.DedupeChunks(chunks)
	stats.UniqueChunks = len(unique)

	if b.TokenCounter != nil {
		for _, c := range unique {
			n, err := b.TokenCounter.CountTokens(ctx, c.Content)
			if err != nil {
				return nil, stats, fmt.Errorf("count tokens: %w", err)
			}
			stats.Tokens += n
		}
	}

	idx, err := b.Indexer.Build(ctx, unique)
	if err != nil {
		return nil, stats, err
	}
	return idx, stats, nil
}
