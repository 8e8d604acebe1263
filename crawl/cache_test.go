package crawl_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/crawl"
	"github.com/fwojciec/docrag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCache(t *testing.T) {
	t.Parallel()

	const nodesURL = "https://docs.godotengine.org/en/stable/nodes.html"

	countingFetcher := func(calls *atomic.Int32) *mock.Fetcher {
		return &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calls.Add(1)
				if url == nodesURL {
					return "<html>nodes</html>", nil
				}
				return "", docrag.Errorf(docrag.ENOTFOUND, "HTTP 404 for %s", url)
			},
		}
	}

	t.Run("serves a recorded page without fetching again", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		next := countingFetcher(&calls)
		cache := crawl.NewPageCache()

		_, err := cache.Recording(next).Fetch(context.Background(), nodesURL)
		require.NoError(t, err)
		html, err := cache.Serving(next).Fetch(context.Background(), nodesURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>nodes</html>", html)
		assert.Equal(t, int32(1), calls.Load())
		assert.Zero(t, cache.Len())
	})

	t.Run("falls through on a miss", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := crawl.NewPageCache()

		html, err := cache.Serving(countingFetcher(&calls)).Fetch(context.Background(), nodesURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>nodes</html>", html)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not record failed fetches", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := crawl.NewPageCache()

		_, err := cache.Recording(countingFetcher(&calls)).Fetch(context.Background(), "https://docs.godotengine.org/en/stable/missing.html")

		require.Error(t, err)
		assert.Equal(t, docrag.ENOTFOUND, docrag.ErrorCode(err))
		assert.Zero(t, cache.Len())
	})

	t.Run("serves each page once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		next := countingFetcher(&calls)
		cache := crawl.NewPageCache()
		serving := cache.Serving(next)

		_, err := cache.Recording(next).Fetch(context.Background(), nodesURL)
		require.NoError(t, err)
		_, err = serving.Fetch(context.Background(), nodesURL)
		require.NoError(t, err)
		_, err = serving.Fetch(context.Background(), nodesURL)
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cache := crawl.NewPageCache()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := cache.Serving(countingFetcher(&calls)).Fetch(ctx, nodesURL)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls.Load())
	})

	t.Run("wrappers do not close the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		next := &mock.Fetcher{CloseFn: func() error {
			t.Fatal("wrapped fetcher closed")
			return nil
		}}
		cache := crawl.NewPageCache()

		assert.NoError(t, cache.Recording(next).Close())
		assert.NoError(t, cache.Serving(next).Close())
	})
}
