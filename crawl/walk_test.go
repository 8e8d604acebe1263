package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/crawl"
	"github.com/fwojciec/docrag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site is an in-memory link graph: page URL to the links it contains.
type site map[string][]docrag.DiscoveredLink

func (s site) walker() *crawl.Walker {
	return &crawl.Walker{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if _, ok := s[url]; !ok {
					return "", errors.New("HTTP 404 for " + url)
				}
				return url, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, _ string) ([]docrag.DiscoveredLink, error) {
				return s[html], nil
			},
		},
	}
}

func link(url string, p docrag.LinkPriority) docrag.DiscoveredLink {
	return docrag.DiscoveredLink{URL: url, Priority: p}
}

const root = "https://docs.godotengine.org/en/stable/"

func godotSite() site {
	return site{
		root: {
			link(root+"getting_started/index.html", docrag.PriorityTOC),
			link(root+"classes/class_node.html", docrag.PriorityContent),
			link("https://docs.godotengine.org/en/latest/index.html", docrag.PriorityNavigation),
			link("https://godotengine.org/download", docrag.PriorityNavigation),
		},
		root + "getting_started/index.html": {
			link(root+"getting_started/step_by_step/nodes.html", docrag.PriorityTOC),
			link(root, docrag.PriorityNavigation),
		},
		root + "classes/class_node.html": {
			link(root+"classes/class_node2d.html", docrag.PriorityContent),
			link(root+"missing.html", docrag.PriorityFallback),
		},
		root + "getting_started/step_by_step/nodes.html": nil,
		root + "classes/class_node2d.html":               nil,
	}
}

func TestWalker_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits in-scope pages by priority", func(t *testing.T) {
		t.Parallel()

		w := godotSite().walker()
		w.Concurrency = 1

		urls, err := w.Walk(context.Background(), root, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			root,
			root + "getting_started/index.html",
			root + "getting_started/step_by_step/nodes.html",
			root + "classes/class_node.html",
			root + "classes/class_node2d.html",
		}, urls)
	})

	t.Run("produces the same order on repeated walks", func(t *testing.T) {
		t.Parallel()

		s := godotSite()
		first, err := s.walker().Walk(context.Background(), root, nil)
		require.NoError(t, err)

		for range 5 {
			again, err := s.walker().Walk(context.Background(), root, nil)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("stops at the page limit", func(t *testing.T) {
		t.Parallel()

		w := godotSite().walker()
		w.Limit = 2

		urls, err := w.Walk(context.Background(), root, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("skips links rejected by the filter", func(t *testing.T) {
		t.Parallel()

		filter, err := docrag.NewURLFilter(nil, []string{"/classes/"})
		require.NoError(t, err)

		urls, err := godotSite().walker().Walk(context.Background(), root, filter)

		require.NoError(t, err)
		for _, u := range urls {
			assert.NotContains(t, u, "/classes/")
		}
		assert.Contains(t, urls, root+"getting_started/step_by_step/nodes.html")
	})

	t.Run("scopes a file start URL to its directory", func(t *testing.T) {
		t.Parallel()

		start := root + "getting_started/index.html"

		urls, err := godotSite().walker().Walk(context.Background(), start, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{start, root + "getting_started/step_by_step/nodes.html"}, urls)
	})

	t.Run("waits on the rate limiter for each fetch", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		waits := 0
		w := godotSite().walker()
		w.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, "docs.godotengine.org", domain)
				waits++
				return nil
			},
		}

		_, err := w.Walk(context.Background(), root, nil)

		require.NoError(t, err)
		// Five pages plus the missing one.
		assert.Equal(t, 6, waits)
	})

	t.Run("returns EINVALID for a relative start URL", func(t *testing.T) {
		t.Parallel()

		_, err := godotSite().walker().Walk(context.Background(), "/en/stable/", nil)

		require.Error(t, err)
		assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := godotSite().walker().Walk(ctx, root, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
