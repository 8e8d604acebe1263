// Package http provides HTTP-based implementations of docrag.Fetcher and
// docrag.SitemapService for static documentation sites.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docrag"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// MaxBodySize caps how much of a page is read.
const MaxBodySize = 8 << 20

// Ensure Fetcher implements docrag.Fetcher at compile time.
var _ docrag.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. The client's timeout is
// replaced by the configured fetch timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return "docrag/" + docrag.Version
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: UserAgent(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	} else {
		c := *f.client
		f.client = &c
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the HTML content from the given URL. Non-200 responses
// and empty bodies are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", docrag.Errorf(docrag.ENOTFOUND, "empty body for %s", url)
	}

	return string(body), nil
}

// statusError classifies a non-200 response. Missing pages are ENOTFOUND,
// throttling and server failures EUNAVAILABLE.
func statusError(code int, url string) error {
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return docrag.Errorf(docrag.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusTooManyRequests || code >= 500:
		return docrag.Errorf(docrag.EUNAVAILABLE, "HTTP %d for %s", code, url)
	default:
		return docrag.Errorf(docrag.EINVALID, "HTTP %d for %s", code, url)
	}
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
