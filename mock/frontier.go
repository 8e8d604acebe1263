package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docrag.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ docrag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docrag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]docrag.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docrag.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
