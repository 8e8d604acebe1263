package docrag

import "context"

// LinkPriority orders links in the walk frontier (higher is visited first).
type LinkPriority int

// Link priority levels.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFallback   LinkPriority = 10
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink is a URL found while walking pages, with its priority.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "toc", "nav", "sidebar", "content", "footer", "fallback"
}

// LinkExtractor finds same-site links in a page.
type LinkExtractor interface {
	// ExtractLinks parses html and returns absolute links resolved
	// against baseURL. Links to other hosts and non-HTTP schemes are
	// dropped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
