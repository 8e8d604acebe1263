package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrag"
)

// Ensure LinkExtractor implements docrag.LinkExtractor at compile time.
var _ docrag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds same-site links in documentation pages. Link
// priorities come from the profile of the page's framework.
type LinkExtractor struct {
	registry *Registry
}

// NewLinkExtractor creates a LinkExtractor with the built-in profiles.
func NewLinkExtractor() *LinkExtractor {
	return NewRegistry().LinkExtractor()
}

// ExtractLinks parses html and returns the links it contains in document
// order, deduplicated by URL. Fragments are stripped, links to other hosts
// and non-HTTP schemes are dropped, and links back to the page itself are
// ignored. Anchors outside the known regions get PriorityFallback.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]docrag.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]int)
	var links []docrag.DiscoveredLink

	add := func(sel *goquery.Selection, priority docrag.LinkPriority, source string) {
		href, _ := sel.Attr("href")
		resolved := resolveLink(base, href)
		if resolved == "" {
			return
		}

		link := docrag.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   source,
		}
		if idx, ok := seen[resolved]; ok {
			if priority > links[idx].Priority {
				links[idx] = link
			}
			return
		}
		seen[resolved] = len(links)
		links = append(links, link)
	}

	for _, rule := range e.registry.ProfileFor(doc).links {
		doc.Find(rule.selector).Each(func(_ int, sel *goquery.Selection) {
			add(sel, rule.priority, rule.source)
		})
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		add(sel, docrag.PriorityFallback, "fallback")
	})

	return links, nil
}

// resolveLink resolves href against base and returns the absolute URL
// without its fragment. It returns "" for links that should not be
// followed: empty, unparsable, non-HTTP, other-host, or self-referential.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host != base.Host {
		return ""
	}

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
