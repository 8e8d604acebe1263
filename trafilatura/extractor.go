// Package trafilatura locates the main content of pages that carry no
// designated content container.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docrag"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip boilerplate from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comment sections are dropped and
// the readability/dom-distiller fallbacks are enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page title and the HTML of its main content.
// Returns ENOTFOUND when no content could be located.
func (e *Extractor) Extract(rawHTML string) (*docrag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, docrag.Errorf(docrag.ENOTFOUND, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &docrag.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}
