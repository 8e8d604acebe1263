// Package readability locates main content with Mozilla's Readability
// heuristics, an alternative to the trafilatura extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/docrag"
	"github.com/go-shiori/go-readability"
)

var _ docrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and the HTML of its content.
// Returns ENOTFOUND when readability finds no article.
func (e *Extractor) Extract(rawHTML string) (*docrag.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, docrag.Errorf(docrag.ENOTFOUND, "no readable content: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, docrag.Errorf(docrag.ENOTFOUND, "no readable content")
	}

	return &docrag.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
