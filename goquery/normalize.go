// Package goquery implements HTML processing with goquery: reducing
// documentation pages to plain text and extracting links for the walker.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrag"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements docrag.Normalizer at compile time.
var _ docrag.Normalizer = (*Normalizer)(nil)

// regionSelectors name the generic content containers, most specific
// first.
var regionSelectors = []string{
	"div[role='main']",
	"[role='main']",
	"main",
	"article",
}

// chromeSelector matches page chrome removed from the content region.
const chromeSelector = "nav, aside, header, footer, script, style, noscript, a.headerlink"

var blockElements = map[string]bool{
	"address": true, "blockquote": true, "dd": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "figure": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "li": true,
	"ol": true, "p": true, "section": true, "table": true, "tr": true,
	"ul": true, "pre": true,
}

// Normalizer reduces a documentation page to its main text.
type Normalizer struct {
	registry  *Registry
	converter docrag.Converter
	extractor docrag.Extractor
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithConverter renders the cleaned content region through c (for example
// as Markdown) instead of flattening it to plain text.
func WithConverter(c docrag.Converter) Option {
	return func(n *Normalizer) {
		n.converter = c
	}
}

// WithExtractor uses e to locate the main content of pages that have no
// designated content container.
func WithExtractor(e docrag.Extractor) Option {
	return func(n *Normalizer) {
		n.extractor = e
	}
}

// WithRegistry sets the framework profiles used to locate content.
func WithRegistry(r *Registry) Option {
	return func(n *Normalizer) {
		n.registry = r
	}
}

// NewNormalizer creates a new Normalizer. Without WithRegistry it uses the
// built-in framework profiles.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	if n.registry == nil {
		n.registry = NewRegistry()
	}
	return n
}

// Normalize extracts the page title and the text of its content region.
//
// The region is the first container found among the selectors of the
// page's framework profile and then the generic containers, else the body.
// Page chrome inside it is removed and each pre block becomes a fenced code
// block. If the region yields no text, the whole document's text is used.
// Returns ENOTFOUND when the page has no text at all.
func (n *Normalizer) Normalize(rawHTML string) (*docrag.NormalizeResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	profile := n.registry.ProfileFor(doc)
	region, designated := contentRegion(doc, profile)
	if !designated && n.extractor != nil {
		if sel, extractedTitle, ok := n.extract(rawHTML); ok {
			region = sel
			if title == "" {
				title = extractedTitle
			}
		}
	}

	region.Find(chromeSelector).Remove()
	if profile.Chrome != "" {
		region.Find(profile.Chrome).Remove()
	}

	text, err := n.render(region)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = docrag.NormalizeText(cleanLines(flatten(doc.Selection)))
	}
	if text == "" {
		return nil, docrag.Errorf(docrag.ENOTFOUND, "page has no text content")
	}

	return &docrag.NormalizeResult{Title: title, Text: text}, nil
}

// contentRegion returns the first designated content container, reporting
// whether one was found. Without one it returns the body, or the whole
// document when there is no body.
func contentRegion(doc *goquery.Document, profile *Profile) (*goquery.Selection, bool) {
	for _, selector := range profile.Content {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel, true
		}
	}
	for _, selector := range regionSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel, true
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body, false
	}
	return doc.Selection, false
}

// extract runs the configured extractor and parses its content HTML.
// Extractor failures are not fatal: the caller keeps the body region.
func (n *Normalizer) extract(rawHTML string) (*goquery.Selection, string, bool) {
	res, err := n.extractor.Extract(rawHTML)
	if err != nil || strings.TrimSpace(res.ContentHTML) == "" {
		return nil, "", false
	}
	sub, err := goquery.NewDocumentFromReader(strings.NewReader(res.ContentHTML))
	if err != nil {
		return nil, "", false
	}
	return sub.Find("body").First(), res.Title, true
}

func (n *Normalizer) render(region *goquery.Selection) (string, error) {
	if n.converter != nil {
		h, err := region.Html()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(h) == "" {
			return "", nil
		}
		md, err := n.converter.Convert(h)
		if err != nil {
			return "", err
		}
		return docrag.NormalizeText(md), nil
	}

	region.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		pre.ReplaceWithNodes(&html.Node{
			Type: html.TextNode,
			Data: "\n" + docrag.FenceCode(pre.Text()) + "\n",
		})
	})
	return docrag.NormalizeText(cleanLines(flatten(region))), nil
}

// flatten concatenates the text of the selection's nodes, surrounding block
// elements with line breaks so paragraphs stay apart.
func flatten(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		writeText(&sb, node)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			sb.WriteString("\n")
			return
		case "script", "style", "noscript", "template":
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteString("\n")
	}
}

// cleanLines strips trailing whitespace from every line so whitespace-only
// lines count as blank when runs of newlines are collapsed.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}
