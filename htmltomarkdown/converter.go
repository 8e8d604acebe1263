// Package htmltomarkdown renders documentation HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrag"
)

// Ensure Converter implements docrag.Converter at compile time.
var _ docrag.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
//
// Sphinx markup is cleaned up first: permalink anchors are dropped and
// highlighted blocks (div.highlight-<lang>) become fenced code with a
// language hint.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithBulletListMarker("-"),
			),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	prepared, err := prepareSphinx(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(prepared)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// prepareSphinx rewrites Sphinx-specific markup that html-to-markdown would
// otherwise render as noise.
func prepareSphinx(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("a.headerlink").Remove()

	doc.Find("div[class*='highlight-'] pre").Each(func(_ int, pre *goquery.Selection) {
		lang := highlightLanguage(pre)
		if lang == "" || pre.Find("code").Length() > 0 {
			return
		}
		code := pre.Text()
		pre.SetHtml("")
		pre.AppendHtml(`<code class="language-` + lang + `"></code>`)
		pre.Find("code").SetText(code)
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return goquery.OuterHtml(doc.Selection)
	}
	return body.Html()
}

// highlightLanguage returns <lang> from the nearest div.highlight-<lang>
// ancestor, ignoring the "default" placeholder Sphinx uses for plain text.
func highlightLanguage(pre *goquery.Selection) string {
	class, _ := pre.Closest("div[class*='highlight-']").Attr("class")
	for _, c := range strings.Fields(class) {
		lang, ok := strings.CutPrefix(c, "highlight-")
		if ok && lang != "" && lang != "default" && lang != "none" {
			return lang
		}
	}
	return ""
}
