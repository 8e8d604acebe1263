package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the generator that produced a documentation site.
type Framework string

// Recognized documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkSphinx     Framework = "sphinx"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// marker is a selector whose presence identifies a framework.
type marker struct {
	framework Framework
	selector  string
}

// Markers are checked in order. VitePress precedes VuePress because both
// share some VuePress class names.
var markers = []marker{
	{FrameworkDocusaurus, "#__docusaurus_skipToContent_fallback, .theme-doc-sidebar-container, .theme-doc-markdown"},
	{FrameworkMkDocs, "[data-md-color-scheme], [data-md-component], .md-nav--primary"},
	{FrameworkSphinx, ".wy-nav-side, .wy-menu-vertical, .toctree-wrapper, .sphinxsidebar"},
	{FrameworkVitePress, "#VPContent, .VPDoc, .vp-doc"},
	{FrameworkVuePress, ".theme-default-content, .sidebar-links, .vuepress-navbar"},
	{FrameworkGitBook, "[data-testid='space.sidebar'], [data-testid='page.contentEditor']"},
	{FrameworkNextra, ".nextra-navbar, .nextra-sidebar, .nextra-toc"},
}

// generators maps substrings of <meta name="generator"> to frameworks.
// VitePress is listed before VuePress for the same reason as in markers.
var generators = []struct {
	substr    string
	framework Framework
}{
	{"sphinx", FrameworkSphinx},
	{"mkdocs", FrameworkMkDocs},
	{"docusaurus", FrameworkDocusaurus},
	{"vitepress", FrameworkVitePress},
	{"vuepress", FrameworkVuePress},
	{"gitbook", FrameworkGitBook},
	{"nextra", FrameworkNextra},
}

// Detector identifies documentation frameworks from page markup.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect parses html and returns its framework, or FrameworkUnknown.
func (d *Detector) Detect(html string) Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FrameworkUnknown
	}
	return d.DetectDocument(doc)
}

// DetectDocument identifies the framework of a parsed page. The generator
// meta tag wins over structural markers.
func (d *Detector) DetectDocument(doc *goquery.Document) Framework {
	if gen, ok := doc.Find("meta[name='generator']").Last().Attr("content"); ok {
		gen = strings.ToLower(gen)
		for _, g := range generators {
			if strings.Contains(gen, g.substr) {
				return g.framework
			}
		}
	}

	for _, m := range markers {
		if doc.Find(m.selector).Length() > 0 {
			return m.framework
		}
	}
	return FrameworkUnknown
}
