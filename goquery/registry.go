package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrag"
)

// linkRule maps a CSS selector to the priority and label of its links.
type linkRule struct {
	selector string
	priority docrag.LinkPriority
	source   string
}

// Profile describes where a framework puts a page's content and links.
type Profile struct {
	Framework Framework

	// Content lists content-region selectors, most specific first. They are
	// tried before the generic regions.
	Content []string

	// Chrome is removed from the content region in addition to the generic
	// chrome selector.
	Chrome string

	links []linkRule
}

// genericProfile applies to pages of unknown frameworks.
var genericProfile = &Profile{
	links: []linkRule{
		{".toc a[href], .table-of-contents a[href], .sidebar a[href]", docrag.PriorityTOC, "toc"},
		{"nav a[href], [role='navigation'] a[href]", docrag.PriorityNavigation, "nav"},
		{"[role='main'] a[href], main a[href], article a[href]", docrag.PriorityContent, "content"},
		{"footer a[href]", docrag.PriorityFooter, "footer"},
	},
}

// builtinProfiles holds the profiles registered by NewRegistry.
// Read the Docs themes render the table of contents in .wy-menu-vertical.
var builtinProfiles = []*Profile{
	{
		Framework: FrameworkSphinx,
		Content:   []string{"div[role='main']", ".body", ".document"},
		Chrome:    ".wy-nav-side, .sphinxsidebar, .rst-footer-buttons",
		links: []linkRule{
			{".wy-menu-vertical a[href], .toctree-wrapper a[href], #localtoc a[href]", docrag.PriorityTOC, "toc"},
			{".wy-nav-side a[href], .sphinxsidebar a[href], nav a[href]", docrag.PriorityNavigation, "nav"},
			{"[role='main'] a[href], .body a[href], article a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkMkDocs,
		Content:   []string{"article.md-content__inner", ".md-content"},
		Chrome:    ".md-sidebar, .md-source-file",
		links: []linkRule{
			{".md-sidebar--secondary a[href], [data-md-component='toc'] a[href]", docrag.PriorityTOC, "toc"},
			{".md-nav--primary a[href], [data-md-component='navigation'] a[href]", docrag.PriorityNavigation, "nav"},
			{".md-content a[href], article a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkDocusaurus,
		Content:   []string{".theme-doc-markdown", "article"},
		Chrome:    ".theme-doc-breadcrumbs, .theme-doc-toc-mobile, .pagination-nav, a.hash-link",
		links: []linkRule{
			{".table-of-contents a[href]", docrag.PriorityTOC, "toc"},
			{".theme-doc-sidebar-container a[href], nav.navbar a[href]", docrag.PriorityNavigation, "sidebar"},
			{"article a[href], main a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkVitePress,
		Content:   []string{".vp-doc", ".VPDoc"},
		Chrome:    ".VPDocAsideOutline, .prev-next, .edit-info, a.header-anchor",
		links: []linkRule{
			{".VPDocAsideOutline a[href]", docrag.PriorityTOC, "toc"},
			{".VPSidebar a[href], .VPNav a[href]", docrag.PriorityNavigation, "sidebar"},
			{".VPDoc a[href], main a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkVuePress,
		Content:   []string{".theme-default-content"},
		Chrome:    ".page-nav, .page-edit, a.header-anchor",
		links: []linkRule{
			{".sidebar-links a[href], .sidebar a[href]", docrag.PriorityNavigation, "sidebar"},
			{".theme-default-content a[href], main a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkGitBook,
		Content:   []string{"[data-testid='page.contentEditor']", "main"},
		Chrome:    "[data-testid='page.desktopTableOfContents']",
		links: []linkRule{
			{"[data-testid='page.desktopTableOfContents'] a[href]", docrag.PriorityTOC, "toc"},
			{"[data-testid='space.sidebar'] a[href], [data-testid='space.header'] a[href]", docrag.PriorityNavigation, "sidebar"},
			{"[data-testid='page.contentEditor'] a[href], main a[href], article a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
	{
		Framework: FrameworkNextra,
		Content:   []string{"article", "main"},
		Chrome:    ".nextra-toc, .nextra-breadcrumb, .nextra-sidebar",
		links: []linkRule{
			{".nextra-toc a[href]", docrag.PriorityTOC, "toc"},
			{".nextra-sidebar a[href], .nextra-navbar a[href]", docrag.PriorityNavigation, "sidebar"},
			{"main a[href], article a[href]", docrag.PriorityContent, "content"},
			{"footer a[href]", docrag.PriorityFooter, "footer"},
		},
	},
}

// Registry resolves the profile of a page by detecting its framework.
type Registry struct {
	detector *Detector
	profiles map[Framework]*Profile
}

// NewRegistry returns a Registry holding the built-in framework profiles.
func NewRegistry() *Registry {
	r := &Registry{
		detector: NewDetector(),
		profiles: make(map[Framework]*Profile, len(builtinProfiles)),
	}
	for _, p := range builtinProfiles {
		r.profiles[p.Framework] = p
	}
	return r
}

// Get returns the profile registered for framework, or nil.
func (r *Registry) Get(framework Framework) *Profile {
	return r.profiles[framework]
}

// ProfileFor detects the framework of doc and returns its profile. Pages of
// unknown frameworks get the generic profile, whose Framework is
// FrameworkUnknown.
func (r *Registry) ProfileFor(doc *goquery.Document) *Profile {
	if p, ok := r.profiles[r.detector.DetectDocument(doc)]; ok {
		return p
	}
	return genericProfile
}

// LinkExtractor returns a LinkExtractor using this registry.
func (r *Registry) LinkExtractor() *LinkExtractor {
	return &LinkExtractor{registry: r}
}
