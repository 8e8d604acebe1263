package docrag

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor locates the main content of pages that carry no designated
// main-content container.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// NormalizeResult is a page reduced to text.
type NormalizeResult struct {
	Title string
	Text  string
}

// Normalizer reduces a raw HTML page to its primary content as text, with
// navigation chrome removed and code blocks fenced.
type Normalizer interface {
	Normalize(html string) (*NormalizeResult, error)
}
