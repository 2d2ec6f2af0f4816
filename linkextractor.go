package tickerlens

// LinkExtractor discovers outbound hyperlinks in HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute HTTP(S) URLs in
	// document order, deduplicated. The baseURL resolves relative
	// links.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
