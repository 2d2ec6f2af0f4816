package mock

import "github.com/tickerlens/tickerlens"

var _ tickerlens.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of tickerlens.Normalizer.
type Normalizer struct {
	NormalizeFn func(rawHTML string, sourceURL string) (*tickerlens.Document, error)
}

func (n *Normalizer) Normalize(rawHTML string, sourceURL string) (*tickerlens.Document, error) {
	return n.NormalizeFn(rawHTML, sourceURL)
}

var _ tickerlens.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of tickerlens.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
