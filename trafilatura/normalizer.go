// Package trafilatura provides a tickerlens.Normalizer built on
// go-trafilatura's main-content extraction. Compared to the DOM
// heuristics in the goquery package it handles cluttered news layouts
// better at the cost of heavier dependencies.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/tickerlens/tickerlens"
)

// Ensure Normalizer implements tickerlens.Normalizer at compile time.
var _ tickerlens.Normalizer = (*Normalizer)(nil)

// Normalizer converts raw article HTML into a Document using
// main-content extraction.
type Normalizer struct {
	// MinLength is the minimum body text length for a page to qualify
	// as an article. Defaults to tickerlens.MinArticleLength.
	MinLength int
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{MinLength: tickerlens.MinArticleLength}
}

// Normalize extracts the main content of the page and returns a
// Document. Pages whose extracted body is shorter than MinLength are
// rejected with EREJECTED.
func (n *Normalizer) Normalize(rawHTML, sourceURL string) (*tickerlens.Document, error) {
	if rawHTML == "" {
		return nil, tickerlens.Errorf(tickerlens.EINVALID, "empty HTML input")
	}

	parsed, host, err := parseSource(sourceURL)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    parsed,
	}
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, tickerlens.Errorf(tickerlens.EREJECTED, "content extraction failed: %v", err)
	}

	body := strings.Join(strings.Fields(result.ContentText), " ")
	minLength := n.MinLength
	if minLength <= 0 {
		minLength = tickerlens.MinArticleLength
	}
	if len(body) < minLength {
		return nil, tickerlens.Errorf(tickerlens.EREJECTED, "article body too short: %d chars", len(body))
	}

	doc := &tickerlens.Document{
		URL:      sourceURL,
		Title:    result.Metadata.Title,
		BodyText: body,
		Host:     host,
		Language: language(result.Metadata.Language),
	}
	if !result.Metadata.Date.IsZero() {
		published := result.Metadata.Date.UTC()
		doc.PublishedAt = &published
	}
	return doc, nil
}

// parseSource extracts the host of a source URL, defaulting schemeless
// URLs to https.
func parseSource(sourceURL string) (*url.URL, string, error) {
	raw := sourceURL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return nil, "", tickerlens.Errorf(tickerlens.EINVALID, "source URL has no host: %q", sourceURL)
	}
	return parsed, parsed.Hostname(), nil
}

func language(lang string) string {
	if lang == "" {
		return "unknown"
	}
	return lang
}
