// Package goquery provides the HTML document normalizer for tickerlens.
package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/tickerlens/tickerlens"
)

// Compile-time interface verification.
var _ tickerlens.Normalizer = (*Normalizer)(nil)

// publishedMetaSelectors are checked in order for a publish timestamp.
var publishedMetaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[name="publish_date"]`,
	`meta[name="publish-date"]`,
	`meta[itemprop="datePublished"]`,
	`meta[name="date"]`,
}

// Normalizer turns fetched pages into canonical document records.
type Normalizer struct {
	// MinLength is the article classification threshold.
	// Defaults to tickerlens.MinArticleLength.
	MinLength int
}

// NewNormalizer creates a Normalizer with the default article threshold.
func NewNormalizer() *Normalizer {
	return &Normalizer{MinLength: tickerlens.MinArticleLength}
}

// Normalize extracts a canonical document from raw HTML. It returns
// EREJECTED when the page does not qualify as an article and EINVALID when
// the source URL has no usable host. It performs no network access.
func (n *Normalizer) Normalize(rawHTML string, sourceURL string) (*tickerlens.Document, error) {
	host, err := hostOf(sourceURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, tickerlens.Errorf(tickerlens.EINVALID, "failed to parse HTML: %v", err)
	}

	body := extractBody(doc)
	minLen := n.MinLength
	if minLen <= 0 {
		minLen = tickerlens.MinArticleLength
	}
	if len(body) < minLen {
		return nil, tickerlens.Errorf(tickerlens.EREJECTED, "page is not an article: body text too short (%d chars)", len(body))
	}

	return &tickerlens.Document{
		URL:         sourceURL,
		Host:        host,
		Title:       extractTitle(doc),
		BodyText:    body,
		Language:    extractLanguage(doc),
		PublishedAt: extractPublished(doc),
	}, nil
}

// hostOf parses the host out of a source URL. A missing scheme is
// tolerated by assuming https.
func hostOf(sourceURL string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		u, err = url.Parse("https://" + sourceURL)
	}
	if err != nil || u.Hostname() == "" {
		return "", tickerlens.Errorf(tickerlens.EINVALID, "source URL %q has no host", sourceURL)
	}
	return u.Hostname(), nil
}

// extractTitle returns the first title-like element's text.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractBody joins paragraph-level text nodes in document order with
// single spaces.
func extractBody(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// extractLanguage returns the document-level language attribute, or
// "unknown" if absent.
func extractLanguage(doc *goquery.Document) string {
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		if lang = strings.TrimSpace(lang); lang != "" {
			return lang
		}
	}
	return "unknown"
}

// extractPublished looks for a publish timestamp in common metadata
// locations. Dates come in many shapes in the wild, so parsing is lenient;
// an unparseable or absent date yields nil.
func extractPublished(doc *goquery.Document) *time.Time {
	var raw string
	for _, sel := range publishedMetaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
			raw = strings.TrimSpace(content)
			break
		}
	}
	if raw == "" {
		if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
			raw = strings.TrimSpace(dt)
		}
	}
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
