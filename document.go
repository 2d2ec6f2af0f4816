package tickerlens

import (
	"context"
	"time"
)

// Document represents a crawled and normalized news article.
type Document struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	BodyText    string     `json:"bodyText"`
	Host        string     `json:"host"`
	Language    string     `json:"language"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CrawledAt   time.Time  `json:"crawledAt"`
	Translation string     `json:"translation,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	ContentHash string     `json:"contentHash"`
}

// MinArticleLength is the minimum body text length for a page to qualify
// as an article. Shorter pages are rejected by the Normalizer and never
// persisted.
const MinArticleLength = 100

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Host == "" {
		return Errorf(EINVALID, "document host required")
	}
	if len(d.BodyText) < MinArticleLength {
		return Errorf(EINVALID, "document body text too short")
	}
	return nil
}

// SearchCandidate is an ephemeral result of a full-text query against the
// document store. It is produced per query and never persisted.
type SearchCandidate struct {
	Document *Document `json:"document"`

	// Relevance is the index-native match score normalized so that
	// higher means better.
	Relevance float64 `json:"relevance"`

	// Recency decays with the document's age; documents with an unknown
	// publish time receive the minimum score of zero.
	Recency float64 `json:"recency"`

	// Trust classifies the document's host against the domain policy.
	Trust TrustLevel `json:"trust"`
}

// Score returns the composite ranking score given a time-bias weight.
func (c *SearchCandidate) Score(timebiasAlpha float64) float64 {
	return c.Relevance + c.Recency*timebiasAlpha
}

// SearchOptions configures a full-text query.
type SearchOptions struct {
	// Limit caps the number of returned candidates. Defaults to 10.
	Limit int

	// TimebiasAlpha trades off pure relevance against freshness.
	// Nil defaults to 1.0; an explicit zero ranks by relevance alone.
	TimebiasAlpha *float64

	// Policy classifies hosts for trust-based ordering and exclusion.
	// A nil policy treats every host as neutral.
	Policy *DomainPolicy
}

// DocumentService represents a service for storing and querying documents.
type DocumentService interface {
	// InsertDocument persists a document. When allowDuplicates is false
	// and a document with the same URL already exists, it returns
	// ECONFLICT and leaves the store unchanged; when true, a second copy
	// of the URL is stored. Inserts are atomic and immediately visible
	// to queries.
	InsertDocument(ctx context.Context, doc *Document, allowDuplicates bool) error

	// Query performs full-text matching against title and body text and
	// returns candidates ordered by composite score. Malformed query
	// text is sanitized; an irrecoverable query failure yields an empty
	// result, never an error.
	Query(ctx context.Context, text string, opts SearchOptions) ([]*SearchCandidate, error)

	// Count returns the number of documents with non-empty body text.
	Count(ctx context.Context) (int, error)

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// UpdateSummary backfills the derived English summary of a document.
	UpdateSummary(ctx context.Context, id string, summary string) error

	// UpdateTranslation backfills the derived English translation of a
	// non-English document. Summary and translation backfills are the
	// only permitted mutations after insertion.
	UpdateTranslation(ctx context.Context, id string, translation string) error

	// DeleteDocument permanently removes a document (administrative
	// purge; not exercised by the retrieval path).
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}
