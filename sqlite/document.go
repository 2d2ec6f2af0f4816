package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/tickerlens/tickerlens"
)

// Compile-time interface verification.
var _ tickerlens.DocumentService = (*DocumentService)(nil)

// recencyHalfLife controls how fast the recency score decays.
// A week-old article scores 0.5; an unknown publish time scores 0.
const recencyHalfLife = 7 * 24 * time.Hour

// candidateFetchFactor over-fetches FTS matches so that blacklist
// exclusion still leaves enough candidates to fill the requested limit.
const candidateFetchFactor = 4

// DocumentService implements tickerlens.DocumentService using SQLite FTS5.
type DocumentService struct {
	db *DB

	// Logger receives query-recovery conditions. Defaults to slog.Default.
	Logger *slog.Logger

	// Now is overridable for deterministic recency tests.
	Now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{
		db:     db,
		Logger: slog.Default(),
		Now:    time.Now,
	}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// InsertDocument persists a document. With allowDuplicates set, a second
// copy of an already stored URL is inserted as a new row. Otherwise the
// insert is conditional on the URL being absent, which makes the duplicate
// check atomic with respect to concurrent inserts of the same URL.
func (s *DocumentService) InsertDocument(ctx context.Context, doc *tickerlens.Document, allowDuplicates bool) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	if doc.CrawledAt.IsZero() {
		doc.CrawledAt = s.Now().UTC()
	}
	doc.ContentHash = hashContent(doc.BodyText)

	var publishDate any
	if doc.PublishedAt != nil {
		publishDate = doc.PublishedAt.UTC().Format(time.RFC3339)
	}
	var translation, summary any
	if doc.Translation != "" {
		translation = doc.Translation
	}
	if doc.Summary != "" {
		summary = doc.Summary
	}
	args := []any{doc.ID, doc.URL, doc.Title, doc.BodyText, doc.Host, doc.Language,
		publishDate, doc.CrawledAt.Format(time.RFC3339), translation, summary, doc.ContentHash}

	if allowDuplicates {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO articles (id, url, title, body_text, host, lang, publish_date, crawl_date, en_translation, en_summary, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...)
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, body_text, host, lang, publish_date, crawl_date, en_translation, en_summary, content_hash)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM articles WHERE url = ?)
	`, append(args, doc.URL)...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return tickerlens.Errorf(tickerlens.ECONFLICT, "document with URL %q already exists", doc.URL)
	}
	return nil
}

// Query performs full-text matching against title and body text.
// Candidates are ordered by composite score (normalized relevance plus
// time-biased recency), with ties broken by source trust, then publish
// time descending, then insertion order. Blacklisted hosts are excluded
// entirely. An irrecoverable FTS failure logs and returns empty results.
func (s *DocumentService) Query(ctx context.Context, text string, opts tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error) {
	match := sanitizeMatchQuery(text)
	if match == "" {
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	alpha := 1.0
	if opts.TimebiasAlpha != nil {
		alpha = *opts.TimebiasAlpha
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.url, a.title, a.body_text, a.host, a.lang,
		       a.publish_date, a.crawl_date, a.en_translation, a.en_summary,
		       a.content_hash, a.rowid, bm25(articles_fts) AS rank
		FROM articles_fts
		JOIN articles a ON a.rowid = articles_fts.rowid
		WHERE articles_fts MATCH ? AND length(a.body_text) > 0
		ORDER BY rank
		LIMIT ?
	`, match, limit*candidateFetchFactor)
	if err != nil {
		// Sanitization should make this unreachable; a store-internal
		// failure is not surfaced to the caller as a crash.
		s.logger().Warn("full-text query failed", "query", text, "error", err)
		return nil, nil
	}
	defer rows.Close()

	type rawCandidate struct {
		doc   *tickerlens.Document
		rank  float64 // bm25: lower is better
		rowid int64
	}

	var raw []rawCandidate
	for rows.Next() {
		doc, rowid, rank, err := scanArticleWithRank(rows)
		if err != nil {
			return nil, err
		}
		raw = append(raw, rawCandidate{doc: doc, rank: rank, rowid: rowid})
	}
	if err := rows.Err(); err != nil {
		s.logger().Warn("full-text query failed", "query", text, "error", err)
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}

	// Exclude blacklisted hosts before normalization so they cannot
	// skew the relevance scale.
	now := s.Now().UTC()
	var candidates []*tickerlens.SearchCandidate
	var order []int64
	minRel, maxRel := math.Inf(1), math.Inf(-1)
	for _, rc := range raw {
		trust := opts.Policy.Classify(rc.doc.Host)
		if trust == tickerlens.TrustExcluded {
			continue
		}
		rel := -rc.rank // higher = better
		if rel < minRel {
			minRel = rel
		}
		if rel > maxRel {
			maxRel = rel
		}
		candidates = append(candidates, &tickerlens.SearchCandidate{
			Document:  rc.doc,
			Relevance: rel,
			Recency:   recencyScore(rc.doc.PublishedAt, now),
			Trust:     trust,
		})
		order = append(order, rc.rowid)
	}

	// Min-max normalize relevance over the candidate set.
	for _, c := range candidates {
		if maxRel > minRel {
			c.Relevance = (c.Relevance - minRel) / (maxRel - minRel)
		} else {
			c.Relevance = 1.0
		}
	}

	// Stable sort preserves insertion order (rowid) as the final
	// tiebreak because candidates arrive ordered by rank and we re-key
	// by rowid first.
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return order[idx[a]] < order[idx[b]] })
	sorted := make([]*tickerlens.SearchCandidate, len(candidates))
	for i, j := range idx {
		sorted[i] = candidates[j]
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		ca, cb := sorted[a], sorted[b]
		sa, sb := ca.Score(alpha), cb.Score(alpha)
		if sa != sb {
			return sa > sb
		}
		if ca.Trust != cb.Trust {
			return ca.Trust > cb.Trust
		}
		pa, pb := publishUnix(ca.Document), publishUnix(cb.Document)
		return pa > pb
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Count returns the number of documents with non-empty body text.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM articles WHERE length(body_text) > 0").Scan(&n)
	return n, err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*tickerlens.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, body_text, host, lang, publish_date, crawl_date, en_translation, en_summary, content_hash
		FROM articles
		WHERE id = ?
	`, id)

	doc, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, tickerlens.Errorf(tickerlens.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateSummary backfills the derived English summary of a document.
func (s *DocumentService) UpdateSummary(ctx context.Context, id string, summary string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE articles SET en_summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return tickerlens.Errorf(tickerlens.ENOTFOUND, "document not found")
	}
	return nil
}

// UpdateTranslation backfills the derived English translation of a
// document.
func (s *DocumentService) UpdateTranslation(ctx context.Context, id string, translation string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE articles SET en_translation = ? WHERE id = ?", translation, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return tickerlens.Errorf(tickerlens.ENOTFOUND, "document not found")
	}
	return nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return tickerlens.Errorf(tickerlens.ENOTFOUND, "document not found")
	}
	return nil
}

func (s *DocumentService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// recencyScore maps a publish time to (0, 1] with exponential decay.
// Unknown publish times receive the minimum score of zero.
func recencyScore(publishedAt *time.Time, now time.Time) float64 {
	if publishedAt == nil {
		return 0
	}
	age := now.Sub(*publishedAt)
	if age < 0 {
		return 1
	}
	return math.Exp2(-float64(age) / float64(recencyHalfLife))
}

func publishUnix(doc *tickerlens.Document) int64 {
	if doc.PublishedAt == nil {
		return math.MinInt64
	}
	return doc.PublishedAt.Unix()
}

// sanitizeMatchQuery converts free text into a safe FTS5 MATCH expression.
// Double-quoted runs are preserved as phrases; every unit is reduced to
// letters, digits, and spaces and re-quoted, so FTS5 operators and
// punctuation in user text cannot break query syntax. Units are joined
// with OR for keyword-style recall.
func sanitizeMatchQuery(text string) string {
	units := splitQueryUnits(text)
	quoted := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.TrimSpace(strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
				return r
			}
			return ' '
		}, u))
		if u == "" {
			continue
		}
		quoted = append(quoted, `"`+u+`"`)
	}
	return strings.Join(quoted, " OR ")
}

// splitQueryUnits tokenizes text into bare terms and quoted phrases.
func splitQueryUnits(text string) []string {
	var units []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			units = append(units, s)
		}
		cur.Reset()
	}
	for _, r := range text {
		switch {
		case r == '"':
			flush()
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return units
}
