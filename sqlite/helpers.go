package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tickerlens/tickerlens"
)

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// scanArticle scans one article row in column order:
// id, url, title, body_text, host, lang, publish_date, crawl_date,
// en_translation, en_summary, content_hash.
func scanArticle(s scanner) (*tickerlens.Document, error) {
	var doc tickerlens.Document
	var publishDate, translation, summary sql.NullString
	var crawlDate string

	if err := s.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.BodyText, &doc.Host, &doc.Language,
		&publishDate, &crawlDate, &translation, &summary, &doc.ContentHash); err != nil {
		return nil, err
	}

	return finishArticle(&doc, publishDate, crawlDate, translation, summary)
}

// scanArticleWithRank scans an article row followed by rowid and bm25 rank.
func scanArticleWithRank(s scanner) (*tickerlens.Document, int64, float64, error) {
	var doc tickerlens.Document
	var publishDate, translation, summary sql.NullString
	var crawlDate string
	var rowid int64
	var rank float64

	if err := s.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.BodyText, &doc.Host, &doc.Language,
		&publishDate, &crawlDate, &translation, &summary, &doc.ContentHash, &rowid, &rank); err != nil {
		return nil, 0, 0, err
	}

	d, err := finishArticle(&doc, publishDate, crawlDate, translation, summary)
	if err != nil {
		return nil, 0, 0, err
	}
	return d, rowid, rank, nil
}

func finishArticle(doc *tickerlens.Document, publishDate sql.NullString, crawlDate string, translation, summary sql.NullString) (*tickerlens.Document, error) {
	var err error
	doc.CrawledAt, err = parseRFC3339(crawlDate, "crawl_date")
	if err != nil {
		return nil, err
	}
	if publishDate.Valid && publishDate.String != "" {
		t, err := parseRFC3339(publishDate.String, "publish_date")
		if err != nil {
			return nil, err
		}
		doc.PublishedAt = &t
	}
	if translation.Valid {
		doc.Translation = translation.String
	}
	if summary.Valid {
		doc.Summary = summary.String
	}
	return doc, nil
}
