// Package evidence assembles the size-bounded bundle of ranked documents
// and per-entity structured facts that is handed to the generative model.
package evidence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tickerlens/tickerlens"
)

// Aggregation defaults.
const (
	DefaultCharBudget   = 8000
	DefaultMaxDocuments = 8

	// fallbackSummaryLength bounds the body excerpt used when no summary
	// can be produced for a document.
	fallbackSummaryLength = 500
)

// Aggregator merges per-entity structured facts and summarized documents
// into an EvidenceBundle under a character budget. Facts are admitted
// first so that every resolved entity keeps at least one facts block
// ahead of low-ranked documents.
type Aggregator struct {
	Facts      tickerlens.FactsService
	Summarizer tickerlens.Summarizer

	// CharBudget caps the bundle's serialized size in characters.
	// Defaults to DefaultCharBudget.
	CharBudget int

	// MaxDocuments caps the number of document evidence items.
	// Defaults to DefaultMaxDocuments.
	MaxDocuments int

	Logger *slog.Logger
}

// NewAggregator creates an Aggregator with default limits.
func NewAggregator(facts tickerlens.FactsService, summarizer tickerlens.Summarizer) *Aggregator {
	return &Aggregator{
		Facts:      facts,
		Summarizer: summarizer,
		Logger:     slog.Default(),
	}
}

// Aggregate builds the evidence bundle for a query. Candidates must
// already be in ranked order; lower-ranked items are the first to be
// dropped when the budget runs out. Items are admitted whole or not at
// all, so the bundle size never exceeds the budget.
//
// When ranking produced no candidates and no entity resolved, the
// returned bundle carries the Insufficient sentinel and the caller must
// ask for clarification instead of generating an answer.
func (a *Aggregator) Aggregate(ctx context.Context, queryText string, entities []tickerlens.Entity, candidates []*tickerlens.SearchCandidate) (*tickerlens.EvidenceBundle, error) {
	bundle := &tickerlens.EvidenceBundle{Query: queryText}

	if len(entities) == 0 && len(candidates) == 0 {
		bundle.Insufficient = true
		return bundle, nil
	}

	budget := a.charBudget()

	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		facts, err := a.fetchFacts(ctx, entity.Symbol)
		if err != nil {
			a.logger().Warn("facts fetch failed, omitting entity", "symbol", entity.Symbol, "error", err)
			bundle.Skipped = append(bundle.Skipped, entity.Symbol)
			continue
		}
		block := facts.String()
		if bundle.Size+len(block) > budget {
			a.logger().Warn("facts block over budget, omitting entity", "symbol", entity.Symbol)
			bundle.Skipped = append(bundle.Skipped, entity.Symbol)
			continue
		}
		bundle.Facts = append(bundle.Facts, *facts)
		bundle.Size += len(block)
	}

	maxDocs := a.maxDocuments()
	for _, candidate := range candidates {
		if len(bundle.Documents) >= maxDocs {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := candidate.Document
		item := tickerlens.DocumentEvidence{
			DocumentID: doc.ID,
			Title:      doc.Title,
			URL:        doc.URL,
			Summary:    a.summaryFor(ctx, doc),
		}
		size := len(item.Title) + len(item.URL) + len(item.Summary)
		if bundle.Size+size > budget {
			break
		}
		bundle.Documents = append(bundle.Documents, item)
		bundle.Size += size
	}

	return bundle, nil
}

func (a *Aggregator) fetchFacts(ctx context.Context, symbol string) (*tickerlens.StructuredFacts, error) {
	if a.Facts == nil {
		return nil, tickerlens.Errorf(tickerlens.EUNAVAILABLE, "no facts service configured")
	}
	return a.Facts.FetchFacts(ctx, symbol)
}

// summaryFor produces the evidence text for a document: the stored
// summary when one exists, a fresh model summary otherwise, and a bounded
// body excerpt when summarization is unavailable.
func (a *Aggregator) summaryFor(ctx context.Context, doc *tickerlens.Document) string {
	if doc.Summary != "" {
		return doc.Summary
	}
	if a.Summarizer != nil {
		summary, err := a.Summarizer.Summarize(ctx, doc.BodyText)
		if err == nil && summary != "" {
			return summary
		}
		if err != nil {
			a.logger().Warn("summarization failed, falling back to excerpt", "id", doc.ID, "error", err)
		}
	}
	return excerpt(doc.BodyText, fallbackSummaryLength)
}

// excerpt clips text to at most maxLen characters on a word boundary.
func excerpt(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	clipped := text[:maxLen]
	if i := strings.LastIndexByte(clipped, ' '); i > 0 {
		clipped = clipped[:i]
	}
	return clipped
}

func (a *Aggregator) charBudget() int {
	if a.CharBudget > 0 {
		return a.CharBudget
	}
	return DefaultCharBudget
}

func (a *Aggregator) maxDocuments() int {
	if a.MaxDocuments > 0 {
		return a.MaxDocuments
	}
	return DefaultMaxDocuments
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
