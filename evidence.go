package tickerlens

import (
	"context"
	"fmt"
	"strings"
)

// Quote holds a live market quote for a symbol.
type Quote struct {
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
}

// String formats the quote for inclusion in an evidence bundle.
func (q *Quote) String() string {
	return fmt.Sprintf(
		"Current price: %.2f, Change: %.2f, Percent change: %.2f%%, High price of the day: %.2f, Low price of the day: %.2f, Open price of the day: %.2f, Previous close price: %.2f",
		q.Current, q.Change, q.PercentChange, q.High, q.Low, q.Open, q.PreviousClose,
	)
}

// RecommendationTrend is one period of aggregated analyst ratings.
type RecommendationTrend struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// StructuredFacts bundles the live market data for one symbol.
type StructuredFacts struct {
	Symbol string                `json:"symbol"`
	Quote  *Quote                `json:"quote,omitempty"`
	Trends []RecommendationTrend `json:"trends,omitempty"`
}

// String formats the facts block for inclusion in an evidence bundle.
func (f *StructuredFacts) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Symbol: %s\n", f.Symbol)
	if f.Quote != nil {
		sb.WriteString(f.Quote.String())
		sb.WriteString("\n")
	}
	for _, t := range f.Trends {
		fmt.Fprintf(&sb, "Period: %s, Strong Buy: %d, Buy: %d, Hold: %d, Sell: %d, Strong Sell: %d\n",
			t.Period, t.StrongBuy, t.Buy, t.Hold, t.Sell, t.StrongSell)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FactsService fetches live structured facts for a symbol.
// A failure is EUNAVAILABLE; aggregation degrades gracefully by omitting
// that entity's facts.
type FactsService interface {
	FetchFacts(ctx context.Context, symbol string) (*StructuredFacts, error)
}

// Summarizer condenses text. It is used to compress document evidence
// before budget enforcement and to backfill stored article summaries.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator renders article text into English. It backfills the stored
// translation of articles whose detected language is not English.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// DocumentEvidence is one summarized document inside a bundle.
type DocumentEvidence struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Summary    string `json:"summary"`
}

// EvidenceBundle is the size-bounded payload of ranked documents and
// per-entity structured facts handed to the generative model.
type EvidenceBundle struct {
	Query     string             `json:"query"`
	Documents []DocumentEvidence `json:"documents"`
	Facts     []StructuredFacts  `json:"facts"`

	// Skipped lists symbols whose facts fetch failed.
	Skipped []string `json:"skipped,omitempty"`

	// Insufficient marks the sentinel bundle returned when ranking
	// yields zero documents and no entity resolved. Callers must
	// short-circuit with a clarification message instead of invoking
	// the generative model.
	Insufficient bool `json:"insufficient"`

	// Size is the running serialized size in characters. It never
	// exceeds the configured budget.
	Size int `json:"size"`
}

// Answerer generates the final answer to a query from an evidence bundle.
type Answerer interface {
	Answer(ctx context.Context, query string, bundle *EvidenceBundle) (string, error)
}
