package tickerlens

import "context"

// MatchConfidence records which fallback tier produced a resolved entity.
type MatchConfidence string

// Resolution tiers in the order they are attempted.
const (
	// MatchDirect means the query contained a literal ticker token.
	MatchDirect MatchConfidence = "direct"

	// MatchLookupMajor means a symbol lookup returned a common stock on
	// a major US listing.
	MatchLookupMajor MatchConfidence = "lookup_major"

	// MatchLookupCommon means a symbol lookup returned a common stock
	// outside the major listings.
	MatchLookupCommon MatchConfidence = "lookup_common"

	// MatchLookupAny means the lookup returned no common stock and the
	// first result of any type was used.
	MatchLookupAny MatchConfidence = "lookup_any"
)

// Entity is a canonical resolved subject of a query.
type Entity struct {
	// Symbol is the canonical exchange ticker.
	Symbol string `json:"symbol"`

	// Exchange is best-effort; symbol directories do not always carry it.
	Exchange string `json:"exchange,omitempty"`

	Confidence MatchConfidence `json:"confidence"`
}

// EntityResolver maps free-form query text to zero or more canonical
// entities. An empty result is a defined terminal state meaning
// "insufficient information", not an error; callers should prompt for
// clarification rather than proceed.
type EntityResolver interface {
	// Resolve returns entities in the order their mentions appear in the
	// query. Duplicate symbols collapse, keeping the first occurrence.
	Resolve(ctx context.Context, queryText string) ([]Entity, error)
}

// EntityExtractor infers company names or tickers from free text.
// Implementations are typically language-model backed. Output that cannot
// be parsed into the expected constrained format yields an empty slice,
// never an error.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]string, error)
}

// LookupEntry is one result row from a ticker directory lookup.
type LookupEntry struct {
	Symbol        string `json:"symbol"`
	DisplaySymbol string `json:"displaySymbol"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Exchange      string `json:"exchange,omitempty"`
}

// LookupResult is the response of a ticker directory lookup.
type LookupResult struct {
	Count  int           `json:"count"`
	Result []LookupEntry `json:"result"`
}

// SymbolLookup queries a ticker directory by company name or partial
// symbol.
type SymbolLookup interface {
	LookupSymbol(ctx context.Context, name string) (*LookupResult, error)
}
