// Package resolve maps free-form query text to canonical stock symbols
// through an ordered fallback chain: literal ticker tokens, then
// model-backed name extraction, then symbol-lookup filtering.
package resolve

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tickerlens/tickerlens"
)

// Compile-time interface verification.
var _ tickerlens.EntityResolver = (*Resolver)(nil)

// tickerPattern matches literal ticker tokens: 1-5 uppercase letters with
// an optional class suffix (BRK.B).
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z])?$`)

// tickerStopwords are all-caps tokens that look like tickers but are
// ordinary words in shouted or abbreviated queries.
var tickerStopwords = map[string]struct{}{
	"A": {}, "I": {}, "AN": {}, "THE": {}, "IS": {}, "IT": {}, "OF": {},
	"TO": {}, "IN": {}, "ON": {}, "AT": {}, "DO": {}, "BE": {}, "OR": {},
	"AND": {}, "NOT": {}, "FOR": {}, "VS": {}, "BUY": {}, "SELL": {},
	"HOLD": {}, "GOOD": {}, "BAD": {}, "STOCK": {}, "PRICE": {},
	"CEO": {}, "CFO": {}, "IPO": {}, "ETF": {}, "AI": {}, "US": {},
	"USA": {}, "USD": {}, "NYSE": {}, "NASDAQ": {}, "Q": {},
}

// defaultMajorExchanges are matched case-insensitively as substrings
// against lookup entries' exchange field.
var defaultMajorExchanges = []string{"NASDAQ", "NYSE", "NEW YORK"}

// Resolver resolves query text to entities using the injected extraction
// and symbol-lookup capabilities.
type Resolver struct {
	Extractor tickerlens.EntityExtractor
	Lookup    tickerlens.SymbolLookup

	// MajorExchanges configures the preferred listing venues.
	// Defaults to the major US exchanges.
	MajorExchanges []string

	Logger *slog.Logger
}

// NewResolver creates a Resolver over the given capabilities.
func NewResolver(extractor tickerlens.EntityExtractor, lookup tickerlens.SymbolLookup) *Resolver {
	return &Resolver{
		Extractor:      extractor,
		Lookup:         lookup,
		MajorExchanges: defaultMajorExchanges,
		Logger:         slog.Default(),
	}
}

// Resolve returns entities in mention order, first-resolved first, with
// duplicate symbols collapsed to their first occurrence. An empty result
// with a nil error is the defined "insufficient information" terminal
// state: blank input, extraction finding nothing, or unusable model
// output all land here.
func (r *Resolver) Resolve(ctx context.Context, queryText string) ([]tickerlens.Entity, error) {
	text := strings.TrimSpace(queryText)
	if text == "" {
		return nil, nil
	}

	// Tier 1: literal ticker tokens short-circuit the extraction call.
	if tickers := directTickers(text); len(tickers) > 0 {
		entities := make([]tickerlens.Entity, 0, len(tickers))
		for _, sym := range tickers {
			entities = append(entities, tickerlens.Entity{Symbol: sym, Confidence: tickerlens.MatchDirect})
		}
		return dedupe(entities), nil
	}

	// Tier 2: model-backed company name extraction.
	mentions, err := r.Extractor.ExtractEntities(ctx, text)
	if err != nil {
		return nil, tickerlens.Errorf(tickerlens.EUNAVAILABLE, "entity extraction failed: %v", err)
	}
	if len(mentions) == 0 {
		return nil, nil
	}

	// Tier 3: resolve each mention through the symbol directory.
	var entities []tickerlens.Entity
	for _, mention := range mentions {
		mention = strings.TrimSpace(mention)
		if mention == "" {
			continue
		}
		if isTickerToken(mention) {
			entities = append(entities, tickerlens.Entity{Symbol: mention, Confidence: tickerlens.MatchDirect})
			continue
		}
		result, err := r.Lookup.LookupSymbol(ctx, mention)
		if err != nil {
			// One unavailable lookup must not block the other
			// mentions of a comparative question.
			r.logger().Warn("symbol lookup failed", "mention", mention, "error", err)
			continue
		}
		if entity, ok := r.pickEntry(result); ok {
			entities = append(entities, entity)
		}
	}
	return dedupe(entities), nil
}

// pickEntry filters lookup results: common stock on a major exchange,
// then any common stock, then any entry at all.
func (r *Resolver) pickEntry(result *tickerlens.LookupResult) (tickerlens.Entity, bool) {
	if result == nil || len(result.Result) == 0 {
		return tickerlens.Entity{}, false
	}

	var common []tickerlens.LookupEntry
	for _, e := range result.Result {
		if strings.EqualFold(e.Type, "Common Stock") {
			common = append(common, e)
		}
	}

	for _, e := range common {
		if r.isMajor(e) {
			return entityFrom(e, tickerlens.MatchLookupMajor), true
		}
	}
	if len(common) > 0 {
		return entityFrom(common[0], tickerlens.MatchLookupCommon), true
	}
	return entityFrom(result.Result[0], tickerlens.MatchLookupAny), true
}

// isMajor reports whether an entry trades on a configured major exchange.
// Directories that omit the exchange fall back to the US-listing
// convention of undotted symbols.
func (r *Resolver) isMajor(e tickerlens.LookupEntry) bool {
	if e.Exchange != "" {
		upper := strings.ToUpper(e.Exchange)
		majors := r.MajorExchanges
		if len(majors) == 0 {
			majors = defaultMajorExchanges
		}
		for _, m := range majors {
			if strings.Contains(upper, strings.ToUpper(m)) {
				return true
			}
		}
		return false
	}
	return !strings.Contains(symbolOf(e), ".")
}

func entityFrom(e tickerlens.LookupEntry, confidence tickerlens.MatchConfidence) tickerlens.Entity {
	return tickerlens.Entity{
		Symbol:     symbolOf(e),
		Exchange:   e.Exchange,
		Confidence: confidence,
	}
}

// symbolOf prefers the display symbol, as directories use it for the
// canonical human-facing ticker.
func symbolOf(e tickerlens.LookupEntry) string {
	if e.DisplaySymbol != "" {
		return e.DisplaySymbol
	}
	return e.Symbol
}

// directTickers returns literal ticker tokens from the text in order.
func directTickers(text string) []string {
	var tickers []string
	for _, field := range strings.Fields(text) {
		token := strings.Trim(field, ".,;:!?()[]\"'")
		if isTickerToken(token) {
			tickers = append(tickers, token)
		}
	}
	return tickers
}

func isTickerToken(token string) bool {
	if !tickerPattern.MatchString(token) {
		return false
	}
	_, stop := tickerStopwords[token]
	return !stop
}

// dedupe collapses duplicate symbols, keeping the first occurrence.
func dedupe(entities []tickerlens.Entity) []tickerlens.Entity {
	seen := make(map[string]struct{}, len(entities))
	var out []tickerlens.Entity
	for _, e := range entities {
		if _, ok := seen[e.Symbol]; ok {
			continue
		}
		seen[e.Symbol] = struct{}{}
		out = append(out, e)
	}
	return out
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
