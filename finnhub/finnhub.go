// Package finnhub implements the symbol directory and live market data
// services on the Finnhub REST API.
package finnhub

import (
	"context"
	"math"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/tickerlens/tickerlens"
)

// Compile-time interface verification.
var (
	_ tickerlens.SymbolLookup = (*Client)(nil)
	_ tickerlens.FactsService = (*Client)(nil)
)

// Client calls the Finnhub API. It satisfies both SymbolLookup and
// FactsService since the two share one authenticated transport.
type Client struct {
	api *finnhub.DefaultApiService
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &Client{api: finnhub.NewAPIClient(cfg).DefaultApi}
}

// LookupSymbol queries the symbol directory by company name or partial
// ticker. Failures are EUNAVAILABLE.
func (c *Client) LookupSymbol(ctx context.Context, name string) (*tickerlens.LookupResult, error) {
	res, _, err := c.api.SymbolSearch(ctx).Q(name).Execute()
	if err != nil {
		return nil, tickerlens.Errorf(tickerlens.EUNAVAILABLE, "finnhub symbol search: %v", err)
	}
	return lookupResultFrom(res), nil
}

// FetchFacts returns the live quote and analyst recommendation trends
// for a symbol. The quote is required; a trends failure degrades to a
// quote-only result since the ratings are supplementary.
func (c *Client) FetchFacts(ctx context.Context, symbol string) (*tickerlens.StructuredFacts, error) {
	quote, _, err := c.api.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, tickerlens.Errorf(tickerlens.EUNAVAILABLE, "finnhub quote: %v", err)
	}

	facts := &tickerlens.StructuredFacts{
		Symbol: symbol,
		Quote:  quoteFrom(quote),
	}

	trends, _, err := c.api.RecommendationTrends(ctx).Symbol(symbol).Execute()
	if err != nil {
		return facts, nil
	}
	for _, t := range trends {
		facts.Trends = append(facts.Trends, trendFrom(t))
	}
	return facts, nil
}

func lookupResultFrom(res finnhub.SymbolLookup) *tickerlens.LookupResult {
	result := &tickerlens.LookupResult{Count: int(res.GetCount())}
	for _, s := range res.GetResult() {
		result.Result = append(result.Result, tickerlens.LookupEntry{
			Symbol:        s.GetSymbol(),
			DisplaySymbol: s.GetDisplaySymbol(),
			Description:   s.GetDescription(),
			Type:          s.GetType(),
		})
	}
	return result
}

// quoteFrom maps an API quote, deriving change and percent change from
// the current and previous close prices.
func quoteFrom(q finnhub.Quote) *tickerlens.Quote {
	quote := &tickerlens.Quote{
		Current:       float64(q.GetC()),
		High:          float64(q.GetH()),
		Low:           float64(q.GetL()),
		Open:          float64(q.GetO()),
		PreviousClose: float64(q.GetPc()),
	}
	quote.Change = round2(quote.Current - quote.PreviousClose)
	if quote.PreviousClose != 0 {
		quote.PercentChange = round2(quote.Change / quote.PreviousClose * 100)
	}
	return quote
}

func trendFrom(t finnhub.RecommendationTrend) tickerlens.RecommendationTrend {
	return tickerlens.RecommendationTrend{
		Period:     t.GetPeriod(),
		StrongBuy:  int(t.GetStrongBuy()),
		Buy:        int(t.GetBuy()),
		Hold:       int(t.GetHold()),
		Sell:       int(t.GetSell()),
		StrongSell: int(t.GetStrongSell()),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
