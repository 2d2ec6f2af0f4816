package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens"
	"github.com/tickerlens/tickerlens/mock"
	"github.com/tickerlens/tickerlens/resolve"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("literal ticker skips extraction entirely", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				t.Fatal("extractor must not be called for a literal ticker")
				return nil, nil
			}},
			&mock.SymbolLookup{LookupSymbolFn: func(context.Context, string) (*tickerlens.LookupResult, error) {
				t.Fatal("lookup must not be called for a literal ticker")
				return nil, nil
			}},
		)

		entities, err := r.Resolve(context.Background(), "What is the outlook for AAPL?")
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "AAPL", entities[0].Symbol)
		assert.Equal(t, tickerlens.MatchDirect, entities[0].Confidence)
	})

	t.Run("all-caps stopwords are not tickers", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return nil, nil
			}},
			nil,
		)

		entities, err := r.Resolve(context.Background(), "IS IT A GOOD BUY OR NOT")
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("company name resolves through extraction and lookup", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(_ context.Context, text string) ([]string, error) {
				assert.Equal(t, "Is Tesla a good investment right now?", text)
				return []string{"Tesla"}, nil
			}},
			&mock.SymbolLookup{LookupSymbolFn: func(_ context.Context, name string) (*tickerlens.LookupResult, error) {
				assert.Equal(t, "Tesla", name)
				return &tickerlens.LookupResult{Count: 2, Result: []tickerlens.LookupEntry{
					{Symbol: "TL0.DE", DisplaySymbol: "TL0.DE", Type: "Common Stock"},
					{Symbol: "TSLA", DisplaySymbol: "TSLA", Type: "Common Stock"},
				}}, nil
			}},
		)

		entities, err := r.Resolve(context.Background(), "Is Tesla a good investment right now?")
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "TSLA", entities[0].Symbol)
		assert.Equal(t, tickerlens.MatchLookupMajor, entities[0].Confidence)
	})

	t.Run("falls back to common stock then any listing", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			entries    []tickerlens.LookupEntry
			wantSymbol string
			wantConf   tickerlens.MatchConfidence
		}{
			{
				"common stock off the major venues",
				[]tickerlens.LookupEntry{
					{Symbol: "NESN.SW", DisplaySymbol: "NESN.SW", Type: "Common Stock"},
					{Symbol: "NSRGY", DisplaySymbol: "NSRGY", Type: "ADR"},
				},
				"NESN.SW", tickerlens.MatchLookupCommon,
			},
			{
				"no common stock at all",
				[]tickerlens.LookupEntry{
					{Symbol: "SPY", DisplaySymbol: "SPY", Type: "ETP"},
				},
				"SPY", tickerlens.MatchLookupAny,
			},
			{
				"exchange field overrides the undotted-symbol heuristic",
				[]tickerlens.LookupEntry{
					{Symbol: "SHOP", DisplaySymbol: "SHOP", Type: "Common Stock", Exchange: "TORONTO STOCK EXCHANGE"},
					{Symbol: "SHOP", DisplaySymbol: "SHOP", Type: "Common Stock", Exchange: "NEW YORK STOCK EXCHANGE, INC."},
				},
				"SHOP", tickerlens.MatchLookupMajor,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				r := resolve.NewResolver(
					&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
						return []string{"some company"}, nil
					}},
					&mock.SymbolLookup{LookupSymbolFn: func(context.Context, string) (*tickerlens.LookupResult, error) {
						return &tickerlens.LookupResult{Count: len(tt.entries), Result: tt.entries}, nil
					}},
				)

				entities, err := r.Resolve(context.Background(), "tell me about some company")
				require.NoError(t, err)
				require.Len(t, entities, 1)
				assert.Equal(t, tt.wantSymbol, entities[0].Symbol)
				assert.Equal(t, tt.wantConf, entities[0].Confidence)
			})
		}
	})

	t.Run("blank query resolves to nothing without any calls", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(nil, nil)
		entities, err := r.Resolve(context.Background(), "   ")
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("extraction finding nothing is not an error", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return nil, nil
			}},
			nil,
		)

		entities, err := r.Resolve(context.Background(), "what should I have for lunch")
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("extraction failure surfaces as unavailable", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return nil, errors.New("model timeout")
			}},
			nil,
		)

		_, err := r.Resolve(context.Background(), "how is apple doing")
		require.Error(t, err)
		assert.Equal(t, tickerlens.EUNAVAILABLE, tickerlens.ErrorCode(err))
	})

	t.Run("one failing lookup does not block the other mentions", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return []string{"Obscure Corp", "Microsoft"}, nil
			}},
			&mock.SymbolLookup{LookupSymbolFn: func(_ context.Context, name string) (*tickerlens.LookupResult, error) {
				if name == "Obscure Corp" {
					return nil, errors.New("HTTP 503")
				}
				return &tickerlens.LookupResult{Count: 1, Result: []tickerlens.LookupEntry{
					{Symbol: "MSFT", DisplaySymbol: "MSFT", Type: "Common Stock"},
				}}, nil
			}},
		)

		entities, err := r.Resolve(context.Background(), "compare obscure corp and microsoft")
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "MSFT", entities[0].Symbol)
	})

	t.Run("extracted ticker tokens bypass the lookup", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return []string{"NVDA"}, nil
			}},
			&mock.SymbolLookup{LookupSymbolFn: func(context.Context, string) (*tickerlens.LookupResult, error) {
				t.Fatal("lookup must not be called for an extracted ticker")
				return nil, nil
			}},
		)

		entities, err := r.Resolve(context.Background(), "the gpu maker everyone talks about")
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "NVDA", entities[0].Symbol)
		assert.Equal(t, tickerlens.MatchDirect, entities[0].Confidence)
	})

	t.Run("duplicate symbols collapse to the first occurrence", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(nil, nil)
		entities, err := r.Resolve(context.Background(), "AAPL versus MSFT versus AAPL")
		require.NoError(t, err)
		require.Len(t, entities, 2)
		assert.Equal(t, "AAPL", entities[0].Symbol)
		assert.Equal(t, "MSFT", entities[1].Symbol)
	})

	t.Run("preserves mention order for multiple entities", func(t *testing.T) {
		t.Parallel()

		r := resolve.NewResolver(
			&mock.EntityExtractor{ExtractEntitiesFn: func(context.Context, string) ([]string, error) {
				return []string{"Alphabet", "Amazon"}, nil
			}},
			&mock.SymbolLookup{LookupSymbolFn: func(_ context.Context, name string) (*tickerlens.LookupResult, error) {
				sym := map[string]string{"Alphabet": "GOOGL", "Amazon": "AMZN"}[name]
				return &tickerlens.LookupResult{Count: 1, Result: []tickerlens.LookupEntry{
					{Symbol: sym, DisplaySymbol: sym, Type: "Common Stock"},
				}}, nil
			}},
		)

		entities, err := r.Resolve(context.Background(), "alphabet or amazon, which grew faster")
		require.NoError(t, err)
		require.Len(t, entities, 2)
		assert.Equal(t, "GOOGL", entities[0].Symbol)
		assert.Equal(t, "AMZN", entities[1].Symbol)
	})
}
