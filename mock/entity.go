package mock

import (
	"context"

	"github.com/tickerlens/tickerlens"
)

var _ tickerlens.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of tickerlens.EntityExtractor.
type EntityExtractor struct {
	ExtractEntitiesFn func(ctx context.Context, text string) ([]string, error)
}

func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]string, error) {
	return e.ExtractEntitiesFn(ctx, text)
}

var _ tickerlens.SymbolLookup = (*SymbolLookup)(nil)

// SymbolLookup is a mock implementation of tickerlens.SymbolLookup.
type SymbolLookup struct {
	LookupSymbolFn func(ctx context.Context, name string) (*tickerlens.LookupResult, error)
}

func (l *SymbolLookup) LookupSymbol(ctx context.Context, name string) (*tickerlens.LookupResult, error) {
	return l.LookupSymbolFn(ctx, name)
}

var _ tickerlens.EntityResolver = (*EntityResolver)(nil)

// EntityResolver is a mock implementation of tickerlens.EntityResolver.
type EntityResolver struct {
	ResolveFn func(ctx context.Context, queryText string) ([]tickerlens.Entity, error)
}

func (r *EntityResolver) Resolve(ctx context.Context, queryText string) ([]tickerlens.Entity, error) {
	return r.ResolveFn(ctx, queryText)
}
