package mock

import (
	"context"

	"github.com/tickerlens/tickerlens"
)

var _ tickerlens.FactsService = (*FactsService)(nil)

// FactsService is a mock implementation of tickerlens.FactsService.
type FactsService struct {
	FetchFactsFn func(ctx context.Context, symbol string) (*tickerlens.StructuredFacts, error)
}

func (s *FactsService) FetchFacts(ctx context.Context, symbol string) (*tickerlens.StructuredFacts, error) {
	return s.FetchFactsFn(ctx, symbol)
}

var _ tickerlens.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of tickerlens.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}

var _ tickerlens.Translator = (*Translator)(nil)

// Translator is a mock implementation of tickerlens.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}

var _ tickerlens.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of tickerlens.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, query string, bundle *tickerlens.EvidenceBundle) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, query string, bundle *tickerlens.EvidenceBundle) (string, error) {
	return a.AnswerFn(ctx, query, bundle)
}
