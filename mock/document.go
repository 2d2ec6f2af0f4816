package mock

import (
	"context"

	"github.com/tickerlens/tickerlens"
)

var _ tickerlens.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of tickerlens.DocumentService.
type DocumentService struct {
	InsertDocumentFn    func(ctx context.Context, doc *tickerlens.Document, allowDuplicates bool) error
	QueryFn             func(ctx context.Context, text string, opts tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error)
	CountFn             func(ctx context.Context) (int, error)
	FindDocumentByIDFn  func(ctx context.Context, id string) (*tickerlens.Document, error)
	UpdateSummaryFn     func(ctx context.Context, id string, summary string) error
	UpdateTranslationFn func(ctx context.Context, id string, translation string) error
	DeleteDocumentFn    func(ctx context.Context, id string) error
}

func (s *DocumentService) InsertDocument(ctx context.Context, doc *tickerlens.Document, allowDuplicates bool) error {
	return s.InsertDocumentFn(ctx, doc, allowDuplicates)
}

func (s *DocumentService) Query(ctx context.Context, text string, opts tickerlens.SearchOptions) ([]*tickerlens.SearchCandidate, error) {
	return s.QueryFn(ctx, text, opts)
}

func (s *DocumentService) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*tickerlens.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) UpdateSummary(ctx context.Context, id string, summary string) error {
	return s.UpdateSummaryFn(ctx, id, summary)
}

func (s *DocumentService) UpdateTranslation(ctx context.Context, id string, translation string) error {
	return s.UpdateTranslationFn(ctx, id, translation)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
