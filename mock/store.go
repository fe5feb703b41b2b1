package mock

import (
	"context"

	"github.com/lpforge/lpextract"
)

var _ lpextract.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of lpextract.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn    func(ctx context.Context, rec *lpextract.ExtractionRecord) error
	FindExtractionByURLFn func(ctx context.Context, url string) (*lpextract.ExtractionRecord, error)
	FindExtractionsFn     func(ctx context.Context, filter lpextract.ExtractionFilter) ([]*lpextract.ExtractionRecord, error)
	DeleteExtractionFn    func(ctx context.Context, id string) error
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, rec *lpextract.ExtractionRecord) error {
	return s.CreateExtractionFn(ctx, rec)
}

func (s *ExtractionService) FindExtractionByURL(ctx context.Context, url string) (*lpextract.ExtractionRecord, error) {
	return s.FindExtractionByURLFn(ctx, url)
}

func (s *ExtractionService) FindExtractions(ctx context.Context, filter lpextract.ExtractionFilter) ([]*lpextract.ExtractionRecord, error) {
	return s.FindExtractionsFn(ctx, filter)
}

func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	return s.DeleteExtractionFn(ctx, id)
}
