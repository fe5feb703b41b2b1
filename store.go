package lpextract

import (
	"context"
	"time"
)

// ExtractionRecord is a persisted extraction, archived for later reuse by
// downstream creative-generation stages.
type ExtractionRecord struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	Model       string    `json:"model"`
	Confidence  float64   `json:"confidence"`
	Fields      Fields    `json:"fields"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ExtractionRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "extraction record URL required")
	}
	return nil
}

// ExtractionFilter selects records for FindExtractions.
type ExtractionFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ExtractionService persists extraction records.
type ExtractionService interface {
	// CreateExtraction stores a new record, assigning its ID and hash.
	CreateExtraction(ctx context.Context, rec *ExtractionRecord) error

	// FindExtractionByURL retrieves the most recent record for a URL.
	// Returns ENOTFOUND if none exists.
	FindExtractionByURL(ctx context.Context, url string) (*ExtractionRecord, error)

	// FindExtractions retrieves records matching the filter, newest first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*ExtractionRecord, error)

	// DeleteExtraction permanently removes a record.
	// Returns ENOTFOUND if it does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}
