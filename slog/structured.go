package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure LoggingStructuredExtractor implements lpextract.StructuredExtractor.
var _ lpextract.StructuredExtractor = (*LoggingStructuredExtractor)(nil)

// LoggingStructuredExtractor wraps a StructuredExtractor with logging of
// model, confidence, and call duration.
type LoggingStructuredExtractor struct {
	next   lpextract.StructuredExtractor
	logger *slog.Logger
}

// NewLoggingStructuredExtractor creates a new LoggingStructuredExtractor.
func NewLoggingStructuredExtractor(next lpextract.StructuredExtractor, logger *slog.Logger) *LoggingStructuredExtractor {
	return &LoggingStructuredExtractor{next: next, logger: logger}
}

// ExtractStructured delegates to the wrapped extractor and logs the outcome.
func (e *LoggingStructuredExtractor) ExtractStructured(ctx context.Context, text string, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
	begin := time.Now()
	record := e.next.ExtractStructured(ctx, text, pageURL, schema)
	e.logger.Info("structured extraction call",
		"url", pageURL,
		"model", record.Model,
		"confidence", record.Confidence,
		"fields", len(record.Fields),
		"duration", time.Since(begin),
	)
	return record
}
