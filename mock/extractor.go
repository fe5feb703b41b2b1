package mock

import (
	"context"

	"github.com/lpforge/lpextract"
)

var _ lpextract.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of lpextract.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(markup string, pageURL string) (*lpextract.PageContent, error)
}

func (e *ContentExtractor) Extract(markup string, pageURL string) (*lpextract.PageContent, error) {
	return e.ExtractFn(markup, pageURL)
}

var _ lpextract.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lpextract.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*lpextract.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*lpextract.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ lpextract.Preprocessor = (*Preprocessor)(nil)

// Preprocessor is a mock implementation of lpextract.Preprocessor.
type Preprocessor struct {
	PreprocessFn func(markup string) string
}

func (p *Preprocessor) Preprocess(markup string) string {
	return p.PreprocessFn(markup)
}

var _ lpextract.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor is a mock implementation of lpextract.StructuredExtractor.
type StructuredExtractor struct {
	ExtractStructuredFn func(ctx context.Context, text string, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord
}

func (e *StructuredExtractor) ExtractStructured(ctx context.Context, text string, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
	return e.ExtractStructuredFn(ctx, text, pageURL, schema)
}
