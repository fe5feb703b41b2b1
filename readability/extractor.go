// Package readability isolates the main content block of a landing page
// using go-readability, as an alternative to the trafilatura extractor.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/lpforge/lpextract"
)

// Ensure Extractor implements lpextract.Extractor at compile time.
var _ lpextract.Extractor = (*Extractor)(nil)

// Extractor isolates main landing-page content with go-readability.
// Readability scores text density, which suits article-style landing pages
// better than grid-heavy storefronts; callers pick the extractor per site.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract isolates the main content of the page markup.
func (e *Extractor) Extract(rawHTML string) (*lpextract.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, lpextract.Errorf(lpextract.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &lpextract.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
