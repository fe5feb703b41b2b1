// Package trafilatura isolates the main content block of a landing page
// using go-trafilatura, for injection into the markup preprocessor.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/lpforge/lpextract"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements lpextract.Extractor at compile time.
var _ lpextract.Extractor = (*Extractor)(nil)

// Extractor isolates main landing-page content with go-trafilatura.
// Recall is favored over precision: product pages carry sparse prose, and
// a dropped feature list costs more than a stray navigation fragment, which
// the downstream markdown cleaner removes anyway.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			Focus:           trafilatura.FavorRecall,
		},
	}
}

// Extract isolates the main content of the page markup.
func (e *Extractor) Extract(rawHTML string) (*lpextract.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, lpextract.Errorf(lpextract.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &lpextract.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
