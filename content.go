package lpextract

import "time"

// Content extraction limits, shared by the markup extractor and the
// preprocessor.
const (
	// MinFragmentLength and MaxFragmentLength bound a single accepted
	// text fragment.
	MinFragmentLength = 10
	MaxFragmentLength = 1000

	// MinTotalLength is the threshold below which the extractor consults
	// secondary (generic tag) selectors.
	MinTotalLength = 100

	// MaxTotalLength caps the joined extracted text.
	MaxTotalLength = 8000

	// MinImageArea is the smallest natural pixel area (roughly 100x100)
	// an image candidate may have.
	MinImageArea = 10000
)

// ImageCandidate describes an image found on a page, ranked by area.
// Candidates are never mutated after creation.
type ImageCandidate struct {
	SourceURL     string `json:"sourceUrl"`
	AltText       string `json:"altText"`
	NaturalWidth  int    `json:"naturalWidth"`
	NaturalHeight int    `json:"naturalHeight"`
	DisplayWidth  int    `json:"displayWidth"`
	DisplayHeight int    `json:"displayHeight"`
	Area          int    `json:"area"`
	Visible       bool   `json:"visible"`
	ClassHints    string `json:"classHints"`
}

// PageContent is the markup-level output of the content extractor:
// deduplicated text plus ranked image candidates and page metadata.
type PageContent struct {
	// Text is the filtered, deduplicated content joined in selector
	// priority order.
	Text string

	// RawText is the content before post-filtering.
	RawText string

	// Images are candidates sorted by area descending.
	Images []ImageCandidate

	// Metadata holds title, description, Open Graph and Twitter Card
	// values, canonical URL, language, and joined h1 text.
	Metadata map[string]string
}

// ContentStats summarizes an extraction for quick inspection.
type ContentStats struct {
	CharCount   int       `json:"charCount"`
	WordCount   int       `json:"wordCount"`
	ImageCount  int       `json:"imageCount"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// ExtractionResult is the canonical output of the non-LLM extraction path
// for one URL. It is built once per fetch.
type ExtractionResult struct {
	URL      string            `json:"url"`
	Strategy FetchStrategy     `json:"strategy"`
	Text     string            `json:"textContent"`
	RawText  string            `json:"rawTextContent"`
	Images   []ImageCandidate  `json:"images"`
	Hero     []byte            `json:"-"`
	Metadata map[string]string `json:"metadata"`
	Stats    ContentStats      `json:"contentStats"`

	// Structured is populated when the language-model extraction ran.
	Structured *StructuredRecord `json:"structured,omitempty"`
}

// Empty reports whether the fetch succeeded but nothing passed the content
// filters. An empty result is valid, not an error; downstream stages fall
// back to URL-only heuristics.
func (r *ExtractionResult) Empty() bool {
	return r.Text == "" && len(r.Images) == 0
}

// Validate performs the structural validation required before a result may
// be served from cache: required metadata keys present and the text
// sub-object populated.
func (r *ExtractionResult) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "extraction result URL required")
	}
	if r.Text == "" {
		return Errorf(EINVALID, "extraction result has no text content")
	}
	if r.Metadata == nil {
		return Errorf(EINVALID, "extraction result metadata missing")
	}
	for _, key := range []string{"title", "description"} {
		if _, ok := r.Metadata[key]; !ok {
			return Errorf(EINVALID, "extraction result metadata missing %q", key)
		}
	}
	return nil
}

// ContentExtractor produces text and ranked image candidates from raw
// markup. Extraction is a pure function of the markup and page URL.
type ContentExtractor interface {
	Extract(markup string, pageURL string) (*PageContent, error)
}

// ExtractResult holds isolated main content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor isolates main content from HTML pages, removing boilerplate.
// The preprocessor uses one before markdown conversion.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Preprocessor converts raw markup into cleaned, length-bounded plain text
// suitable for language-model input. Preprocess never fails: on parse
// errors it degrades to a raw visible-text extraction under a smaller cap.
type Preprocessor interface {
	Preprocess(markup string) string
}

// PreprocessedWriter persists preprocessed text as a debugging artifact.
type PreprocessedWriter interface {
	// Write stores the text and returns the path it was written to.
	Write(url string, text string) (string, error)
}
