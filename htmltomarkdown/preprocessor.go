package htmltomarkdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/lpforge/lpextract"
	lpgoquery "github.com/lpforge/lpextract/goquery"
	"golang.org/x/net/html"
)

// Ensure Preprocessor implements lpextract.Preprocessor at compile time.
var _ lpextract.Preprocessor = (*Preprocessor)(nil)

const (
	// MaxPreprocessedLength caps the text handed to the language model.
	MaxPreprocessedLength = 12000

	// fallbackLength caps the emergency plain-text extraction used when
	// the markdown pipeline produces nothing.
	fallbackLength = 8000
)

var (
	mdImage     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdRule      = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	spaceRuns   = regexp.MustCompile(`[ \t]{2,}`)
	bareURL     = regexp.MustCompile(`https?://\S+`)
	terminators = ".!?。！？"
)

// Preprocessor converts raw markup into cleaned, length-bounded plain text.
// The pipeline strips noise elements, optionally isolates the main content
// with an injected extractor, converts the remainder to markdown, and
// truncates at a sentence boundary. Preprocess never fails: any stage error
// degrades to the next cheaper representation, ending at a raw visible-text
// walk of the markup.
type Preprocessor struct {
	converter *Converter
	extractor lpextract.Extractor
	maxLength int
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithExtractor sets a content isolation extractor that runs after noise
// stripping and before markdown conversion. When it fails or returns empty
// content, the full stripped document is converted instead.
func WithExtractor(extractor lpextract.Extractor) Option {
	return func(p *Preprocessor) {
		p.extractor = extractor
	}
}

// WithMaxLength overrides the output cap.
func WithMaxLength(n int) Option {
	return func(p *Preprocessor) {
		p.maxLength = n
	}
}

// NewPreprocessor creates a Preprocessor.
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		converter: NewConverter(),
		maxLength: MaxPreprocessedLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preprocess converts markup to cleaned plain text bounded by the output
// cap. It never returns an error; on failure it falls back to the visible
// text of the markup under a smaller cap.
func (p *Preprocessor) Preprocess(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	stripped := stripNoise(markup)

	if p.extractor != nil {
		if result, err := p.extractor.Extract(stripped); err == nil && strings.TrimSpace(result.ContentHTML) != "" {
			stripped = result.ContentHTML
		}
	}

	markdown, err := p.converter.Convert(stripped)
	if err != nil || strings.TrimSpace(markdown) == "" {
		return truncate(visibleText(markup), fallbackLength)
	}

	cleaned := cleanMarkdown(markdown)
	if cleaned == "" {
		return truncate(visibleText(markup), fallbackLength)
	}

	return truncateAtSentence(cleaned, p.maxLength)
}

// stripNoise removes script, style, and boilerplate elements before
// conversion. Parse failures leave the markup untouched so the converter
// gets a chance at it.
func stripNoise(markup string) string {
	doc, err := gq.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	for _, selector := range lpgoquery.NoiseSelectors() {
		doc.Find(selector).Remove()
	}
	doc.Find("script, style, noscript, iframe, svg").Remove()

	out, err := doc.Html()
	if err != nil {
		return markup
	}
	return out
}

// cleanMarkdown flattens markdown artifacts that waste model tokens:
// images, link targets, horizontal rules, bare URLs, and whitespace runs.
func cleanMarkdown(markdown string) string {
	text := mdImage.ReplaceAllString(markdown, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdRule.ReplaceAllString(text, "")
	text = bareURL.ReplaceAllString(text, "")
	for _, pattern := range lpgoquery.SpamPatterns() {
		text = pattern.ReplaceAllString(text, "")
	}
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// truncateAtSentence cuts the text at the cap, backing up to the last
// sentence terminator when one falls within the final fifth of the kept
// text. A hard cut otherwise.
func truncateAtSentence(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := cutRuneSafe(text, max)
	if idx := strings.LastIndexAny(cut, terminators); idx >= max-max/5 {
		_, size := utf8.DecodeRuneInString(cut[idx:])
		return strings.TrimSpace(cut[:idx+size])
	}
	return strings.TrimSpace(cut)
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return strings.TrimSpace(cutRuneSafe(text, max))
}

// cutRuneSafe slices at most max bytes, backing the cut up so a multibyte
// rune is never split. Callers guarantee len(text) > max.
func cutRuneSafe(text string, max int) string {
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

// visibleText walks the markup's parse tree and concatenates text nodes,
// skipping script and style subtrees. Used only as a last resort.
func visibleText(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.TrimSpace(b.String())
}
