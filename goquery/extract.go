package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/lpforge/lpextract"
)

// Ensure Extractor implements lpextract.ContentExtractor at compile time.
var _ lpextract.ContentExtractor = (*Extractor)(nil)

// Extractor produces deduplicated text blocks and ranked image candidates
// from raw markup. Text extraction is a priority cascade that
// short-circuits at the first non-empty tier: platform-specific selectors,
// then semantic containers, then generic text tags when the higher tiers
// fall short.
type Extractor struct {
	registry lpextract.SelectorRegistry
}

// NewExtractor creates an Extractor using the given selector registry.
// If registry is nil, the default platform registry is used.
func NewExtractor(registry lpextract.SelectorRegistry) *Extractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Extractor{registry: registry}
}

// Extract parses the markup and returns filtered text, ranked image
// candidates, and page metadata.
func (e *Extractor) Extract(markup string, pageURL string) (*lpextract.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, lpextract.Errorf(lpextract.EINVALID, "failed to parse HTML: %v", err)
	}

	rawText := e.extractText(doc, pageURL)
	images := extractImages(doc, pageURL)
	metadata := extractMetadata(doc)

	return &lpextract.PageContent{
		Text:     postFilter(rawText),
		RawText:  rawText,
		Images:   images,
		Metadata: metadata,
	}, nil
}

// extractText runs the selector cascade and joins accepted fragments in
// tier order.
func (e *Extractor) extractText(doc *goquery.Document, pageURL string) string {
	seen := newFragmentSet()

	// Tier 1: platform-specific selectors are used alone when they match
	// and yield content.
	if _, selectors := e.registry.GetForURL(pageURL); len(selectors) > 0 {
		fragments := collectFragments(doc, selectors, seen)
		if len(fragments) > 0 {
			return joinCapped(fragments)
		}
	}

	// Tier 2: semantic containers. Noise is removed first so navigation
	// and cookie banners don't pollute the generic path.
	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}
	fragments := collectFragments(doc, primarySelectors, seen)

	// Tier 3: generic text tags, only when the higher tiers fall short.
	if totalLength(fragments) < lpextract.MinTotalLength {
		fragments = append(fragments, collectFragments(doc, secondarySelectors, seen)...)
	}

	return joinCapped(fragments)
}

// collectFragments gathers fragments matching the selectors, applying the
// per-fragment filter and the shared dedup set.
func collectFragments(doc *goquery.Document, selectors []string, seen *fragmentSet) []string {
	var fragments []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := cleanFragment(sel.Text())
			if !validFragment(text) {
				return
			}
			if !seen.add(text) {
				return
			}
			fragments = append(fragments, text)
		})
	}
	return fragments
}

// cleanFragment trims and collapses internal whitespace.
func cleanFragment(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// validFragment applies the per-fragment acceptance rules: bounded length
// and no boilerplate phrases.
func validFragment(text string) bool {
	if len(text) < lpextract.MinFragmentLength || len(text) > lpextract.MaxFragmentLength {
		return false
	}
	for _, pattern := range spamPatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// fragmentSet deduplicates fragments on their whitespace-normalized,
// lowercased form.
type fragmentSet struct {
	seen map[string]struct{}
}

func newFragmentSet() *fragmentSet {
	return &fragmentSet{seen: make(map[string]struct{})}
}

// add returns false if an equivalent fragment was already accepted.
func (s *fragmentSet) add(text string) bool {
	key := strings.ToLower(cleanFragment(text))
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

func totalLength(fragments []string) int {
	n := 0
	for _, f := range fragments {
		n += len(f)
	}
	return n
}

// joinCapped joins fragments with blank lines and enforces the total
// output cap.
func joinCapped(fragments []string) string {
	joined := strings.Join(fragments, "\n\n")
	if len(joined) > lpextract.MaxTotalLength {
		joined = truncateRuneSafe(joined, lpextract.MaxTotalLength)
	}
	return joined
}

// truncateRuneSafe cuts at the cap, backing up so a multibyte rune is
// never split.
func truncateRuneSafe(text string, max int) string {
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// postFilter cleans the joined text for downstream consumption: strips any
// boilerplate phrases that survived inside larger fragments, collapses
// whitespace, and drops sentence shards too short to carry meaning.
func postFilter(text string) string {
	if text == "" {
		return ""
	}

	for _, pattern := range spamPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if len(s) > 15 {
			sentences = append(sentences, s)
		}
	}
	filtered := strings.Join(sentences, ". ")

	if len(filtered) > lpextract.MaxTotalLength {
		filtered = truncateRuneSafe(filtered, lpextract.MaxTotalLength)
	}
	return filtered
}
