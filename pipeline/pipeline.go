// Package pipeline orchestrates the landing-page extraction flow: fetch
// with strategy fallback, markup-level content extraction, preprocessing,
// and structured language-model extraction, with session caching in front.
package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/bloom"
)

// Pipeline runs the extraction flow for single URLs and batches. Every
// stage past the fetch degrades rather than fails: a URL either produces a
// usable ExtractionResult or a terminal StrategyFailed result, never a
// pipeline error (context cancellation excepted).
type Pipeline struct {
	fetcher      lpextract.StrategyFetcher
	extractor    lpextract.ContentExtractor
	preprocessor lpextract.Preprocessor
	structured   lpextract.StructuredExtractor
	cache        lpextract.ExtractionCache
	images       lpextract.ImageFetcher
	failed       *bloom.Filter
	store        lpextract.ExtractionService
	writer       lpextract.PreprocessedWriter
	limiter      lpextract.DomainLimiter
	schema       lpextract.Schema
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStructuredExtractor enables the language-model extraction stage.
func WithStructuredExtractor(extractor lpextract.StructuredExtractor) Option {
	return func(p *Pipeline) {
		p.structured = extractor
	}
}

// WithCache sets the session extraction cache.
func WithCache(cache lpextract.ExtractionCache) Option {
	return func(p *Pipeline) {
		p.cache = cache
	}
}

// WithImageFetcher enables hero image downloads.
func WithImageFetcher(images lpextract.ImageFetcher) Option {
	return func(p *Pipeline) {
		p.images = images
	}
}

// WithFailedFilter enables short-circuiting of URLs that already exhausted
// all fetch strategies this session.
func WithFailedFilter(filter *bloom.Filter) Option {
	return func(p *Pipeline) {
		p.failed = filter
	}
}

// WithStore archives completed extractions.
func WithStore(store lpextract.ExtractionService) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithPreprocessedWriter persists preprocessed text as debugging artifacts.
func WithPreprocessedWriter(writer lpextract.PreprocessedWriter) Option {
	return func(p *Pipeline) {
		p.writer = writer
	}
}

// WithDomainLimiter rate-limits fetches per domain.
func WithDomainLimiter(limiter lpextract.DomainLimiter) Option {
	return func(p *Pipeline) {
		p.limiter = limiter
	}
}

// WithSchema overrides the structured extraction schema.
func WithSchema(schema lpextract.Schema) Option {
	return func(p *Pipeline) {
		p.schema = schema
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline from the three required stages plus options.
func New(fetcher lpextract.StrategyFetcher, extractor lpextract.ContentExtractor, preprocessor lpextract.Preprocessor, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:      fetcher,
		extractor:    extractor,
		preprocessor: preprocessor,
		schema:       lpextract.DefaultSchema(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run extracts one URL end to end. The returned result is never nil on a
// nil error; callers detect total fetch failure via result.Strategy.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*lpextract.ExtractionResult, error) {
	normalized, err := lpextract.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if p.failed != nil && p.failed.Test(normalized) {
		p.logger.Debug("skipping previously failed url", "url", normalized)
		return failedResult(normalized), nil
	}

	if p.cache != nil {
		if entry, ok := p.cache.Get(normalized); ok {
			p.logger.Debug("cache hit", "url", normalized)
			// Shallow copy: concurrent hits for the same URL must never
			// write to the cached object.
			result := *entry.Result
			result.Structured = entry.Structured
			return &result, nil
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, domainOf(normalized)); err != nil {
			return nil, err
		}
	}

	fetched, err := p.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if fetched.Failed() {
		if p.failed != nil {
			p.failed.Add(normalized)
		}
		p.logger.Warn("all fetch strategies failed", "url", normalized)
		return failedResult(normalized), nil
	}

	result := p.extract(normalized, fetched)
	p.fetchHero(ctx, result)
	p.runStructured(ctx, result, fetched.Markup)

	if p.cache != nil && result.Validate() == nil {
		p.cache.Put(normalized, result, result.Structured)
	}
	p.archive(ctx, result)

	return result, nil
}

// extract runs markup-level content extraction and assembles the result.
// Extraction errors degrade to an empty result for the URL.
func (p *Pipeline) extract(pageURL string, fetched *lpextract.FetchResult) *lpextract.ExtractionResult {
	result := &lpextract.ExtractionResult{
		URL:      pageURL,
		Strategy: fetched.Strategy,
		Metadata: map[string]string{"title": "", "description": ""},
	}

	content, err := p.extractor.Extract(fetched.Markup, pageURL)
	if err != nil {
		p.logger.Warn("content extraction failed", "url", pageURL, "err", err)
		return result
	}

	result.Text = content.Text
	result.RawText = content.RawText
	result.Images = content.Images
	if content.Metadata != nil {
		result.Metadata = content.Metadata
	}
	result.Stats = lpextract.ContentStats{
		CharCount:   len(content.Text),
		WordCount:   len(strings.Fields(content.Text)),
		ImageCount:  len(content.Images),
		ExtractedAt: fetched.FetchedAt,
	}
	return result
}

// fetchHero downloads the largest image candidate. Failures only log; the
// hero image is a best-effort enrichment.
func (p *Pipeline) fetchHero(ctx context.Context, result *lpextract.ExtractionResult) {
	if p.images == nil || len(result.Images) == 0 {
		return
	}
	hero := result.Images[0]
	data, err := p.images.FetchImage(ctx, hero.SourceURL)
	if err != nil {
		p.logger.Debug("hero image fetch failed", "url", hero.SourceURL, "err", err)
		return
	}
	result.Hero = data
}

// runStructured preprocesses the markup and runs language-model extraction.
// The structured extractor degrades internally, so a record is always
// attached when the stage is enabled.
func (p *Pipeline) runStructured(ctx context.Context, result *lpextract.ExtractionResult, markup string) {
	if p.structured == nil {
		return
	}

	text := p.preprocessor.Preprocess(markup)
	if p.writer != nil {
		if path, err := p.writer.Write(result.URL, text); err != nil {
			p.logger.Debug("preprocessed artifact write failed", "url", result.URL, "err", err)
		} else {
			p.logger.Debug("preprocessed artifact written", "url", result.URL, "path", path)
		}
	}

	record := p.structured.ExtractStructured(ctx, text, result.URL, p.schema)
	result.Structured = record
	p.logger.Info("structured extraction",
		"url", result.URL,
		"confidence", record.Confidence,
		"usable", record.Confidence >= lpextract.UsableConfidence,
	)
}

// archive persists the structured extraction when a store is configured.
func (p *Pipeline) archive(ctx context.Context, result *lpextract.ExtractionResult) {
	if p.store == nil || result.Structured == nil {
		return
	}
	rec := &lpextract.ExtractionRecord{
		URL:        result.URL,
		Text:       result.Text,
		Model:      result.Structured.Model,
		Confidence: result.Structured.Confidence,
		Fields:     result.Structured.Fields,
	}
	if err := p.store.CreateExtraction(ctx, rec); err != nil {
		p.logger.Warn("extraction archive failed", "url", result.URL, "err", err)
	}
}

// failedResult is the terminal result for a URL no strategy could fetch.
func failedResult(pageURL string) *lpextract.ExtractionResult {
	return &lpextract.ExtractionResult{
		URL:      pageURL,
		Strategy: lpextract.StrategyFailed,
		Metadata: map[string]string{"title": "", "description": ""},
		Stats:    lpextract.ContentStats{ExtractedAt: time.Now().UTC()},
	}
}

// domainOf extracts the host for rate limiting. Normalized URLs always
// parse; the fallback keys the limiter on the whole URL.
func domainOf(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return normalized
	}
	return u.Host
}
