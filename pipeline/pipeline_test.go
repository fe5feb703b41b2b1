package pipeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/bloom"
	"github.com/lpforge/lpextract/mem"
	"github.com/lpforge/lpextract/mock"
	"github.com/lpforge/lpextract/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchedOK(markup string) *mock.StrategyFetcher {
	return &mock.StrategyFetcher{
		FetchFn: func(ctx context.Context, url string) (*lpextract.FetchResult, error) {
			return &lpextract.FetchResult{
				Markup:    markup,
				Strategy:  lpextract.StrategyBrowser,
				FetchedAt: time.Now().UTC(),
			}, nil
		},
	}
}

func fetchedFailed() *mock.StrategyFetcher {
	return &mock.StrategyFetcher{
		FetchFn: func(ctx context.Context, url string) (*lpextract.FetchResult, error) {
			return &lpextract.FetchResult{Strategy: lpextract.StrategyFailed}, nil
		},
	}
}

func contentExtractor() *mock.ContentExtractor {
	return &mock.ContentExtractor{
		ExtractFn: func(markup, pageURL string) (*lpextract.PageContent, error) {
			return &lpextract.PageContent{
				Text:     "Extracted landing page text for the widget.",
				RawText:  "Extracted landing page text for the widget.",
				Metadata: map[string]string{"title": "Widget", "description": "A widget"},
			}, nil
		},
	}
}

func passthroughPreprocessor() *mock.Preprocessor {
	return &mock.Preprocessor{PreprocessFn: func(markup string) string { return markup }}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p := pipeline.New(fetchedOK("<html>markup</html>"), contentExtractor(), passthroughPreprocessor())

	result, err := p.Run(context.Background(), "https://Example.com/widget#top")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/widget", result.URL)
	assert.Equal(t, lpextract.StrategyBrowser, result.Strategy)
	assert.Equal(t, "Extracted landing page text for the widget.", result.Text)
	assert.Equal(t, 7, result.Stats.WordCount)
	assert.Nil(t, result.Structured)
}

func TestPipeline_Run_InvalidURL(t *testing.T) {
	t.Parallel()

	p := pipeline.New(fetchedOK("x"), contentExtractor(), passthroughPreprocessor())

	_, err := p.Run(context.Background(), "ftp://example.com/file")
	require.Error(t, err)
	assert.Equal(t, lpextract.EINVALID, lpextract.ErrorCode(err))
}

func TestPipeline_Run_AllStrategiesFailedIsNotAnError(t *testing.T) {
	t.Parallel()

	p := pipeline.New(fetchedFailed(), contentExtractor(), passthroughPreprocessor())

	result, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)
	assert.Equal(t, lpextract.StrategyFailed, result.Strategy)
	assert.True(t, result.Empty())
}

func TestPipeline_Run_FailedURLShortCircuits(t *testing.T) {
	t.Parallel()

	fetches := 0
	fetcher := &mock.StrategyFetcher{
		FetchFn: func(ctx context.Context, url string) (*lpextract.FetchResult, error) {
			fetches++
			return &lpextract.FetchResult{Strategy: lpextract.StrategyFailed}, nil
		},
	}

	p := pipeline.New(fetcher, contentExtractor(), passthroughPreprocessor(),
		pipeline.WithFailedFilter(bloom.NewFilter(100, 0.01)),
	)

	_, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)
	result, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)

	assert.Equal(t, lpextract.StrategyFailed, result.Strategy)
	assert.Equal(t, 1, fetches)
}

func TestPipeline_Run_CacheHitSkipsFetch(t *testing.T) {
	t.Parallel()

	fetches := 0
	fetcher := &mock.StrategyFetcher{
		FetchFn: func(ctx context.Context, url string) (*lpextract.FetchResult, error) {
			fetches++
			return &lpextract.FetchResult{
				Markup:    "<html>markup</html>",
				Strategy:  lpextract.StrategyHTTP,
				FetchedAt: time.Now().UTC(),
			}, nil
		},
	}

	p := pipeline.New(fetcher, contentExtractor(), passthroughPreprocessor(),
		pipeline.WithCache(mem.NewCache(0)),
	)

	first, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)

	assert.Equal(t, 1, fetches)
	assert.Equal(t, first.Text, second.Text)
}

func TestPipeline_Run_ConcurrentCacheHitsDoNotShareResult(t *testing.T) {
	t.Parallel()

	structured := &mock.StructuredExtractor{
		ExtractStructuredFn: func(ctx context.Context, text, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
			return &lpextract.StructuredRecord{
				Fields:     lpextract.Fields{"product_name": "Widget"},
				Confidence: 0.8,
				Model:      "test-model",
			}
		},
	}

	p := pipeline.New(fetchedOK("<html>markup</html>"), contentExtractor(), passthroughPreprocessor(),
		pipeline.WithCache(mem.NewCache(0)),
		pipeline.WithStructuredExtractor(structured),
	)

	// Prime the cache, then hit it from many goroutines at once.
	first, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)

	results := make([]*lpextract.ExtractionResult, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.Run(context.Background(), "https://example.com/widget")
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	// Every hit gets its own result object; writing to one must never be
	// visible through another.
	for _, result := range results {
		require.NotNil(t, result)
		assert.NotSame(t, first, result)
		assert.Equal(t, first.Text, result.Text)
		require.NotNil(t, result.Structured)
		assert.Equal(t, 0.8, result.Structured.Confidence)
	}
}

func TestPipeline_Run_StructuredDegradationKeepsResult(t *testing.T) {
	t.Parallel()

	structured := &mock.StructuredExtractor{
		ExtractStructuredFn: func(ctx context.Context, text, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
			return lpextract.EmptyRecord("test-model")
		},
	}

	p := pipeline.New(fetchedOK("<html>markup</html>"), contentExtractor(), passthroughPreprocessor(),
		pipeline.WithStructuredExtractor(structured),
	)

	result, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)

	require.NotNil(t, result.Structured)
	assert.Equal(t, 0.0, result.Structured.Confidence)
	assert.NotEmpty(t, result.Text)
}

func TestPipeline_Run_HeroImageBestEffort(t *testing.T) {
	t.Parallel()

	extractor := &mock.ContentExtractor{
		ExtractFn: func(markup, pageURL string) (*lpextract.PageContent, error) {
			return &lpextract.PageContent{
				Text:     "Widget text for the hero image test case.",
				Metadata: map[string]string{"title": "Widget", "description": ""},
				Images: []lpextract.ImageCandidate{
					{SourceURL: "https://cdn.example.com/hero.jpg", Area: 50000},
					{SourceURL: "https://cdn.example.com/second.jpg", Area: 20000},
				},
			}, nil
		},
	}

	images := &mock.ImageFetcher{
		FetchImageFn: func(ctx context.Context, url string) ([]byte, error) {
			assert.Equal(t, "https://cdn.example.com/hero.jpg", url)
			return []byte{1, 2, 3}, nil
		},
	}

	p := pipeline.New(fetchedOK("<html>markup</html>"), extractor, passthroughPreprocessor(),
		pipeline.WithImageFetcher(images),
	)

	result, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, result.Hero)
}

func TestPipeline_Run_ArchivesStructuredExtraction(t *testing.T) {
	t.Parallel()

	var archived *lpextract.ExtractionRecord
	store := &mock.ExtractionService{
		CreateExtractionFn: func(ctx context.Context, rec *lpextract.ExtractionRecord) error {
			archived = rec
			return nil
		},
	}

	structured := &mock.StructuredExtractor{
		ExtractStructuredFn: func(ctx context.Context, text, pageURL string, schema lpextract.Schema) *lpextract.StructuredRecord {
			return &lpextract.StructuredRecord{
				Fields:     lpextract.Fields{"product_name": "Widget"},
				Confidence: 0.62,
				Model:      "test-model",
			}
		},
	}

	p := pipeline.New(fetchedOK("<html>markup</html>"), contentExtractor(), passthroughPreprocessor(),
		pipeline.WithStructuredExtractor(structured),
		pipeline.WithStore(store),
	)

	_, err := p.Run(context.Background(), "https://example.com/widget")
	require.NoError(t, err)

	require.NotNil(t, archived)
	assert.Equal(t, "https://example.com/widget", archived.URL)
	assert.Equal(t, 0.62, archived.Confidence)
}

func TestPipeline_RunBatch(t *testing.T) {
	t.Parallel()

	p := pipeline.New(fetchedOK("<html>markup</html>"), contentExtractor(), passthroughPreprocessor())

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	results, err := p.RunBatch(context.Background(), urls, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, urls[i], result.URL)
	}
}
