package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure FallbackFetcher implements lpextract.StrategyFetcher.
var _ lpextract.StrategyFetcher = (*FallbackFetcher)(nil)

// blockMarkers flag markup served by bot-protection interstitials.
var blockMarkers = []string{"captcha", "blocked", "access denied"}

// FallbackFetcher tries the browser strategy first and falls back to plain
// HTTP. Either fetcher may be nil, which skips that strategy. Exhausting
// both strategies yields a StrategyFailed result with empty markup, not an
// error; only context cancellation is returned as an error.
type FallbackFetcher struct {
	browser lpextract.Fetcher
	http    lpextract.Fetcher
}

// NewFallbackFetcher creates a FallbackFetcher.
func NewFallbackFetcher(browser, http lpextract.Fetcher) *FallbackFetcher {
	return &FallbackFetcher{browser: browser, http: http}
}

// Fetch runs the strategy cascade for the URL.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (*lpextract.FetchResult, error) {
	strategies := []struct {
		fetcher  lpextract.Fetcher
		strategy lpextract.FetchStrategy
	}{
		{f.browser, lpextract.StrategyBrowser},
		{f.http, lpextract.StrategyHTTP},
	}

	for _, s := range strategies {
		if s.fetcher == nil {
			continue
		}
		markup, err := s.fetcher.Fetch(ctx, url)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil || !acceptMarkup(s.strategy, markup) {
			continue
		}
		return &lpextract.FetchResult{
			Markup:    markup,
			Strategy:  s.strategy,
			FetchedAt: time.Now().UTC(),
		}, nil
	}

	return &lpextract.FetchResult{
		Strategy:  lpextract.StrategyFailed,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// Close releases both fetchers.
func (f *FallbackFetcher) Close() error {
	var firstErr error
	for _, fetcher := range []lpextract.Fetcher{f.browser, f.http} {
		if fetcher == nil {
			continue
		}
		if err := fetcher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// acceptMarkup applies the per-strategy acceptance rules. Both strategies
// require the minimum markup size. The anti-bot marker scan applies only to
// HTTP responses, where interstitials arrive as 2xx bodies; rendered
// browser markup may legitimately contain words like "blocked" in page
// copy.
func acceptMarkup(strategy lpextract.FetchStrategy, markup string) bool {
	if len(markup) < lpextract.MinMarkupLength {
		return false
	}
	if strategy != lpextract.StrategyHTTP {
		return true
	}
	lower := strings.ToLower(markup)
	for _, marker := range blockMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
