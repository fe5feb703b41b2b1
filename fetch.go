package lpextract

import (
	"context"
	"time"
)

// FetchStrategy identifies which fetch strategy produced a result.
type FetchStrategy string

// Fetch strategies in fallback order.
const (
	StrategyBrowser FetchStrategy = "browser"
	StrategyHTTP    FetchStrategy = "http"
	StrategyFailed  FetchStrategy = "failed"
)

// MinMarkupLength is the minimum markup size a fetch must produce to be
// accepted. Shorter responses are treated as blocked or empty shells and
// trigger the next strategy.
const MinMarkupLength = 1000

// FetchResult holds raw markup plus the strategy that produced it.
// A FetchResult is immutable once produced; one is created per request.
type FetchResult struct {
	Markup    string
	Strategy  FetchStrategy
	FetchedAt time.Time
}

// Failed reports whether all fetch strategies were exhausted.
func (r *FetchResult) Failed() bool {
	return r.Strategy == StrategyFailed
}

// Fetcher retrieves raw markup from a URL using a single strategy.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or plain HTTP for speed.
type Fetcher interface {
	// Fetch navigates to the URL and returns the markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// StrategyFetcher tries fetch strategies in order until one yields usable
// markup. Strategy exhaustion is not an error: implementations return a
// FetchResult with StrategyFailed and empty markup, and callers must treat
// that as terminal for the URL. A non-nil error is returned only for
// context cancellation.
type StrategyFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ImageFetcher retrieves raw image bytes, typically for the hero image.
type ImageFetcher interface {
	// FetchImage downloads the image at the URL.
	// Implementations should reject non-image responses.
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// SitemapDiscoverer returns page URLs listed in a site's sitemap,
// used to feed batch extraction runs.
type SitemapDiscoverer interface {
	Discover(ctx context.Context, siteURL string) ([]string, error)
}

// DomainLimiter rate-limits requests per domain so batch runs stay polite
// to individual hosts.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}
