// Package rod provides a stealth browser implementation of
// lpextract.Fetcher using Chrome automation. The browser masks automation
// fingerprints so anti-bot-guarded pages fail fast instead of hanging, and
// stabilizes lazy-loaded content before capturing markup.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/lpforge/lpextract"
)

// DefaultFetchTimeout is the hard cap on a browser fetch. Browser fetches
// are high fidelity but expensive and frequently blocked; failing fast
// preserves the latency budget for the HTTP fallback.
const DefaultFetchTimeout = 5 * time.Second

// DefaultSettleWait is the pause after load before stabilization, giving
// dynamic content a chance to start rendering.
const DefaultSettleWait = 1 * time.Second

// defaultUserAgent presents a realistic desktop Chrome fingerprint.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const defaultAcceptLanguage = "ja-JP,ja;q=0.9,en-US;q=0.8,en;q=0.7"

// Ensure Fetcher implements lpextract.Fetcher at compile time.
var _ lpextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered markup from URLs using Chrome browser
// automation with automation-fingerprint masking.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager        *BrowserManager
	timeout        time.Duration
	settleWait     time.Duration
	scrollAttempts int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the hard cap on a single fetch.
// Defaults to DefaultFetchTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleWait sets the post-load settle pause.
func WithSettleWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleWait = d
	}
}

// WithScrollAttempts sets the scroll budget for content stabilization.
// Defaults to DefaultScrollAttempts.
func WithScrollAttempts(n int) Option {
	return func(f *Fetcher) {
		f.scrollAttempts = n
	}
}

// NewFetcher creates a Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:        DefaultFetchTimeout,
		settleWait:     DefaultSettleWait,
		scrollAttempts: DefaultScrollAttempts,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, stabilizes dynamic content, stamps image
// metrics into the markup, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	// The page must not outlive a fallback transition, even when the
	// fetch context has already expired.
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      defaultUserAgent,
		AcceptLanguage: defaultAcceptLanguage,
	}); err != nil {
		return "", err
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		return "", err
	}
	if _, err := page.EvalOnNewDocument(stealthScript); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := wait(ctx, f.settleWait); err != nil {
		return "", err
	}

	// Best effort: a page that refuses to settle still yields markup.
	_ = stabilize(ctx, page, f.scrollAttempts)
	_ = stampImageMetrics(page)

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// wait sleeps for d or until the context is done.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// stealthScript masks the automation signals anti-bot scripts probe for:
// the webdriver flag, missing chrome runtime, empty plugin and language
// lists, and headless screen dimensions.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => false });
window.chrome = window.chrome || { runtime: {} };
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['ja-JP', 'ja', 'en-US', 'en'] });
Object.defineProperty(screen, 'width', { get: () => 1920 });
Object.defineProperty(screen, 'height', { get: () => 1080 });
`
