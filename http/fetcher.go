// Package http provides the fallback implementation of lpextract.Fetcher:
// a direct HTTP client presenting browser-equivalent headers and a rotated
// user-agent pool, for pages where the stealth browser is blocked or too
// slow. It also provides hero-image fetching and sitemap discovery.
package http

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lpforge/lpextract"
)

// DefaultFetchTimeout is the per-attempt timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultAttempts is the number of fetch attempts before giving up.
const DefaultAttempts = 3

// userAgents is the rotation pool of realistic desktop agents.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// blockMarkers are anti-bot response markers; a body containing any of
// them is rejected even with a 2xx status.
var blockMarkers = []string{"captcha", "blocked", "access denied"}

// Ensure Fetcher implements lpextract.Fetcher at compile time.
var _ lpextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves markup over plain HTTP with comprehensive browser
// spoofing. Unlike the browser fetcher it does not execute JavaScript, so
// it is the fallback strategy, not the primary one.
// One Fetcher instance serves every batch goroutine concurrently, so all
// randomness goes through the goroutine-safe top-level math/rand functions.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	attempts int
	delays   []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-attempt timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithAttempts sets the attempt budget. Defaults to DefaultAttempts.
func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		f.attempts = n
	}
}

// WithDelays replaces the randomized 2-5s inter-attempt backoff with fixed
// delays. This is useful for testing without waiting for real delays.
func WithDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// NewFetcher creates a new spoofed HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		attempts: DefaultAttempts,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the markup at the URL. It makes up to the configured
// number of attempts, rotating the Referer header between them
// (none, then a search engine, then the target's own origin) and backing
// off a randomized 2-5s. A response is accepted only if the status is 2xx,
// the body is at least MinMarkupLength, and no anti-bot marker appears.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < f.attempts; attempt++ {
		if attempt > 0 {
			if err := f.backoff(ctx, attempt-1); err != nil {
				return "", err
			}
		}

		body, err := f.attempt(ctx, pageURL, attempt)
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = lpextract.Errorf(lpextract.EUNAVAILABLE, "no response for %s", pageURL)
	}
	return "", lastErr
}

func (f *Fetcher) attempt(ctx context.Context, pageURL string, attempt int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	applyBrowserHeaders(req, userAgents[rand.Intn(len(userAgents))])
	if referer := refererForAttempt(pageURL, attempt); referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", lpextract.Errorf(lpextract.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, pageURL)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	body := string(raw)
	if len(body) < lpextract.MinMarkupLength {
		return "", lpextract.Errorf(lpextract.EUNAVAILABLE, "response too short (%d chars) for %s", len(body), pageURL)
	}
	if marker := blockMarker(body); marker != "" {
		return "", lpextract.Errorf(lpextract.EUNAVAILABLE, "anti-bot marker %q in response for %s", marker, pageURL)
	}

	return body, nil
}

// backoff waits between attempts: a configured fixed delay when set,
// otherwise a randomized 2-5 seconds.
func (f *Fetcher) backoff(ctx context.Context, i int) error {
	var d time.Duration
	if f.delays != nil {
		if i < len(f.delays) {
			d = f.delays[i]
		}
	} else {
		d = 2*time.Second + time.Duration(rand.Int63n(int64(3*time.Second)))
	}
	if d == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// applyBrowserHeaders sets the full browser-equivalent header set.
func applyBrowserHeaders(req *http.Request, userAgent string) {
	h := req.Header
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	h.Set("Accept-Language", "ja-JP,ja;q=0.9,en-US;q=0.8,en;q=0.7")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Cache-Control", "max-age=0")
	h.Set("sec-ch-ua", `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`)
	h.Set("sec-ch-ua-mobile", "?0")
	h.Set("sec-ch-ua-platform", `"Windows"`)
}

// refererForAttempt rotates the Referer: first attempt sends none, the
// second claims a search-engine origin, the third the target's own origin.
func refererForAttempt(pageURL string, attempt int) string {
	switch attempt {
	case 1:
		return "https://www.google.com/"
	case 2:
		u, err := url.Parse(pageURL)
		if err != nil || u.Host == "" {
			return ""
		}
		return u.Scheme + "://" + u.Host + "/"
	default:
		return ""
	}
}

// blockMarker returns the first anti-bot marker found in the body, if any.
func blockMarker(body string) string {
	lower := strings.ToLower(body)
	for _, marker := range blockMarkers {
		if strings.Contains(lower, marker) {
			return marker
		}
	}
	return ""
}
