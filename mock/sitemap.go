package mock

import (
	"context"

	"github.com/lpforge/lpextract"
)

var _ lpextract.SitemapDiscoverer = (*SitemapDiscoverer)(nil)

// SitemapDiscoverer is a mock implementation of lpextract.SitemapDiscoverer.
type SitemapDiscoverer struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SitemapDiscoverer) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}

var _ lpextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of lpextract.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
