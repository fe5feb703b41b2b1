package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure LoggingSitemapDiscoverer implements lpextract.SitemapDiscoverer.
var _ lpextract.SitemapDiscoverer = (*LoggingSitemapDiscoverer)(nil)

// LoggingSitemapDiscoverer wraps a SitemapDiscoverer with debug logging.
type LoggingSitemapDiscoverer struct {
	next   lpextract.SitemapDiscoverer
	logger *slog.Logger
}

// NewLoggingSitemapDiscoverer creates a new LoggingSitemapDiscoverer.
func NewLoggingSitemapDiscoverer(next lpextract.SitemapDiscoverer, logger *slog.Logger) *LoggingSitemapDiscoverer {
	return &LoggingSitemapDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapDiscoverer) Discover(ctx context.Context, siteURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", siteURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, siteURL)
}
