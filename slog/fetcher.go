// Package slog provides logging decorators for lpextract services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure LoggingStrategyFetcher implements lpextract.StrategyFetcher.
var _ lpextract.StrategyFetcher = (*LoggingStrategyFetcher)(nil)

// LoggingStrategyFetcher wraps a StrategyFetcher with logging of the
// winning strategy and fetch duration.
type LoggingStrategyFetcher struct {
	next   lpextract.StrategyFetcher
	logger *slog.Logger
}

// NewLoggingStrategyFetcher creates a new LoggingStrategyFetcher.
func NewLoggingStrategyFetcher(next lpextract.StrategyFetcher, logger *slog.Logger) *LoggingStrategyFetcher {
	return &LoggingStrategyFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingStrategyFetcher) Fetch(ctx context.Context, url string) (result *lpextract.FetchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "strategy", string(result.Strategy), "bytes", len(result.Markup))
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
