package slog

import (
	"log/slog"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure LoggingRegistry implements lpextract.SelectorRegistry.
var _ lpextract.SelectorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SelectorRegistry with debug logging for platform detection.
type LoggingRegistry struct {
	next   lpextract.SelectorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next lpextract.SelectorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(platform lpextract.Platform) []string {
	return r.next.Get(platform)
}

// GetForURL detects the platform, logs it, and returns its selectors.
func (r *LoggingRegistry) GetForURL(pageURL string) (lpextract.Platform, []string) {
	begin := time.Now()
	platform, selectors := r.next.GetForURL(pageURL)
	platformName := string(platform)
	if platform == lpextract.PlatformUnknown {
		platformName = "(unknown)"
	}
	r.logger.Info("platform detection",
		"platform", platformName,
		"url", pageURL,
		"duration", time.Since(begin),
	)
	return platform, selectors
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(platform lpextract.Platform, selectors []string) {
	r.next.Register(platform, selectors)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []lpextract.Platform {
	return r.next.List()
}
