package goquery

import (
	"github.com/lpforge/lpextract"
)

var _ lpextract.SelectorRegistry = (*Registry)(nil)

// Registry manages platform-specific content selectors and resolves them
// from URLs using a PlatformDetector.
type Registry struct {
	detector  lpextract.PlatformDetector
	selectors map[lpextract.Platform][]string
}

// NewRegistry creates an empty Registry with the given detector.
func NewRegistry(detector lpextract.PlatformDetector) *Registry {
	return &Registry{
		detector:  detector,
		selectors: make(map[lpextract.Platform][]string),
	}
}

// DefaultRegistry returns a Registry preloaded with the selector lists for
// all known platforms.
func DefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	for platform, selectors := range platformSelectors {
		r.Register(platform, selectors)
	}
	return r
}

// Get returns the selector list for a platform.
// Returns nil if no selectors are registered for the platform.
func (r *Registry) Get(platform lpextract.Platform) []string {
	return r.selectors[platform]
}

// GetForURL detects the platform from the URL and returns its selectors.
func (r *Registry) GetForURL(pageURL string) (lpextract.Platform, []string) {
	platform := r.detector.Detect(pageURL)
	if platform == lpextract.PlatformUnknown {
		return lpextract.PlatformUnknown, nil
	}
	return platform, r.selectors[platform]
}

// Register adds or replaces the selector list for a platform.
func (r *Registry) Register(platform lpextract.Platform, selectors []string) {
	r.selectors[platform] = selectors
}

// List returns all registered platforms.
func (r *Registry) List() []lpextract.Platform {
	platforms := make([]lpextract.Platform, 0, len(r.selectors))
	for p := range r.selectors {
		platforms = append(platforms, p)
	}
	return platforms
}
