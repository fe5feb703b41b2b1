package mock

import (
	"github.com/lpforge/lpextract"
)

var _ lpextract.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of lpextract.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(pageURL string) lpextract.Platform
}

func (d *PlatformDetector) Detect(pageURL string) lpextract.Platform {
	return d.DetectFn(pageURL)
}

var _ lpextract.SelectorRegistry = (*SelectorRegistry)(nil)

// SelectorRegistry is a mock implementation of lpextract.SelectorRegistry.
type SelectorRegistry struct {
	GetFn       func(platform lpextract.Platform) []string
	GetForURLFn func(pageURL string) (lpextract.Platform, []string)
	RegisterFn  func(platform lpextract.Platform, selectors []string)
	ListFn      func() []lpextract.Platform
}

func (r *SelectorRegistry) Get(platform lpextract.Platform) []string {
	return r.GetFn(platform)
}

func (r *SelectorRegistry) GetForURL(pageURL string) (lpextract.Platform, []string) {
	return r.GetForURLFn(pageURL)
}

func (r *SelectorRegistry) Register(platform lpextract.Platform, selectors []string) {
	r.RegisterFn(platform, selectors)
}

func (r *SelectorRegistry) List() []lpextract.Platform {
	return r.ListFn()
}
