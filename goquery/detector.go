package goquery

import (
	"net/url"
	"strings"

	"github.com/lpforge/lpextract"
)

// Ensure Detector implements lpextract.PlatformDetector at compile time.
var _ lpextract.PlatformDetector = (*Detector)(nil)

// Detector identifies website platforms by substring match of the platform
// identifier against the URL's host. Detection is resolved once per URL at
// extraction start rather than scattered through the extractor.
type Detector struct {
	// order fixes the match sequence so overlapping identifiers resolve
	// deterministically.
	order []lpextract.Platform
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{
		order: []lpextract.Platform{
			lpextract.PlatformYodobashi,
			lpextract.PlatformAmazon,
			lpextract.PlatformRakuten,
			lpextract.PlatformWordPress,
			lpextract.PlatformShopify,
			lpextract.PlatformSquarespace,
			lpextract.PlatformWix,
			lpextract.PlatformMedium,
			lpextract.PlatformGhost,
			lpextract.PlatformWebflow,
		},
	}
}

// Detect returns the platform serving the URL, or PlatformUnknown.
func (d *Detector) Detect(pageURL string) lpextract.Platform {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return lpextract.PlatformUnknown
	}

	host := strings.ToLower(u.Host)
	for _, platform := range d.order {
		if strings.Contains(host, string(platform)) {
			return platform
		}
	}
	return lpextract.PlatformUnknown
}
