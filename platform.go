package lpextract

// Platform identifies a website template family with known markup.
type Platform string

// Supported platforms. The identifier doubles as the host substring used
// for detection.
const (
	PlatformUnknown     Platform = ""
	PlatformYodobashi   Platform = "yodobashi"
	PlatformAmazon      Platform = "amazon"
	PlatformRakuten     Platform = "rakuten"
	PlatformWordPress   Platform = "wordpress"
	PlatformShopify     Platform = "shopify"
	PlatformSquarespace Platform = "squarespace"
	PlatformWix         Platform = "wix"
	PlatformMedium      Platform = "medium"
	PlatformGhost       Platform = "ghost"
	PlatformWebflow     Platform = "webflow"
)

// PlatformDetector identifies the platform serving a URL.
type PlatformDetector interface {
	// Detect returns the platform for the URL's host, or PlatformUnknown.
	Detect(pageURL string) Platform
}

// SelectorRegistry manages platform-specific content selector lists.
// When a platform is known, the extractor uses only its selectors; the
// generic priority cascade applies otherwise.
type SelectorRegistry interface {
	// Get returns the selector list for a platform.
	// Returns nil if no selectors are registered for the platform.
	Get(platform Platform) []string

	// GetForURL detects the platform and returns its selectors.
	// Returns PlatformUnknown and nil selectors for unrecognized hosts.
	GetForURL(pageURL string) (Platform, []string)

	// Register adds or replaces the selector list for a platform.
	Register(platform Platform, selectors []string)

	// List returns all registered platforms.
	List() []Platform
}
