// Package goquery provides the markup-level content extractor: a
// platform-aware text cascade with noise filtering, image candidate
// ranking, and page metadata extraction.
package goquery

import (
	"regexp"

	"github.com/lpforge/lpextract"
)

// platformSelectors maps known website template families to the selector
// lists that isolate their product content. When a platform matches, only
// its selectors are consulted.
var platformSelectors = map[lpextract.Platform][]string{
	lpextract.PlatformYodobashi:   {`h1#products_maintitle span[itemprop="name"]`, `div.pDesBody`},
	lpextract.PlatformAmazon:      {`#productTitle`, `#feature-bullets`},
	lpextract.PlatformRakuten:     {`h1.product_name`, `div.p-product_details-spec`},
	lpextract.PlatformWordPress:   {`.post`, `.entry`, `.content`},
	lpextract.PlatformShopify:     {`.product-description`, `.product-details`, `.product-content`},
	lpextract.PlatformSquarespace: {`.sqs-block-content`, `.content`},
	lpextract.PlatformWix:         {`.txtNew`, `[data-testid="richTextElement"]`},
	lpextract.PlatformMedium:      {`.postArticle-content`, `.section-content`},
	lpextract.PlatformGhost:       {`.post-content`, `.kg-post`},
	lpextract.PlatformWebflow:     {`.rich-text`, `.text-block`},
}

// primarySelectors target semantic containers and common CMS and
// landing-page content classes. Consulted when no platform matches.
var primarySelectors = []string{
	"article",
	"section",
	`[role="main"]`,
	`[itemprop~="articleBody"]`,
	"main",

	".content", ".main-content", ".post-content", ".article-content",
	".entry-content", ".post-body", ".article-body",

	".hero", ".banner", ".intro", ".summary",
	".product-description", ".benefits", ".features",
	".value-proposition", ".selling-points",
}

// secondarySelectors target generic text-bearing tags, consulted only when
// the higher tiers yield less than MinTotalLength characters.
var secondarySelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "blockquote", "pre",

	"li", "dd", "dt",
	"figcaption", "caption",

	"td", "th",

	`label[for]`, ".field-description", ".help-text",

	".comment", ".review", ".testimonial", ".quote",
}

// noiseSelectors are stripped before generic extraction and by the
// preprocessor.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "aside", "header",
	".nav", ".navigation", ".menu", ".sidebar",
	".ads", ".advertisement", ".banner-ad", ".google-ads",
	".social-share", ".social-media", ".share-buttons",
	`[aria-label*="cookie"]`, ".cookie", ".gdpr",
	".popup", ".modal", ".overlay",
	".breadcrumb", ".pagination",
}

// spamPatterns reject boilerplate fragments regardless of selector tier.
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)click here`),
	regexp.MustCompile(`(?i)buy now`),
	regexp.MustCompile(`(?i)limited time`),
	regexp.MustCompile(`©\s*\d{4}`),
	regexp.MustCompile(`(?i)all rights reserved`),
	regexp.MustCompile(`(?i)terms of service`),
	regexp.MustCompile(`(?i)privacy policy`),
	regexp.MustCompile(`(?i)subscribe to`),
	regexp.MustCompile(`(?i)follow us`),
}

// NoiseSelectors returns the selector list for boilerplate containers.
// Exported for the preprocessor, which strips the same noise before
// markdown conversion.
func NoiseSelectors() []string {
	return noiseSelectors
}

// SpamPatterns returns the boilerplate phrase patterns shared with the
// preprocessor.
func SpamPatterns() []*regexp.Regexp {
	return spamPatterns
}
