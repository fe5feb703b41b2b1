package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ImageRankingAndFilters(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main><p>Product page with several images to rank.</p></main>
		<img src="https://cdn.example.com/medium.jpg" data-natural-width="200" data-natural-height="100" data-visible="true" alt="medium">
		<img src="/hero.jpg" data-natural-width="250" data-natural-height="200" data-display-width="250" data-display-height="200" alt="hero shot">
		<img src="https://cdn.example.com/tiny.jpg" data-natural-width="50" data-natural-height="50" data-visible="true">
		<img src="data:image/png;base64,AAAA" data-natural-width="500" data-natural-height="500" data-visible="true">
		<img src="https://cdn.example.com/brand-logo.png" data-natural-width="400" data-natural-height="400" data-visible="true">
		<img src="https://cdn.example.com/social.png" class="footer-icon" data-natural-width="400" data-natural-height="400" data-visible="true">
	</body></html>`

	content := extract(t, markup, "https://shop.example/widget")

	require.Len(t, content.Images, 2)

	// Largest area first; relative src resolved against the page URL.
	assert.Equal(t, "https://shop.example/hero.jpg", content.Images[0].SourceURL)
	assert.Equal(t, 50000, content.Images[0].Area)
	assert.Equal(t, "hero shot", content.Images[0].AltText)
	assert.True(t, content.Images[0].Visible)

	assert.Equal(t, "https://cdn.example.com/medium.jpg", content.Images[1].SourceURL)
	assert.Equal(t, 20000, content.Images[1].Area)
}

func TestExtract_ImageAttributeFallback(t *testing.T) {
	t.Parallel()

	// The HTTP path has no stamped metrics and falls back to plain
	// width/height attributes.
	markup := `<html><body><main><p>Static page fetched without a browser.</p></main>
		<img src="https://cdn.example.com/static.jpg" width="300" height="200">
	</body></html>`

	content := extract(t, markup, "https://shop.example/widget")

	require.Len(t, content.Images, 1)
	assert.Equal(t, 60000, content.Images[0].Area)
	assert.False(t, content.Images[0].Visible)
}

func TestExtract_LazyImageWithoutDimensionsRejected(t *testing.T) {
	t.Parallel()

	markup := `<html><body><main><p>Lazy loading page content here.</p></main>
		<img data-src="https://cdn.example.com/lazy.jpg">
	</body></html>`

	content := extract(t, markup, "https://shop.example/widget")
	assert.Empty(t, content.Images)
}
