package trafilatura_test

import (
	"testing"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements lpextract.Extractor at compile time.
var _ lpextract.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Widget X1 | Example Shop</title></head>
<body>
<nav><a href="/">Home</a><a href="/products">Products</a></nav>
<article>
<h1>Widget X1</h1>
<p>The Widget X1 is a compact device that simplifies everyday tasks around the home.</p>
<p>It ships with a two year warranty and free returns within thirty days of purchase.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "compact device")
		assert.NotContains(t, result.ContentHTML, "Sidebar content")
	})

	t.Run("empty input returns error", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")
		require.Error(t, err)
	})
}
