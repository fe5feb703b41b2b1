package mem_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(url string) *lpextract.ExtractionResult {
	return &lpextract.ExtractionResult{
		URL:      url,
		Strategy: lpextract.StrategyHTTP,
		Text:     "Some extracted landing page text.",
		Metadata: map[string]string{"title": "Page", "description": ""},
	}
}

func TestCache_PutGet(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(0)
	structured := &lpextract.StructuredRecord{Confidence: 0.8, Model: "test"}

	c.Put("https://example.com/product", result("https://example.com/product"), structured)

	entry, ok := c.Get("https://example.com/product")
	require.True(t, ok)
	assert.Equal(t, "Some extracted landing page text.", entry.Result.Text)
	assert.Equal(t, structured, entry.Structured)
	assert.False(t, entry.SavedAt.IsZero())
}

func TestCache_GetNormalizesURL(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(0)
	c.Put("https://Example.COM/product#frag", result("https://example.com/product"), nil)

	_, ok := c.Get("https://example.com:443/product")
	assert.True(t, ok)
}

func TestCache_Miss(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(0)

	_, ok := c.Get("https://example.com/absent")
	assert.False(t, ok)
}

func TestCache_InvalidEntryIsMissAndRemoved(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(0)

	broken := result("https://example.com/product")
	broken.Text = ""
	c.Put("https://example.com/product", broken, nil)

	_, ok := c.Get("https://example.com/product")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictsOldestPastCapacity(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(lpextract.DefaultCacheCapacity)

	for i := 0; i < lpextract.DefaultCacheCapacity+1; i++ {
		url := fmt.Sprintf("https://example.com/p/%d", i)
		c.Put(url, result(url), nil)
		time.Sleep(time.Millisecond) // distinct SavedAt timestamps
	}

	assert.Equal(t, lpextract.DefaultCacheCapacity, c.Len())

	// The first write carries the oldest timestamp and must be gone.
	_, ok := c.Get("https://example.com/p/0")
	assert.False(t, ok)

	_, ok = c.Get(fmt.Sprintf("https://example.com/p/%d", lpextract.DefaultCacheCapacity))
	assert.True(t, ok)
}

func TestCache_OverwriteSameURL(t *testing.T) {
	t.Parallel()

	c := mem.NewCache(0)

	first := result("https://example.com/product")
	second := result("https://example.com/product")
	second.Text = "Updated text after a fresh extraction run."

	c.Put("https://example.com/product", first, nil)
	c.Put("https://example.com/product", second, nil)

	entry, ok := c.Get("https://example.com/product")
	require.True(t, ok)
	assert.Equal(t, second.Text, entry.Result.Text)
	assert.Equal(t, 1, c.Len())
}
