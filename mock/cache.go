package mock

import (
	"github.com/lpforge/lpextract"
)

var _ lpextract.ExtractionCache = (*ExtractionCache)(nil)

// ExtractionCache is a mock implementation of lpextract.ExtractionCache.
type ExtractionCache struct {
	GetFn func(url string) (*lpextract.CacheEntry, bool)
	PutFn func(url string, result *lpextract.ExtractionResult, structured *lpextract.StructuredRecord)
}

func (c *ExtractionCache) Get(url string) (*lpextract.CacheEntry, bool) {
	return c.GetFn(url)
}

func (c *ExtractionCache) Put(url string, result *lpextract.ExtractionResult, structured *lpextract.StructuredRecord) {
	c.PutFn(url, result, structured)
}
