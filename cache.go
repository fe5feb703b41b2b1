package lpextract

import "time"

// DefaultCacheCapacity bounds the in-process extraction cache. Past this
// count the entry with the oldest write timestamp is evicted.
const DefaultCacheCapacity = 50

// CacheEntry owns one extraction result plus its optional structured
// record, keyed by normalized URL.
type CacheEntry struct {
	URL        string
	Result     *ExtractionResult
	Structured *StructuredRecord
	SavedAt    time.Time
}

// Validate checks the structural completeness required to serve the entry
// as a cache hit. An invalid entry must be treated as a miss and trigger
// re-extraction, never be silently returned.
func (e *CacheEntry) Validate() error {
	if e.URL == "" {
		return Errorf(ECACHEINVALID, "cache entry URL required")
	}
	if e.Result == nil {
		return Errorf(ECACHEINVALID, "cache entry has no extraction result")
	}
	if err := e.Result.Validate(); err != nil {
		return Errorf(ECACHEINVALID, "cache entry for %q failed validation: %s", e.URL, ErrorMessage(err))
	}
	return nil
}

// ExtractionCache stores the last successful extraction per URL for the
// session, avoiding repeat network and model cost. Implementations must be
// safe for concurrent use; the cache is the only cross-request shared
// mutable state in the pipeline.
type ExtractionCache interface {
	// Get returns a structurally valid entry for the URL, or ok=false.
	Get(url string) (entry *CacheEntry, ok bool)

	// Put stores the extraction for the URL, overwriting any previous
	// entry and evicting the oldest-written entry past capacity.
	Put(url string, result *ExtractionResult, structured *StructuredRecord)
}
