package tokenizer

import "github.com/dgraph-io/ristretto/v2"

// defaultCacheCost bounds the memoization cache at 64MB of keyed text.
const defaultCacheCost = 64 << 20

// Cached wraps an Estimator with a ristretto cache keyed by content, so
// repeated estimates of a stable conversation prefix cost one lookup.
type Cached struct {
	inner Estimator
	cache *ristretto.Cache[string, int]
}

// NewCached creates a caching estimator around inner. maxCost bounds the
// total bytes of cached text; zero or negative selects the default.
func NewCached(inner Estimator, maxCost int64) (*Cached, error) {
	if maxCost <= 0 {
		maxCost = defaultCacheCost
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: 1e6,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, cache: cache}, nil
}

// EstimateText returns the cached count for text, delegating to the inner
// estimator on miss.
func (c *Cached) EstimateText(text string) (int, error) {
	if n, ok := c.cache.Get(text); ok {
		return n, nil
	}
	n, err := c.inner.EstimateText(text)
	if err != nil {
		return 0, err
	}
	c.cache.Set(text, n, int64(len(text)))
	return n, nil
}

// Wait blocks until pending cache writes are applied.
func (c *Cached) Wait() {
	c.cache.Wait()
}

// Close releases the cache's internal resources.
func (c *Cached) Close() {
	c.cache.Close()
}
