package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Predictor is the read-only view of a Pipeline used by callers that only
// need predictions.
type Predictor interface {
	Predict(text string) string
	Categories() []string
}

// DefaultCacheEntries caps how many predictions a CachedPredictor holds.
const DefaultCacheEntries = 10000

// CachedPredictor memoizes predictions per description. Entries are keyed by
// a SHA-256 digest of the text, so a key never grows with the input.
type CachedPredictor struct {
	next       Predictor
	cache      *gocache.Cache
	maxEntries int
}

// NewCachedPredictor wraps next with a cache whose entries expire after ttl.
func NewCachedPredictor(next Predictor, ttl time.Duration) *CachedPredictor {
	return &CachedPredictor{
		next:       next,
		cache:      gocache.New(ttl, 2*ttl),
		maxEntries: DefaultCacheEntries,
	}
}

// Predict returns the cached category for text, computing it on a miss.
// Once the cache is full, misses are computed but not stored until expired
// entries are evicted.
func (c *CachedPredictor) Predict(text string) string {
	key := cacheKey(text)
	if val, found := c.cache.Get(key); found {
		return val.(string)
	}
	category := c.next.Predict(text)
	if c.cache.ItemCount() < c.maxEntries {
		c.cache.SetDefault(key, category)
	}
	return category
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Categories delegates to the wrapped predictor.
func (c *CachedPredictor) Categories() []string {
	return c.next.Categories()
}

// Len returns the number of cached descriptions.
func (c *CachedPredictor) Len() int {
	return c.cache.ItemCount()
}
