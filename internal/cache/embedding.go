package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// EmbeddingCache is spec section 4.8's EmbeddingCache: keyed on a stable
// hash of the input text, with a TTL independent of internal/embed's own
// per-provider cache so a query embedding reused across searchers doesn't
// force a recompute mid-TTL.
type EmbeddingCache struct {
	cache *expirable.LRU[string, []float32]
}

func NewEmbeddingCache(size int, ttl time.Duration) *EmbeddingCache {
	if size <= 0 {
		size = DefaultEmbeddingCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultEmbeddingTTL
	}
	return &EmbeddingCache{cache: expirable.NewLRU[string, []float32](size, nil, ttl)}
}

// EmbeddingKey hashes text plus the model tag, so a provider change can
// never return a vector of the wrong dimension.
func EmbeddingKey(text, modelTag string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + modelTag))
	return hex.EncodeToString(sum[:])
}

func (c *EmbeddingCache) Get(key string) ([]float32, bool) {
	return c.cache.Get(key)
}

func (c *EmbeddingCache) Set(key string, vector []float32) {
	c.cache.Add(key, vector)
}

func (c *EmbeddingCache) PurgeAll() {
	c.cache.Purge()
}
