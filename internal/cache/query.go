package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// entry is one cached ranked result set, kept alongside its query's token
// set so a later miss can Jaccard-compare against it. expiresAt is only set
// for pattern-promoted entries: expirable.LRU has no per-entry TTL API, so
// the shortened promotion lifetime is tracked here and checked by hand in
// Get. A zero expiresAt means the entry relies solely on the LRU's own
// construction-time TTL.
type entry struct {
	tokens    map[string]struct{}
	results   any
	expiresAt time.Time
}

// QueryCache is spec section 4.8's QueryCache: keyed on
// normalized-query x filter-fingerprint x limit, with a secondary
// pattern-match fallback on near-identical queries.
type QueryCache struct {
	mu         sync.RWMutex
	exact      *expirable.LRU[string, entry]
	ttl        time.Duration
	patternTTL time.Duration
}

func NewQueryCache(size int, ttl, patternTTL time.Duration) *QueryCache {
	if size <= 0 {
		size = DefaultQueryCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultQueryTTL
	}
	if patternTTL <= 0 {
		patternTTL = DefaultPatternTTL
	}
	return &QueryCache{
		exact:      expirable.NewLRU[string, entry](size, nil, ttl),
		ttl:        ttl,
		patternTTL: patternTTL,
	}
}

// Key builds the cache key from a normalized query, a filter fingerprint
// (any stable string representation of the active Filter), and the result
// limit.
func Key(normalizedQuery, filterFingerprint string, limit int) string {
	combined := fmt.Sprintf("%s\x00%s\x00%d", normalizedQuery, filterFingerprint, limit)
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}

// Get returns a cached result set for key, falling back to the pattern
// cache when no exact entry exists: query tokens are Jaccard-compared
// against every live entry, and a match at or above
// PatternSimilarityThreshold is promoted under the new key with a
// shortened TTL.
func (c *QueryCache) Get(key string, queryTokens []string) (any, bool) {
	c.mu.Lock()
	if e, ok := c.exact.Get(key); ok {
		if e.expiresAt.IsZero() || time.Now().Before(e.expiresAt) {
			c.mu.Unlock()
			return e.results, true
		}
		c.exact.Remove(key)
	}
	c.mu.Unlock()

	tokens := tokenSet(queryTokens)
	if len(tokens) == 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var best entry
	bestSim := 0.0
	for _, e := range c.exact.Values() {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		sim := jaccard(tokens, e.tokens)
		if sim > bestSim {
			bestSim = sim
			best = e
		}
	}
	if bestSim < PatternSimilarityThreshold {
		return nil, false
	}

	c.exact.Add(key, entry{tokens: tokens, results: best.results, expiresAt: time.Now().Add(c.patternTTL)})
	return best.results, true
}

// Set stores results under key with the full TTL.
func (c *QueryCache) Set(key string, queryTokens []string, results any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact.Add(key, entry{tokens: tokenSet(queryTokens), results: results})
}

// Invalidate drops one cached key. Any write tool (remember/forget/pin)
// should invalidate affected entries; since keys are content hashes, a
// coarse full Purge is used instead when a write could plausibly affect
// any cached query.
func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact.Remove(key)
}

// PurgeAll drops every cached entry. Called after any write tool so stale
// ranked results never outlive the data they were computed from.
func (c *QueryCache) PurgeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact.Purge()
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
