// Package cache implements spec section 4.8's CacheLayer: a QueryCache over
// ranked result sets and an EmbeddingCache over embedding vectors, both
// LRU-with-TTL and bounded in entry count.
package cache

import "time"

// DefaultQueryCacheSize bounds the exact-match query cache.
const DefaultQueryCacheSize = 500

// DefaultQueryTTL is how long an exact cache hit stays valid.
const DefaultQueryTTL = 5 * time.Minute

// DefaultPatternTTL is the shortened TTL a pattern-matched promotion gets,
// reflecting lower confidence than an exact key match.
const DefaultPatternTTL = 1 * time.Minute

// PatternSimilarityThreshold is the minimum Jaccard similarity between
// query token sets for the pattern cache to serve a near-miss.
const PatternSimilarityThreshold = 0.6

// DefaultEmbeddingCacheSize bounds the embedding vector cache.
const DefaultEmbeddingCacheSize = 1000

// DefaultEmbeddingTTL is how long a cached embedding stays valid.
const DefaultEmbeddingTTL = 30 * time.Minute
