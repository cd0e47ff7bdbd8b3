package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCacheSetGet(t *testing.T) {
	c := NewEmbeddingCache(10, time.Minute)
	key := EmbeddingKey("hello world", "lexical")
	c.Set(key, []float32{0.1, 0.2, 0.3})

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, got)
}

func TestEmbeddingCacheKeyVariesByModelTag(t *testing.T) {
	a := EmbeddingKey("hello", "lexical")
	b := EmbeddingKey("hello", "external")
	assert.NotEqual(t, a, b)
}

func TestEmbeddingCacheMiss(t *testing.T) {
	c := NewEmbeddingCache(10, time.Minute)
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestEmbeddingCachePurgeAll(t *testing.T) {
	c := NewEmbeddingCache(10, time.Minute)
	key := EmbeddingKey("x", "lexical")
	c.Set(key, []float32{1})
	c.PurgeAll()
	_, ok := c.Get(key)
	assert.False(t, ok)
}
