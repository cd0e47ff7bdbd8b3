package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheExactHit(t *testing.T) {
	c := NewQueryCache(10, time.Minute, time.Minute)
	key := Key("spaced repetition", "fp1", 10)
	c.Set(key, []string{"spaced", "repetition"}, []string{"mem_1"})

	got, ok := c.Get(key, []string{"spaced", "repetition"})
	require.True(t, ok)
	assert.Equal(t, []string{"mem_1"}, got)
}

func TestQueryCacheMissReturnsFalse(t *testing.T) {
	c := NewQueryCache(10, time.Minute, time.Minute)
	_, ok := c.Get("nonexistent", []string{"unrelated"})
	assert.False(t, ok)
}

func TestQueryCachePatternFallbackPromotesNearMiss(t *testing.T) {
	c := NewQueryCache(10, time.Minute, time.Minute)
	oldKey := Key("spaced repetition boosts recall", "fp1", 10)
	c.Set(oldKey, []string{"spaced", "repetition", "boosts", "recall"}, []string{"mem_1"})

	newKey := Key("spaced repetition boosts memory", "fp1", 10)
	got, ok := c.Get(newKey, []string{"spaced", "repetition", "boosts", "memory"})
	require.True(t, ok, "3-of-5 Jaccard overlap should clear the 0.6 threshold")
	assert.Equal(t, []string{"mem_1"}, got)

	// Promoted under the new key.
	gotAgain, ok := c.Get(newKey, nil)
	require.True(t, ok)
	assert.Equal(t, []string{"mem_1"}, gotAgain)
}

func TestQueryCachePurgeAllClearsEntries(t *testing.T) {
	c := NewQueryCache(10, time.Minute, time.Minute)
	key := Key("q", "fp", 10)
	c.Set(key, []string{"q"}, "result")

	c.PurgeAll()
	_, ok := c.Get(key, []string{"q"})
	assert.False(t, ok)
}
