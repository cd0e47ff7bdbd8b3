package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalEmbedDeterministic(t *testing.T) {
	e := NewLexicalEmbedder()
	ctx := context.Background()

	v1, model, _, err := e.Embed(ctx, "spaced repetition algorithms")
	require.NoError(t, err)
	v2, _, _, err := e.Embed(ctx, "spaced repetition algorithms")
	require.NoError(t, err)

	assert.Equal(t, "lexical", model)
	assert.Equal(t, v1, v2)
	assert.Len(t, v1, LexicalDimensions)
}

func TestLexicalEmbedEmptyTextReturnsZeroVector(t *testing.T) {
	e := NewLexicalEmbedder()
	v, _, usage, err := e.Embed(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, 0, usage)
	for _, f := range v {
		assert.Zero(t, f)
	}
}

func TestLexicalEmbedDistinctTextsDiffer(t *testing.T) {
	e := NewLexicalEmbedder()
	ctx := context.Background()
	v1, _, _, _ := e.Embed(ctx, "React hooks tutorial")
	v2, _, _, _ := e.Embed(ctx, "hooks and loops in fabric knitting")
	assert.NotEqual(t, v1, v2)
}

func TestLexicalAvailableAlwaysTrueUntilClosed(t *testing.T) {
	e := NewLexicalEmbedder()
	assert.True(t, e.Available(context.Background()))
	require.NoError(t, e.Close())
	assert.False(t, e.Available(context.Background()))
}

func TestLexicalEmbedAfterCloseErrors(t *testing.T) {
	e := NewLexicalEmbedder()
	require.NoError(t, e.Close())
	_, _, _, err := e.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func TestSplitCodeTokenHandlesCamelSnakeKebab(t *testing.T) {
	assert.Equal(t, []string{"get", "Memory", "By", "Id"}, splitCodeToken("getMemoryById"))
	assert.Equal(t, []string{"memory", "item", "fts"}, splitCodeToken("memory_item_fts"))
	assert.Equal(t, []string{"review", "schedule"}, splitCodeToken("review-schedule"))
}

func TestModelInfoReportsFixedDimension(t *testing.T) {
	info := NewLexicalEmbedder().ModelInfo()
	assert.Equal(t, LexicalDimensions, info.Dimension)
	assert.Equal(t, "lexical", info.Tag)
}
