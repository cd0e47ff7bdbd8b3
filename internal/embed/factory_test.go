package embed

import (
	"testing"

	"github.com/mnemo-systems/mnemo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexicalProvider(t *testing.T) {
	e, err := New(config.EmbeddingsConfig{Provider: "lexical"})
	require.NoError(t, err)
	cached, ok := e.(*CachedEmbedder)
	require.True(t, ok)
	_, ok = cached.Inner().(*LexicalEmbedder)
	assert.True(t, ok)
}

func TestNewDisabledProvider(t *testing.T) {
	e, err := New(config.EmbeddingsConfig{Provider: "disabled"})
	require.NoError(t, err)
	assert.False(t, e.Available(nil))
}

func TestNewExternalProviderRequiresEndpoint(t *testing.T) {
	_, err := New(config.EmbeddingsConfig{Provider: "external"})
	assert.Error(t, err)
}

func TestNewUnknownProviderErrors(t *testing.T) {
	_, err := New(config.EmbeddingsConfig{Provider: "quantum"})
	assert.Error(t, err)
}
