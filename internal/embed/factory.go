package embed

import (
	"fmt"

	"github.com/mnemo-systems/mnemo/internal/config"
)

// New constructs the configured EmbeddingProvider variant, wrapped with a
// CachedEmbedder, per spec section 4.2: the active provider is fixed at
// startup from configuration.
func New(cfg config.EmbeddingsConfig) (Embedder, error) {
	var inner Embedder

	switch cfg.Provider {
	case "external":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("embeddings.endpoint is required for the external provider")
		}
		inner = NewExternalEmbedder(ExternalConfig{
			Endpoint:  cfg.Endpoint,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Dimension: cfg.Dimensions,
		})
	case "lexical":
		inner = NewLexicalEmbedder()
	case "disabled":
		inner = NewDisabledEmbedder()
	default:
		return nil, fmt.Errorf("unknown embeddings.provider %q", cfg.Provider)
	}

	return NewCachedEmbedderWithDefaults(inner), nil
}
