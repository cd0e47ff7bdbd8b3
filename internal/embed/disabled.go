package embed

import "context"

// DisabledEmbedder is the no-op EmbeddingProvider variant: Available always
// reports false, so HybridRanker and recall fall back to lexical-only
// retrieval (spec section 4.2).
type DisabledEmbedder struct{}

func NewDisabledEmbedder() *DisabledEmbedder { return &DisabledEmbedder{} }

func (d *DisabledEmbedder) Available(context.Context) bool { return false }

func (d *DisabledEmbedder) Embed(context.Context, string) ([]float32, string, int, error) {
	return nil, "", 0, errDisabled
}

func (d *DisabledEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errDisabled
}

func (d *DisabledEmbedder) ModelInfo() ModelInfo {
	return ModelInfo{Tag: "disabled", Dimension: 0, MaxTokens: 0}
}

func (d *DisabledEmbedder) Close() error { return nil }

var errDisabled = disabledError("embedding provider is disabled")

type disabledError string

func (e disabledError) Error() string { return string(e) }
