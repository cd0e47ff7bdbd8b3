package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ExternalEmbedder delegates to a remote embedding service over HTTP,
// truncating input to the provider's token budget before sending.
type ExternalEmbedder struct {
	endpoint  string
	apiKey    string
	model     string
	dimension int
	maxTokens int
	client    *http.Client
}

// ExternalConfig configures an ExternalEmbedder.
type ExternalConfig struct {
	Endpoint  string
	APIKey    string
	Model     string
	Dimension int
	MaxTokens int
	Timeout   time.Duration
}

func NewExternalEmbedder(cfg ExternalConfig) *ExternalEmbedder {
	if cfg.Dimension <= 0 {
		cfg.Dimension = 768
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExternalEmbedder{
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		dimension: cfg.Dimension,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

type externalRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model,omitempty"`
}

type externalResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (e *ExternalEmbedder) Available(ctx context.Context) bool {
	if e.endpoint == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

func (e *ExternalEmbedder) Embed(ctx context.Context, text string) ([]float32, string, int, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, "", 0, err
	}
	return vectors[0], e.model, estimateTokens(text), nil
}

func (e *ExternalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	truncated := make([]string, len(texts))
	for i, t := range texts {
		truncated[i] = truncateToTokenBudget(t, e.maxTokens)
	}

	body, err := json.Marshal(externalRequest{Input: truncated, Model: e.model})
	if err != nil {
		return nil, fmt.Errorf("encoding embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embedding service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	var parsed externalResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}
	if len(parsed.Data) != len(truncated) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d inputs", len(parsed.Data), len(truncated))
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}
	return out, nil
}

func (e *ExternalEmbedder) ModelInfo() ModelInfo {
	return ModelInfo{Tag: e.model, Dimension: e.dimension, MaxTokens: e.maxTokens}
}

func (e *ExternalEmbedder) Close() error { return nil }

// estimateTokens approximates token count as whitespace-delimited words,
// adequate for usage reporting without a real tokenizer dependency.
func estimateTokens(text string) int {
	return len(strings.Fields(text))
}

// truncateToTokenBudget trims text to approximately maxTokens words.
func truncateToTokenBudget(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxTokens {
		return text
	}
	return strings.Join(words[:maxTokens], " ")
}
