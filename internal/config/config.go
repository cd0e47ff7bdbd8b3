// Package config loads mnemo's runtime configuration from an optional YAML
// file, then overlays the environment knobs enumerated in the external
// interface spec (DB_PATH, MCP_SERVER_PORT, EMBEDDING_PROVIDER, ...).
// Env vars always win over the file so a deployment can override a shared
// config without editing it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MemoryType mirrors store.MemoryType without importing internal/store, to
// keep config dependency-free.
type MemoryType string

const (
	TypeWorking    MemoryType = "working"
	TypeEpisodic   MemoryType = "episodic"
	TypeSemantic   MemoryType = "semantic"
	TypeProcedural MemoryType = "procedural"
)

// Config is the complete runtime configuration for mnemo.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Store      StoreConfig      `yaml:"store" json:"store"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" json:"embeddings"`
	Search     SearchConfig     `yaml:"search" json:"search"`
	Forgetting ForgettingConfig `yaml:"forgetting" json:"forgetting"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	LogLevel   string           `yaml:"log_level" json:"log_level"`
}

// StoreConfig configures the durable store location.
type StoreConfig struct {
	Path string `yaml:"path" json:"path"`
}

// EmbeddingsConfig configures the active embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the variant: "external", "lexical", or "disabled".
	Provider   string `yaml:"provider" json:"provider"`
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	APIKey     string `yaml:"api_key" json:"api_key"`
	Model      string `yaml:"model" json:"model"`
	Dimensions int    `yaml:"dimensions" json:"dimensions"`
}

// SearchConfig configures default/max recall limits and weighting.
type SearchConfig struct {
	DefaultLimit   int     `yaml:"default_limit" json:"default_limit"`
	MaxLimit       int     `yaml:"max_limit" json:"max_limit"`
	VectorWeight   float64 `yaml:"vector_weight" json:"vector_weight"`
	TextWeight     float64 `yaml:"text_weight" json:"text_weight"`
	SimilarityFloor float64 `yaml:"similarity_floor" json:"similarity_floor"`
}

// ForgettingConfig configures per-type TTLs (hours; -1 = unbounded) plus the
// soft/hard forget-score thresholds.
// HardTTLMultiplier (default 2.0, see the open question decision in
// DESIGN.md) derives the hard-TTL as TTLHours * HardTTLMultiplier, since no
// separate hard-TTL value is configured.
type ForgettingConfig struct {
	TTLHours         map[MemoryType]int `yaml:"ttl_hours" json:"ttl_hours"`
	HardTTLMultiplier float64           `yaml:"hard_ttl_multiplier" json:"hard_ttl_multiplier"`
	SoftThreshold    float64            `yaml:"soft_threshold" json:"soft_threshold"`
	HardThreshold    float64            `yaml:"hard_threshold" json:"hard_threshold"`
	MaxPerRun        int                `yaml:"max_per_run" json:"max_per_run"`
}

// ServerConfig configures the transport listener.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// Default returns the baseline configuration before any file or env overlay.
func Default() *Config {
	return &Config{
		Version: 1,
		Store:   StoreConfig{Path: "mnemo.db"},
		Embeddings: EmbeddingsConfig{
			Provider:   "lexical",
			Dimensions: 512,
		},
		Search: SearchConfig{
			DefaultLimit:    10,
			MaxLimit:        100,
			VectorWeight:    0.6,
			TextWeight:      0.4,
			SimilarityFloor: 0.5,
		},
		Forgetting: ForgettingConfig{
			TTLHours: map[MemoryType]int{
				TypeWorking:    48,
				TypeEpisodic:   90 * 24,
				TypeSemantic:   -1,
				TypeProcedural: -1,
			},
			HardTTLMultiplier: 2.0,
			SoftThreshold:     0.6,
			HardThreshold:     0.7,
			MaxPerRun:         500,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Port:      8085,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file (if path is non-empty and exists), applies
// defaults for anything unset, then overlays environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides overlays the environment knobs from the external
// interface spec. Env vars always take precedence over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("MCP_SERVER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		cfg.Embeddings.Provider = normalizeProvider(v)
	}
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Embeddings.Dimensions = n
		}
	}
	if v := os.Getenv("SEARCH_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("SEARCH_MAX_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxLimit = n
		}
	}
	for _, t := range []MemoryType{TypeWorking, TypeEpisodic, TypeSemantic, TypeProcedural} {
		key := "FORGET_" + strings.ToUpper(string(t)) + "_TTL"
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				cfg.Forgetting.TTLHours[t] = n
			}
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// normalizeProvider maps the external-facing provider names from spec
// section 6 (external-a, external-b, lightweight) onto internal variant
// names (external, lexical).
func normalizeProvider(v string) string {
	switch v {
	case "external-a", "external-b":
		return "external"
	case "lightweight":
		return "lexical"
	default:
		return v
	}
}

// Validate checks semantic constraints that a loaded config must satisfy.
func (c *Config) Validate() error {
	if c.Search.DefaultLimit < 1 {
		return fmt.Errorf("search.default_limit must be >= 1")
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search.max_limit must be >= search.default_limit")
	}
	switch c.Embeddings.Provider {
	case "external", "lexical", "disabled":
	default:
		return fmt.Errorf("embeddings.provider must be one of external|lexical|disabled, got %q", c.Embeddings.Provider)
	}
	switch c.Server.Transport {
	case "stdio", "http", "ws":
	default:
		return fmt.Errorf("server.transport must be one of stdio|http|ws, got %q", c.Server.Transport)
	}
	return nil
}
