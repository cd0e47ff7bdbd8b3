package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "lexical", cfg.Embeddings.Provider)
}

func TestLoadParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mnemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embeddings:\n  provider: external\n  dimensions: 1536\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "external", cfg.Embeddings.Provider)
	assert.Equal(t, 1536, cfg.Embeddings.Dimensions)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mnemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embeddings:\n  provider: external\n"), 0o644))

	t.Setenv("EMBEDDING_PROVIDER", "lightweight")
	t.Setenv("DB_PATH", filepath.Join(dir, "store.db"))
	t.Setenv("FORGET_WORKING_TTL", "12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lexical", cfg.Embeddings.Provider)
	assert.Equal(t, filepath.Join(dir, "store.db"), cfg.Store.Path)
	assert.Equal(t, 12, cfg.Forgetting.TTLHours[TypeWorking])
}

func TestValidateRejectsBadTransport(t *testing.T) {
	cfg := Default()
	cfg.Server.Transport = "carrier-pigeon"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMaxLimitBelowDefault(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxLimit = 1
	cfg.Search.DefaultLimit = 10
	assert.Error(t, cfg.Validate())
}
