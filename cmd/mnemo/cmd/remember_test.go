package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberThenRecallRoundTrip(t *testing.T) {
	configPath = ""
	t.Cleanup(func() { configPath = "" })

	dbPath := filepath.Join(t.TempDir(), "mnemo.db")
	t.Setenv("DB_PATH", dbPath)

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"remember", "the capital of France is Paris", "--type", "semantic"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "remembered")

	out.Reset()
	root = NewRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"recall", "capital of France"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Paris")
}

func TestForgetUnknownIDReturnsError(t *testing.T) {
	configPath = ""
	t.Cleanup(func() { configPath = "" })

	dbPath := filepath.Join(t.TempDir(), "mnemo.db")
	t.Setenv("DB_PATH", dbPath)

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"forget", "does-not-exist"})
	assert.Error(t, root.Execute())
}
