package replcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_PersistsGlobalsAndHasPrompt(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.PersistGlobals)
	require.True(t, cfg.Color)
	require.NotEmpty(t, cfg.Prompt)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".reirc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persist_globals: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.PersistGlobals)
	require.Equal(t, Default().Prompt, cfg.Prompt)
	require.True(t, cfg.Color)
}

func TestLoad_CustomPromptAndColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".reirc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"re >> \"\ncolor: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "re >> ", cfg.Prompt)
	require.False(t, cfg.Color)
}
