package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paintctl", "config.yaml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, ".", cfg.General.Root)
	assert.Equal(t, "combined.json", cfg.Combine.Output)
	assert.True(t, cfg.Combine.Dedup)
	assert.Contains(t, cfg.General.SkipDirs, ".git")
	assert.Contains(t, cfg.General.SkipFiles, ".ak_set_skus_cache.json")
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
combine:
  output: all_paints.json
  dedup: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "all_paints.json", cfg.Combine.Output)
	assert.False(t, cfg.Combine.Dedup)
	// Untouched sections keep their defaults.
	assert.Equal(t, ".", cfg.General.Root)
	assert.Contains(t, cfg.General.SkipDirs, "node_modules")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.General.Root = "/data/paints"
	cfg.General.Verbose = true
	cfg.Combine.Dedup = false
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combine: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
