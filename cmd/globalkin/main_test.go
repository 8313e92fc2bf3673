package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/globalkin/internal/config"
)

func TestBaseConfigLayersFileOnPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globalkin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temperature: 6\nguard: halt\n"), 0644))

	cfg, err := baseConfig("hot", path)
	require.NoError(t, err)

	assert.Equal(t, 6.0, cfg.Temperature)
	assert.Equal(t, "halt", cfg.Guard)
	assert.Equal(t, 2e-8, cfg.TEnd, "preset value not in the file must survive")
}

func TestBaseConfigDefaults(t *testing.T) {
	cfg, err := baseConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestBaseConfigErrors(t *testing.T) {
	_, err := baseConfig("nope", "")
	assert.Error(t, err)

	_, err = baseConfig("", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
