package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "bin", cfg.Convert.InputFormat)
	assert.Equal(t, "csv", cfg.Convert.OutputFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "nested", "ypb.yaml")

	cfg := DefaultConfig()
	cfg.Convert.InputFormat = "text"
	cfg.Logging.Level = "debug"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/ypb.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "ypb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("convert: ["), 0600))

	_, err = LoadConfig(path)
	assert.Error(t, err)
}
