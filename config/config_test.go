package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 200, cfg.Lint.MaxErrors)
	assert.False(t, cfg.Lint.WarningsAsErrors)
	assert.True(t, cfg.Lint.ReportUnusedLabel)

	assert.Equal(t, uint64(0x1000), cfg.Assemble.DefaultOrigin)

	assert.Equal(t, 4, cfg.Display.TabWidth)
	assert.True(t, cfg.Display.ColorOutput)
	assert.Equal(t, 1, cfg.Display.SourceContext)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	require.NotEmpty(t, path)
	assert.Equal(t, "config.toml", filepath.Base(path))

	switch runtime.GOOS {
	case "windows":
		assert.True(t, filepath.IsAbs(path) || path == "config.toml")
	case "darwin", "linux":
		dir := filepath.Dir(path)
		assert.True(t, filepath.Base(dir) == "x64asmlint" || path == "config.toml")
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()
	require.NotEmpty(t, path)

	switch runtime.GOOS {
	case "windows":
		assert.True(t, filepath.IsAbs(path) || path == "logs")
	case "darwin", "linux":
		assert.Equal(t, "logs", filepath.Base(path))
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Lint.MaxErrors = 50
	cfg.Lint.WarningsAsErrors = true
	cfg.Assemble.DefaultOrigin = 0x400000
	cfg.Display.TabWidth = 8
	cfg.Display.ColorOutput = false

	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, 50, loaded.Lint.MaxErrors)
	assert.True(t, loaded.Lint.WarningsAsErrors)
	assert.Equal(t, uint64(0x400000), loaded.Assemble.DefaultOrigin)
	assert.Equal(t, 8, loaded.Display.TabWidth)
	assert.False(t, loaded.Display.ColorOutput)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	require.NoError(t, err, "LoadFrom should not error on a non-existent file")
	assert.Equal(t, 200, cfg.Lint.MaxErrors, "expected the default config when the file doesn't exist")
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[lint]
max_errors = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := LoadFrom(configPath)
	assert.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SaveTo(configPath))
	require.FileExists(t, configPath)

	dir := filepath.Dir(configPath)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
