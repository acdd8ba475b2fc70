package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/config"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults_MissingFile(t *testing.T) {
	dir := t.TempDir()

	settings, err := config.Load(filepath.Join(dir, config.DefaultFilename))
	require.NoError(t, err)

	assert.True(t, settings.ExecuteNotebooks)
	assert.False(t, settings.ForceRun)
	assert.Equal(t, domain.CacheDefault, settings.CacheMode)
	assert.Equal(t, filepath.Join(dir, domain.DefaultCacheDirName), settings.CacheDir)
}

func TestLoad_CacheBoolTrue(t *testing.T) {
	path := writeSettings(t, "cache: true\n")

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.CacheDefault, settings.CacheMode)
	assert.Equal(t, filepath.Join(filepath.Dir(path), domain.DefaultCacheDirName), settings.CacheDir)
}

func TestLoad_CacheExplicitPath(t *testing.T) {
	path := writeSettings(t, "cache: /tmp/nbcache\n")

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.CachePath, settings.CacheMode)
	assert.Equal(t, "/tmp/nbcache", settings.CacheDir)
}

func TestLoad_CacheDisabled(t *testing.T) {
	path := writeSettings(t, "cache: false\n")

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.CacheDisabled, settings.CacheMode)
	assert.Empty(t, settings.CacheDir)
}

func TestLoad_CacheInvalidType(t *testing.T) {
	path := writeSettings(t, "cache: [1, 2]\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_FullSettings(t *testing.T) {
	path := writeSettings(t, `
execute: false
force: true
exclude:
  - index
  - drafts/
output: out
parallelism: 3
`)

	settings, err := config.Load(path)
	require.NoError(t, err)

	assert.False(t, settings.ExecuteNotebooks)
	assert.True(t, settings.ForceRun)
	assert.Equal(t, []string{"index", "drafts/"}, settings.ExcludePatterns)
	assert.Equal(t, "out", settings.OutputDir)
	assert.Equal(t, 3, settings.Parallelism)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeSettings(t, "execute: [\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestFileConfigLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte("force: true\n"), 0o644))

	loader := &config.FileConfigLoader{}
	settings, err := loader.Load(dir)
	require.NoError(t, err)
	assert.True(t, settings.ForceRun)
}
