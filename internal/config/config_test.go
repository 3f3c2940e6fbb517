package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TUBEMAP_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, SourceFile, cfg.DataSource)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	yamlPath := filepath.Join(dir, "tubemap.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
port: 9000
data_source: neo4j
neo4j_uri: bolt://graph:7687
cache_ttl: 30s
allowed_origins:
  - https://tube.example
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nPORT=9100\n"), 0o600))

	t.Setenv("TUBEMAP_CONFIG", yamlPath)
	t.Setenv("PORT", "9200")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port, "environment wins over .env and YAML")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceNeo4j, cfg.DataSource)
	assert.Equal(t, "bolt://graph:7687", cfg.Neo4jURI)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://tube.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigErrors(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("missing yaml file", func(t *testing.T) {
		t.Setenv("TUBEMAP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown data source", func(t *testing.T) {
		t.Setenv("TUBEMAP_CONFIG", "")
		t.Setenv("DATA_SOURCE", "postgres")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unknown data_source")
	})
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("ORIGINS", " a, ,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvAsList("ORIGINS", nil))
	assert.Equal(t, []string{"x"}, getEnvAsList("NOT_SET_ANYWHERE", []string{"x"}))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
