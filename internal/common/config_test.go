package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "./data/titles.csv", config.Data.TitlesFile)
	assert.Equal(t, 8, config.Workers.Concurrency)
	assert.Equal(t, "both", config.Export.Format)
	assert.False(t, config.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.toml")
	content := `
environment = "production"

[logging]
level = "debug"

[workers]
concurrency = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 2, config.Workers.Concurrency)
	assert.True(t, config.IsProduction())

	// Unset sections keep their defaults
	assert.Equal(t, "./data/cache", config.Cache.Path)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SLATE_LOG_LEVEL", "warn")
	t.Setenv("SLATE_CACHE_PATH", "/tmp/slate-cache")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "/tmp/slate-cache", config.Cache.Path)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, "custom.toml", "/tmp/out", 4)
	assert.Equal(t, "custom.toml", config.AssumptionsFile)
	assert.Equal(t, "/tmp/out", config.Export.Dir)
	assert.Equal(t, 4, config.Workers.Concurrency)

	// Zero values leave the config untouched
	ApplyFlagOverrides(config, "", "", 0)
	assert.Equal(t, "custom.toml", config.AssumptionsFile)
	assert.Equal(t, 4, config.Workers.Concurrency)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/slate.toml")
	assert.Error(t, err)
}
