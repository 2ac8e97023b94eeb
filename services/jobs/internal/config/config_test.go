package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxResults)
	assert.Equal(t, 50.0, cfg.MilesRadius)
	assert.Equal(t, 15, cfg.PageSize)
	assert.Equal(t, 32, cfg.WorkerPoolSize)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MAX_RESULTS", "25")
	t.Setenv("MILES_RADIUS", "12.5")
	t.Setenv("PAGE_SIZE", "30")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CLICKHOUSE_DATABASE", "portal_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, 12.5, cfg.MilesRadius)
	assert.Equal(t, 30, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "portal_test", cfg.ClickHouseDatabase)
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MAX_RESULTS", "lots")
	t.Setenv("MILES_RADIUS", "far")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxResults)
	assert.Equal(t, 50.0, cfg.MilesRadius)
}

func TestLoadConfig_RejectsNonPositive(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PAGE_SIZE", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
