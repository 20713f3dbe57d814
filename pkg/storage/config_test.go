package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STICKIES_CONFIG_PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendDiskv, cfg.Backend)
	assert.Equal(t, FallbackBolt, cfg.Fallback)
	assert.Equal(t, time.Second, cfg.QuietPeriod)
	assert.True(t, filepath.IsAbs(cfg.Path), "path %q should be expanded", cfg.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := "path: " + filepath.Join(dir, "board") + "\nbackend: SQLite\nquiet_period: 250ms\nredis:\n  addr: cache:6380\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stickies.yaml"), []byte(data), 0o644))
	t.Setenv("STICKIES_CONFIG_PATH", dir)
	t.Setenv("STICKIES_FALLBACK", "memory")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "board"), cfg.Path)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, FallbackMemory, cfg.Fallback)
	assert.Equal(t, 250*time.Millisecond, cfg.QuietPeriod)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestOpenTiers(t *testing.T) {
	cfg := &Config{Path: t.TempDir(), Backend: BackendDiskv, Fallback: FallbackBolt}
	tiers, err := Open(cfg)
	require.NoError(t, err)
	defer tiers.Close()

	assert.IsType(t, &DiskvAdapter{}, tiers.Primary)
	assert.IsType(t, &Bolt{}, tiers.Fallback)
	assert.NotEmpty(t, tiers.WatchPath)
	assert.Empty(t, tiers.Warnings)

	_, err = Open(&Config{Path: t.TempDir(), Backend: "cassette"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
