package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".merchant-memory", "saves.db"), cfg.DB)
	assert.Equal(t, "default", cfg.Slot)
	assert.Equal(t, 20, cfg.Keep)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.Clock.Tick)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MERCHANT_MEMORY_DB", "/tmp/elsewhere.db")
	t.Setenv("MERCHANT_MEMORY_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "mm.yaml")
	content := `
slot: caves
keep: 3
clock:
  tick: 500ms
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "caves", cfg.Slot)
	assert.Equal(t, 3, cfg.Keep)
	assert.Equal(t, 500*time.Millisecond, cfg.Clock.Tick)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{DB: "x.db", Slot: "s", Clock: ClockConfig{Epoch: "2024-01-01T00:00:00Z", Tick: time.Second}}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Keep = -1
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Clock.Tick = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Clock.Epoch = "yesterday"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Slot = " "
	assert.Error(t, bad.Validate())
}
