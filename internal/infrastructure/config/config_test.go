package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.Server.GzipEnabled)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())

	// Shell config
	assert.Equal(t, 500, cfg.Shell.ZOrderBase)
	assert.Equal(t, 2, cfg.Shell.RecentCapacity)
	assert.Equal(t, 600*time.Millisecond, cfg.Shell.LongPress)
	assert.Equal(t, 700, cfg.Shell.MobileBreakpoint)
	assert.Equal(t, 180, cfg.Shell.MenuWidth)
	assert.Empty(t, cfg.Shell.CatalogPath)

	// Prefs and power
	assert.Equal(t, "namixos_wallpaper", cfg.Prefs.WallpaperKey)
	assert.Equal(t, 2500*time.Millisecond, cfg.Power.Splash)
	assert.Equal(t, 3*time.Second, cfg.Power.RebootBlack)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"GZIP_ENABLED":            "false",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
		"SHELL_ZORDER_BASE":       "1000",
		"SHELL_RECENT_CAPACITY":   "4",
		"SHELL_LONG_PRESS":        "1s",
		"SHELL_MOBILE_BREAKPOINT": "480",
		"SHELL_CATALOG_PATH":      "/etc/namixos/apps.yaml",
		"PREFS_PATH":              "/var/lib/namixos/prefs.toml",
		"POWER_SPLASH":            "100ms",
		"MUSIC_STEP":              "1.5",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.False(t, cfg.Server.GzipEnabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1000, cfg.Shell.ZOrderBase)
	assert.Equal(t, 4, cfg.Shell.RecentCapacity)
	assert.Equal(t, time.Second, cfg.Shell.LongPress)
	assert.Equal(t, 480, cfg.Shell.MobileBreakpoint)
	assert.Equal(t, "/etc/namixos/apps.yaml", cfg.Shell.CatalogPath)
	assert.Equal(t, "/var/lib/namixos/prefs.toml", cfg.Prefs.Path)
	assert.Equal(t, 100*time.Millisecond, cfg.Power.Splash)
	assert.Equal(t, 1.5, cfg.Music.Step)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("SHELL_LONG_PRESS", "forever")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, Default(), cfg)
}
