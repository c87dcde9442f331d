package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Shell     ShellConfig
	Prefs     PrefsConfig
	Power     PowerConfig
	Music     MusicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"8000"`
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	GzipEnabled bool   `envconfig:"GZIP_ENABLED" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// ShellConfig tunes the window lifecycle core.
type ShellConfig struct {
	ZOrderBase       int           `envconfig:"SHELL_ZORDER_BASE" default:"500"`
	RecentCapacity   int           `envconfig:"SHELL_RECENT_CAPACITY" default:"2"`
	LongPress        time.Duration `envconfig:"SHELL_LONG_PRESS" default:"600ms"`
	MobileBreakpoint int           `envconfig:"SHELL_MOBILE_BREAKPOINT" default:"700"`
	MenuWidth        int           `envconfig:"SHELL_MENU_WIDTH" default:"180"`
	CatalogPath      string        `envconfig:"SHELL_CATALOG_PATH"`
}

// PrefsConfig locates the persisted preferences.
type PrefsConfig struct {
	Path         string `envconfig:"PREFS_PATH" default:"/tmp/namixos/prefs.toml"`
	WallpaperKey string `envconfig:"PREFS_WALLPAPER_KEY" default:"namixos_wallpaper"`
}

// PowerConfig holds power screen durations.
type PowerConfig struct {
	Splash       time.Duration `envconfig:"POWER_SPLASH" default:"2500ms"`
	StandbyBlack time.Duration `envconfig:"POWER_STANDBY_BLACK" default:"1500ms"`
	RebootBlack  time.Duration `envconfig:"POWER_REBOOT_BLACK" default:"3000ms"`
}

// MusicConfig holds the fake player's timing.
type MusicConfig struct {
	Tick        time.Duration `envconfig:"MUSIC_TICK" default:"500ms"`
	Step        float64       `envconfig:"MUSIC_STEP" default:"0.5"`
	TrackLength float64       `envconfig:"MUSIC_TRACK_LENGTH" default:"210"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			GzipEnabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Shell: ShellConfig{
			ZOrderBase:       500,
			RecentCapacity:   2,
			LongPress:        600 * time.Millisecond,
			MobileBreakpoint: 700,
			MenuWidth:        180,
		},
		Prefs: PrefsConfig{
			Path:         "/tmp/namixos/prefs.toml",
			WallpaperKey: "namixos_wallpaper",
		},
		Power: PowerConfig{
			Splash:       2500 * time.Millisecond,
			StandbyBlack: 1500 * time.Millisecond,
			RebootBlack:  3000 * time.Millisecond,
		},
		Music: MusicConfig{
			Tick:        500 * time.Millisecond,
			Step:        0.5,
			TrackLength: 210,
		},
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
