// Package config provides 12-factor configuration management for the
// NamixOS shell backend.
//
// Configuration is loaded from environment variables with sensible
// defaults. CLI flags can override environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, gzip)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Shell: z-order base, recent capacity, long press, mobile breakpoint, catalog
//   - Prefs: preferences file and wallpaper key
//   - Power: splash/standby/reboot screen durations
//   - Music: fake player timing
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Addr())
package config
