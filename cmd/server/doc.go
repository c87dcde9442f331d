// Package main is the entry point for the NamixOS shell backend.
//
// The server owns the desktop state: which apps are open, hidden or closed,
// window stacking, the taskbar, the dock's recent apps, the context and
// start menus, and the power screens. The browser front end drives it over
// REST and receives state pushes on the /stream WebSocket.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server --port 8000 --prefs ~/.namixos/prefs.toml
//
//	# Development mode (colored logs, debug level)
//	./server --dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
