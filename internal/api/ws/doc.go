// Package ws streams shell state to the desktop over WebSocket.
//
// Every connected client receives a "snapshot" event whenever the shell
// changes, plus "power" and "music" events from the collaborators. The
// same connection accepts commands mirroring the HTTP API.
//
// Message Types (Client → Server):
//   - open, close, minimize: window_id (or app_id)
//   - focus, fullscreen: window_id
//   - drag: window_id, x, y
//   - taskbar_click: window_id
//   - recent_click: app_id
//   - context_show, touch_start: kind, app_id, window_id, x, y
//   - touch_move, touch_end
//   - context_action: action
//   - context_dismiss: reason
//   - start_toggle, start_launch (window_id), desktop_click
//   - viewport: width
//   - terminal: command
//   - ping
//
// Message Types (Server → Client):
//   - snapshot: full shell state
//   - power, music: collaborator state
//   - ack: result of a command (changed flag)
//   - terminal: terminal command output
//   - pong
//   - error: unknown type, or a malformed or unregistered app/window id
//
// Example Usage:
//
//	hub := ws.NewHub(logger, metrics)
//	shellManager.Subscribe(hub)
//	handler := ws.NewHandler(shellManager, term, hub, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
