// Package http provides HTTP handlers and routing for the NamixOS shell API.
//
// Endpoints:
//   - Health: / and /health
//   - Shell: /shell, /apps, /windows/:id/..., /taskbar, /dock/recent
//   - Menus: /context-menu, /touch, /start-menu, /desktop/click
//   - Power: /power, /power/standby, /power/wake, /power/reboot
//   - Apps: /terminal, /files, /music, /browser/navigate
//
// Lifecycle operations reply with a "success" flag that is false when the
// call changed nothing. Unknown apps and windows get 404, malformed bodies 400.
//
// Example Usage:
//
//	handlers := http.NewHandlers(http.Deps{Shell: manager, Power: seq})
//	http.RegisterRoutes(router, handlers)
package http
