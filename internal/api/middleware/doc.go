// Package middleware provides the HTTP middleware stack of the shell API.
//
//   - CORS: cross-origin access for the desktop front end, exposing the
//     trace headers
//   - RateLimit: per-IP token bucket with idle-client eviction; the
//     WebSocket route is usually listed in SkipPaths
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
