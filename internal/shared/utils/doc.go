// Package utils validates identifiers and free-text input arriving from
// the HTTP and WebSocket surfaces.
package utils
