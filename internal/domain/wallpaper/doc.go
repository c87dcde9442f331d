// Package wallpaper loads the desktop background preference.
//
// The preference is a single key holding a tagged JSON value such as
// {"type":"image","value":"/img/beach.jpg"}. It is read once at startup
// and never written. Anything unusable falls back to the default
// background with a diagnostic log line; no error reaches the caller.
package wallpaper
