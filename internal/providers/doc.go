// Package providers holds the bundled desktop apps whose content the
// backend computes.
//
// Available Providers:
//   - terminal: fake command interpreter (help, ls, cd, open, clear, about)
//   - files: fixed folder tree with glob search
//   - music: simulated playback progress
//   - browser: navigation stub that always reports navigation disabled
package providers
