// Package server assembles the NamixOS shell: it loads the app catalog and
// preferences, builds the lifecycle core, power sequencer and bundled apps,
// and serves them over gin with the WebSocket stream on /stream.
package server
