// Package music simulates the music player's progress bar. There is no
// audio; a ticker advances a position while "playing".
package music
