// Package terminal provides the desktop's fake terminal.
//
// Commands are interpreted from a fixed table; nothing is executed on the
// host. Output accumulates in a bounded transcript that the terminal
// window renders, so every line is HTML-sanitised before it is stored.
//
// Commands:
//   - help: list commands
//   - ls: list folders
//   - cd <folder>: change folder
//   - open <app>: open the app's window
//   - clear: clear the transcript
//   - about: version banner
package terminal
