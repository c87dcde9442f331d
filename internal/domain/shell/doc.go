// Package shell implements the window and application lifecycle of the
// desktop shell.
//
// The package owns five pieces of state, gathered in State and mutated
// only through Manager:
//   - Registry: app -> window binding and closed/open/hidden status
//   - ZOrder: strictly increasing stacking values and the active window
//   - Recent: the dock's most-recently-used list (capacity 2)
//   - Taskbar: one entry per open window
//   - ContextMenu: idle -> shown -> idle, with the long-press timer
//
// Manager serialises all operations under one mutex and publishes a
// types.Snapshot to subscribed listeners after each change. Operations
// on unknown apps or windows are silent no-ops.
package shell
