// Package types provides shared data structures for the NamixOS shell backend.
//
// This package defines the shell's data model, shared by the lifecycle
// core, the HTTP API and the WebSocket stream.
//
// Core Types:
//   - App: Logical application and its lifecycle state
//   - Window: Visual surface owned by exactly one App
//   - TaskbarEntry: Projection of an open window onto the taskbar
//   - RecentItem: Rendered slot of the dock's recent section
//   - ContextTarget: What a context menu acts on
//   - Snapshot: Full renderable shell state
//
// Request Types:
//   - TargetRequest, ActionRequest, DismissRequest: Context menu
//   - DragRequest, ViewportRequest: Window geometry
//   - WSMessage: WebSocket commands
//
// State Management:
//   - AppState: closed, open, hidden
//   - PowerPhase: splash, desktop, black, standby
//
// Example Usage:
//
//	snap := manager.Snapshot()
//	for _, item := range snap.Recent {
//	    if item.Hidden {
//	        // render indicator dot
//	    }
//	}
package types
