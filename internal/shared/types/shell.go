package types

// TaskbarEntry is the projection of an open window onto the taskbar
type TaskbarEntry struct {
	WindowID string `json:"window_id"`
	AppID    string `json:"app_id"`
	Label    string `json:"label"`
}

// RecentItem is a rendered slot of the dock's recent section
type RecentItem struct {
	AppID    string `json:"app_id"`
	WindowID string `json:"window_id,omitempty"`
	Icon     string `json:"icon"`
	Hidden   bool   `json:"hidden"` // drives the dock indicator dot
}

// TargetKind identifies the surface a context menu was raised on
type TargetKind string

const (
	TargetDesktopIcon TargetKind = "desktop-icon"
	TargetDockMain    TargetKind = "dock-main"
	TargetDockRecent  TargetKind = "dock-recent"
	TargetTaskbar     TargetKind = "taskbar"
	TargetWindow      TargetKind = "window"
)

// Valid reports whether k is a known surface kind
func (k TargetKind) Valid() bool {
	switch k {
	case TargetDesktopIcon, TargetDockMain, TargetDockRecent, TargetTaskbar, TargetWindow:
		return true
	}
	return false
}

// ContextTarget describes what a context menu acts on
type ContextTarget struct {
	Kind     TargetKind `json:"kind"`
	AppID    string     `json:"app_id,omitempty"`
	WindowID string     `json:"window_id,omitempty"`
}

// Action is a context menu button
type Action string

const (
	ActionOpen  Action = "open"
	ActionHide  Action = "hide"
	ActionClose Action = "close"
)

// Valid reports whether a is a known context menu action
func (a Action) Valid() bool {
	return a == ActionOpen || a == ActionHide || a == ActionClose
}

// DismissReason records why a context menu went back to idle
type DismissReason string

const (
	DismissClick      DismissReason = "click"
	DismissScroll     DismissReason = "scroll"
	DismissAction     DismissReason = "action"
	DismissUnresolved DismissReason = "unresolved"
)

// ContextMenu is the visible state of the context menu
type ContextMenu struct {
	Visible bool           `json:"visible"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Target  *ContextTarget `json:"target,omitempty"`
}

// PowerPhase is the screen the shell is currently showing
type PowerPhase string

const (
	PhaseSplash  PowerPhase = "splash"
	PhaseDesktop PowerPhase = "desktop"
	PhaseBlack   PowerPhase = "black"
	PhaseStandby PowerPhase = "standby"
)

// Snapshot is the full renderable shell state
type Snapshot struct {
	Apps          []App          `json:"apps"`
	Windows       []Window       `json:"windows"`
	Taskbar       []TaskbarEntry `json:"taskbar"`
	Recent        []RecentItem   `json:"recent"`
	ActiveWindow  string         `json:"active_window,omitempty"`
	ContextMenu   ContextMenu    `json:"context_menu"`
	StartMenuOpen bool           `json:"start_menu_open"`
	Mobile        bool           `json:"mobile"`
}
