package types

// TargetRequest raises a context menu or a long press on a surface
type TargetRequest struct {
	Kind     TargetKind `json:"kind" binding:"required"`
	AppID    string     `json:"app_id"`
	WindowID string     `json:"window_id"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
}

// Target extracts the context target from the request
func (r TargetRequest) Target() ContextTarget {
	return ContextTarget{Kind: r.Kind, AppID: r.AppID, WindowID: r.WindowID}
}

// ActionRequest presses a context menu button
type ActionRequest struct {
	Action Action `json:"action" binding:"required"`
}

// DismissRequest dismisses the context menu
type DismissRequest struct {
	Reason DismissReason `json:"reason"`
}

// DragRequest moves a window by its title bar
type DragRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ViewportRequest reports the browser viewport width
type ViewportRequest struct {
	Width int `json:"width" binding:"required,min=1"`
}

// TerminalRequest runs a fake terminal command
type TerminalRequest struct {
	Command string `json:"command"`
}

// NavigateRequest asks the browser app to load a URL
type NavigateRequest struct {
	URL string `json:"url"`
}

// WSMessage represents an inbound WebSocket command
type WSMessage struct {
	Type     string        `json:"type"`
	AppID    string        `json:"app_id,omitempty"`
	WindowID string        `json:"window_id,omitempty"`
	Kind     TargetKind    `json:"kind,omitempty"`
	Action   Action        `json:"action,omitempty"`
	Reason   DismissReason `json:"reason,omitempty"`
	X        int           `json:"x,omitempty"`
	Y        int           `json:"y,omitempty"`
	Width    int           `json:"width,omitempty"`
	Command  string        `json:"command,omitempty"`
}

// Target extracts the context target carried by a message
func (m WSMessage) Target() ContextTarget {
	return ContextTarget{Kind: m.Kind, AppID: m.AppID, WindowID: m.WindowID}
}
