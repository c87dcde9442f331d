package types

// AppState represents application lifecycle states
type AppState string

const (
	StateClosed AppState = "closed"
	StateOpen   AppState = "open"   // open and visible
	StateHidden AppState = "hidden" // open but minimized
)

// IsOpen reports whether the app owns a live window (visible or hidden)
func (s AppState) IsOpen() bool {
	return s == StateOpen || s == StateHidden
}

// Position represents window position on screen
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// App represents a logical application bound to at most one window
type App struct {
	ID       string   `json:"id"`
	WindowID string   `json:"window_id,omitempty"`
	State    AppState `json:"state"`
}

// Window represents the visual surface owned by one application
type Window struct {
	ID         string   `json:"id"`
	AppID      string   `json:"app_id"`
	Visible    bool     `json:"visible"`
	ZOrder     int      `json:"z_order"`
	Position   Position `json:"position"`
	Fullscreen bool     `json:"fullscreen"`
	Active     bool     `json:"active"`
}

// Stats contains shell statistics
type Stats struct {
	TotalApps    int     `json:"total_apps"`
	OpenApps     int     `json:"open_apps"`
	HiddenApps   int     `json:"hidden_apps"`
	ActiveWindow *string `json:"active_window,omitempty"`
	TopZOrder    int     `json:"top_z_order"`
}
