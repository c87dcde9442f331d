package shell

import (
	"sort"

	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

// Registry maps applications to their windows and tracks lifecycle state.
// It is not safe for concurrent use; Manager serialises access.
type Registry struct {
	apps     map[string]*types.App
	windows  map[string]*types.Window
	byWindow map[string]string // windowID -> appID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		apps:     make(map[string]*types.App),
		windows:  make(map[string]*types.Window),
		byWindow: make(map[string]string),
	}
}

// Register binds windowID to appID. An app owns at most one window and a
// window belongs to exactly one app; conflicting bindings are ignored.
func (r *Registry) Register(appID, windowID string) bool {
	if appID == "" || windowID == "" {
		return false
	}
	if owner, ok := r.byWindow[windowID]; ok {
		return owner == appID
	}

	app := r.Ensure(appID)
	if app.WindowID != "" {
		return false
	}

	app.WindowID = windowID
	r.windows[windowID] = &types.Window{ID: windowID, AppID: appID}
	r.byWindow[windowID] = appID
	return true
}

// Ensure returns the app entry, creating a closed one on first reference
func (r *Registry) Ensure(appID string) *types.App {
	app, ok := r.apps[appID]
	if !ok {
		app = &types.App{ID: appID, State: types.StateClosed}
		r.apps[appID] = app
	}
	return app
}

// App returns the app entry without creating it
func (r *Registry) App(appID string) (*types.App, bool) {
	app, ok := r.apps[appID]
	return app, ok
}

// Window returns a window by its ID
func (r *Registry) Window(windowID string) (*types.Window, bool) {
	win, ok := r.windows[windowID]
	return win, ok
}

// WindowOf returns the window owned by appID
func (r *Registry) WindowOf(appID string) (*types.Window, bool) {
	app, ok := r.apps[appID]
	if !ok || app.WindowID == "" {
		return nil, false
	}
	return r.Window(app.WindowID)
}

// AppOf returns the app that owns windowID
func (r *Registry) AppOf(windowID string) (*types.App, bool) {
	appID, ok := r.byWindow[windowID]
	if !ok {
		return nil, false
	}
	return r.App(appID)
}

// State reports the lifecycle state of appID; unknown apps are closed
func (r *Registry) State(appID string) types.AppState {
	if app, ok := r.apps[appID]; ok {
		return app.State
	}
	return types.StateClosed
}

// Apps returns copies of every known app, sorted by ID
func (r *Registry) Apps() []types.App {
	apps := make([]types.App, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, *app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

// Windows returns copies of every registered window, sorted by ID
func (r *Registry) Windows() []types.Window {
	wins := make([]types.Window, 0, len(r.windows))
	for _, win := range r.windows {
		wins = append(wins, *win)
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].ID < wins[j].ID })
	return wins
}

// topVisible returns the visible window with the highest z-order
func (r *Registry) topVisible() (*types.Window, bool) {
	var top *types.Window
	for _, win := range r.windows {
		if !win.Visible {
			continue
		}
		if top == nil || win.ZOrder > top.ZOrder {
			top = win
		}
	}
	return top, top != nil
}

// counts returns the number of visible and hidden apps
func (r *Registry) counts() (open, hidden int) {
	for _, app := range r.apps {
		switch app.State {
		case types.StateOpen:
			open++
		case types.StateHidden:
			hidden++
		}
	}
	return open, hidden
}
