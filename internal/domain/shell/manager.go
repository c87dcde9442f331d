package shell

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/schedule"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

const (
	// DefaultLongPress is how long a touch must be held to raise the menu
	DefaultLongPress = 600 * time.Millisecond
	// DefaultMobileBreakpoint is the widest viewport treated as mobile
	DefaultMobileBreakpoint = 700
	// DefaultMenuWidth is the rendered context menu width used for clamping
	DefaultMenuWidth = 180

	menuMargin = 5
)

// Config tunes the lifecycle core
type Config struct {
	ZOrderBase       int
	RecentCapacity   int
	LongPress        time.Duration
	MobileBreakpoint int
	MenuWidth        int
}

// DefaultConfig returns the stock shell configuration
func DefaultConfig() Config {
	return Config{
		ZOrderBase:       DefaultZOrderBase,
		RecentCapacity:   DefaultRecentCapacity,
		LongPress:        DefaultLongPress,
		MobileBreakpoint: DefaultMobileBreakpoint,
		MenuWidth:        DefaultMenuWidth,
	}
}

// State is all mutable shell state. It is owned by exactly one Manager.
type State struct {
	Registry *Registry
	ZOrder   *ZOrder
	Recent   *Recent
	Taskbar  *Taskbar
	Menu     *ContextMenu

	StartMenuOpen bool
	Viewport      int // last reported viewport width, 0 if unknown
}

// NewState creates fresh session state
func NewState(cfg Config) *State {
	return &State{
		Registry: NewRegistry(),
		ZOrder:   NewZOrder(cfg.ZOrderBase),
		Recent:   NewRecent(cfg.RecentCapacity),
		Taskbar:  NewTaskbar(),
		Menu:     NewContextMenu(),
	}
}

// Listener is notified with a fresh snapshot after every state change
type Listener interface {
	ShellChanged(snap types.Snapshot)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(snap types.Snapshot)

// ShellChanged calls f(snap)
func (f ListenerFunc) ShellChanged(snap types.Snapshot) { f(snap) }

// Labels supplies display metadata for apps
type Labels interface {
	Title(appID string) string
	Icon(appID string) string
}

type plainLabels struct{}

func (plainLabels) Title(appID string) string { return appID }
func (plainLabels) Icon(string) string        { return "📦" }

// Manager orchestrates the window/application lifecycle. Every operation
// runs atomically under one lock, so concurrent callers observe a single
// logical thread of control. Operations on unknown apps or windows are
// no-ops and report false.
type Manager struct {
	mu        sync.Mutex
	state     *State // Protected by mu
	cfg       Config
	scheduler schedule.Scheduler
	labels    Labels
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	listeners []Listener // Protected by mu
}

// NewManager creates a manager holding state
func NewManager(state *State, cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.LongPress <= 0 {
		cfg.LongPress = def.LongPress
	}
	if cfg.MobileBreakpoint <= 0 {
		cfg.MobileBreakpoint = def.MobileBreakpoint
	}
	if cfg.MenuWidth <= 0 {
		cfg.MenuWidth = def.MenuWidth
	}
	if state == nil {
		state = NewState(cfg)
	}
	return &Manager{
		state:     state,
		cfg:       cfg,
		scheduler: schedule.Real(),
		labels:    plainLabels{},
		logger:    zap.NewNop(),
	}
}

// WithScheduler replaces the timer source used for long presses
func (m *Manager) WithScheduler(s schedule.Scheduler) *Manager {
	m.scheduler = s
	return m
}

// WithLabels sets the display metadata source
func (m *Manager) WithLabels(l Labels) *Manager {
	m.labels = l
	return m
}

// WithLogger sets the logger
func (m *Manager) WithLogger(l *zap.Logger) *Manager {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Subscribe registers l for change notifications
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Register binds a window to an application
func (m *Manager) Register(appID, windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Registry.Register(appID, windowID)
}

// mutate runs fn under the lock and, if it reports a change, notifies
// listeners with the resulting snapshot after the lock is released
func (m *Manager) mutate(op string, fn func(s *State) bool) bool {
	m.mu.Lock()
	changed := fn(m.state)
	if !changed {
		m.mu.Unlock()
		return false
	}

	open, hidden := m.state.Registry.counts()
	snap := m.snapshotLocked()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	m.metrics.RecordTransition(op)
	m.metrics.SetApps(open, hidden)
	m.logger.Debug("Shell transition", zap.String("op", op), zap.Int("open", open), zap.Int("hidden", hidden))

	for _, l := range listeners {
		l.ShellChanged(snap)
	}
	return true
}

// ============================================================================
// Window Registry operations
// ============================================================================

// Open makes appID visible and focused. Re-opening refocuses.
func (m *Manager) Open(appID string) bool {
	return m.mutate("open", func(s *State) bool {
		return m.openLocked(s, appID)
	})
}

// OpenWindow opens the app that owns windowID
func (m *Manager) OpenWindow(windowID string) bool {
	return m.mutate("open", func(s *State) bool {
		app, ok := s.Registry.AppOf(windowID)
		if !ok {
			return false
		}
		return m.openLocked(s, app.ID)
	})
}

// Close closes appID, removing its taskbar entry and recent slot
func (m *Manager) Close(appID string) bool {
	return m.mutate("close", func(s *State) bool {
		return m.closeLocked(s, appID)
	})
}

// CloseWindow closes the app that owns windowID
func (m *Manager) CloseWindow(windowID string) bool {
	return m.mutate("close", func(s *State) bool {
		app, ok := s.Registry.AppOf(windowID)
		if !ok {
			return false
		}
		return m.closeLocked(s, app.ID)
	})
}

// Minimize hides an open app's window while keeping it on the taskbar.
// Minimizing a closed app does nothing.
func (m *Manager) Minimize(appID string) bool {
	return m.mutate("minimize", func(s *State) bool {
		return m.minimizeLocked(s, appID)
	})
}

// MinimizeWindow minimizes the app that owns windowID
func (m *Manager) MinimizeWindow(windowID string) bool {
	return m.mutate("minimize", func(s *State) bool {
		app, ok := s.Registry.AppOf(windowID)
		if !ok {
			return false
		}
		return m.minimizeLocked(s, app.ID)
	})
}

// State reports the lifecycle state of appID without side effects
func (m *Manager) State(appID string) types.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Registry.State(appID)
}

// App returns a copy of the app entry
func (m *Manager) App(appID string) (types.App, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.state.Registry.App(appID)
	if !ok {
		return types.App{}, false
	}
	return *app, true
}

// Window returns a copy of a window
func (m *Manager) Window(windowID string) (types.Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.state.Registry.Window(windowID)
	if !ok {
		return types.Window{}, false
	}
	w := *win
	w.Active = m.state.ZOrder.Active() == w.ID
	return w, true
}

func (m *Manager) openLocked(s *State, appID string) bool {
	app := s.Registry.Ensure(appID)
	win, ok := s.Registry.WindowOf(appID)
	if !ok {
		return false
	}

	app.State = types.StateOpen
	win.Visible = true
	if m.mobileLocked(s) {
		win.Fullscreen = true
	}

	s.Recent.Touch(appID)
	s.ZOrder.Focus(win)
	s.Taskbar.Add(types.TaskbarEntry{
		WindowID: win.ID,
		AppID:    appID,
		Label:    m.labels.Title(appID),
	})
	return true
}

func (m *Manager) closeLocked(s *State, appID string) bool {
	app, ok := s.Registry.App(appID)
	if !ok {
		return false
	}

	wasOpen := app.State.IsOpen()
	app.State = types.StateClosed
	s.Recent.Remove(appID)

	if win, ok := s.Registry.WindowOf(appID); ok {
		win.Visible = false
		s.Taskbar.Remove(win.ID)
		m.releaseFocusLocked(s, win.ID)
	}
	return wasOpen
}

func (m *Manager) minimizeLocked(s *State, appID string) bool {
	if !m.hideLocked(s, appID) {
		return false
	}
	s.Recent.Touch(appID)
	return true
}

// hideLocked marks an open app hidden without touching the recent list
func (m *Manager) hideLocked(s *State, appID string) bool {
	app, ok := s.Registry.App(appID)
	if !ok || !app.State.IsOpen() {
		return false
	}
	win, ok := s.Registry.WindowOf(appID)
	if !ok {
		return false
	}

	app.State = types.StateHidden
	win.Visible = false
	m.releaseFocusLocked(s, win.ID)
	return true
}

// releaseFocusLocked hands activation to the topmost remaining visible
// window when windowID loses visibility. Stacking values are untouched.
func (m *Manager) releaseFocusLocked(s *State, windowID string) {
	if !s.ZOrder.Deactivate(windowID) {
		return
	}
	if top, ok := s.Registry.topVisible(); ok {
		s.ZOrder.Activate(top.ID)
	}
}

// ============================================================================
// Focus / Z-order operations
// ============================================================================

// Focus raises a visible window to the top and makes it the active one
func (m *Manager) Focus(windowID string) bool {
	return m.mutate("focus", func(s *State) bool {
		win, ok := s.Registry.Window(windowID)
		if !ok || !win.Visible {
			return false
		}
		s.ZOrder.Focus(win)
		return true
	})
}

// Drag moves a window by its title bar, focusing it first. Fullscreen
// windows cannot be dragged.
func (m *Manager) Drag(windowID string, x, y int) bool {
	return m.mutate("drag", func(s *State) bool {
		win, ok := s.Registry.Window(windowID)
		if !ok || !win.Visible || win.Fullscreen {
			return false
		}
		s.ZOrder.Focus(win)
		win.Position = types.Position{X: x, Y: y}
		return true
	})
}

// ToggleFullscreen flips a visible window's fullscreen flag. Z-order is
// not affected.
func (m *Manager) ToggleFullscreen(windowID string) bool {
	return m.mutate("fullscreen", func(s *State) bool {
		win, ok := s.Registry.Window(windowID)
		if !ok || !win.Visible {
			return false
		}
		win.Fullscreen = !win.Fullscreen
		return true
	})
}

// SetViewport records the viewport width. Crossing into or out of mobile
// width forces every visible window in or out of fullscreen.
func (m *Manager) SetViewport(width int) bool {
	return m.mutate("viewport", func(s *State) bool {
		if width <= 0 {
			return false
		}
		s.Viewport = width
		mobile := m.mobileLocked(s)
		for _, w := range s.Registry.windows {
			if w.Visible {
				w.Fullscreen = mobile
			}
		}
		return true
	})
}

func (m *Manager) mobileLocked(s *State) bool {
	return s.Viewport > 0 && s.Viewport <= m.cfg.MobileBreakpoint
}

// ============================================================================
// Taskbar / dock / start menu
// ============================================================================

// ClickTaskbar opens the entry's window if it is hidden, otherwise focuses it
func (m *Manager) ClickTaskbar(windowID string) bool {
	return m.mutate("taskbar_click", func(s *State) bool {
		if !s.Taskbar.Has(windowID) {
			return false
		}
		win, ok := s.Registry.Window(windowID)
		if !ok {
			return false
		}
		if win.Visible {
			s.ZOrder.Focus(win)
			return true
		}
		return m.openLocked(s, win.AppID)
	})
}

// ClickRecent opens an app from the dock's recent section
func (m *Manager) ClickRecent(appID string) bool {
	return m.mutate("recent_click", func(s *State) bool {
		if !s.Recent.Contains(appID) {
			return false
		}
		return m.openLocked(s, appID)
	})
}

// ToggleStartMenu opens or closes the start menu
func (m *Manager) ToggleStartMenu() bool {
	return m.mutate("start_toggle", func(s *State) bool {
		s.StartMenuOpen = !s.StartMenuOpen
		return true
	})
}

// LaunchFromStart opens windowID and closes the start menu
func (m *Manager) LaunchFromStart(windowID string) bool {
	return m.mutate("start_launch", func(s *State) bool {
		app, ok := s.Registry.AppOf(windowID)
		if !ok {
			return false
		}
		s.StartMenuOpen = false
		return m.openLocked(s, app.ID)
	})
}

// ClickDesktop handles a click on empty space: the start menu closes and
// the context menu is dismissed
func (m *Manager) ClickDesktop() bool {
	dismissed := false
	changed := m.mutate("desktop_click", func(s *State) bool {
		wasOpen := s.StartMenuOpen
		s.StartMenuOpen = false
		dismissed = s.Menu.Dismiss()
		return wasOpen || dismissed
	})
	if dismissed {
		m.metrics.RecordContextMenu("dismissed")
	}
	return changed
}

// ============================================================================
// Context menu
// ============================================================================

// ShowContextMenu raises the menu for target (right-click)
func (m *Manager) ShowContextMenu(target types.ContextTarget, x, y int) bool {
	changed := m.mutate("context_show", func(s *State) bool {
		if !target.Kind.Valid() {
			return false
		}
		s.Menu.disarm()
		s.Menu.Show(target, m.clampMenuLocked(s, x), y)
		return true
	})
	if changed {
		m.metrics.RecordContextMenu("shown")
	}
	return changed
}

// DismissContextMenu returns the menu to idle and clears its target
func (m *Manager) DismissContextMenu(reason types.DismissReason) bool {
	changed := m.mutate("context_dismiss", func(s *State) bool {
		return s.Menu.Dismiss()
	})
	if changed {
		m.metrics.RecordContextMenu("dismissed")
		m.logger.Debug("Context menu dismissed", zap.String("reason", string(reason)))
	}
	return changed
}

// ContextAction performs action on the menu's target and dismisses the
// menu. A target whose window no longer resolves is dismissed silently.
func (m *Manager) ContextAction(action types.Action) bool {
	outcome := ""
	changed := m.mutate("context_action", func(s *State) bool {
		target, ok := s.Menu.Target()
		if !ok || !action.Valid() {
			return false
		}

		win, ok := resolveTarget(s.Registry, target)
		if !ok {
			s.Menu.Dismiss()
			outcome = "unresolved"
			return true
		}

		switch action {
		case types.ActionOpen:
			m.openLocked(s, win.AppID)
		case types.ActionHide:
			m.minimizeLocked(s, win.AppID)
		case types.ActionClose:
			m.closeLocked(s, win.AppID)
		}
		s.Menu.Dismiss()
		outcome = string(action)
		return true
	})
	if outcome != "" {
		m.metrics.RecordContextMenu(outcome)
	}
	return changed && outcome != "unresolved"
}

// clampMenuLocked keeps the menu inside the last reported viewport
func (m *Manager) clampMenuLocked(s *State, x int) int {
	if s.Viewport <= 0 || x+m.cfg.MenuWidth <= s.Viewport {
		return x
	}
	return max(s.Viewport-m.cfg.MenuWidth-menuMargin, 0)
}

// resolveTarget finds the window a context target refers to, preferring the
// explicit window ID and falling back to the app's window
func resolveTarget(r *Registry, t types.ContextTarget) (*types.Window, bool) {
	if t.WindowID != "" {
		if win, ok := r.Window(t.WindowID); ok {
			return win, true
		}
	}
	if t.AppID != "" {
		return r.WindowOf(t.AppID)
	}
	return nil, false
}

// TouchStart begins a long press on target. If the touch is held for the
// configured duration without moving or ending, the menu is shown.
func (m *Manager) TouchStart(target types.ContextTarget, x, y int) bool {
	if !target.Kind.Valid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	menu := m.state.Menu
	menu.disarm()

	// seq is written under mu before the callback can acquire it
	var seq uint64
	h := m.scheduler.After(m.cfg.LongPress, func() {
		m.firePress(&seq, target, x, y)
	})
	seq = menu.arm(h)
	return true
}

// TouchMove cancels a pending long press
func (m *Manager) TouchMove() bool {
	return m.cancelPress()
}

// TouchEnd cancels a pending long press. It reports whether a press was
// still pending, i.e. the touch was shorter than the long-press threshold.
func (m *Manager) TouchEnd() bool {
	return m.cancelPress()
}

func (m *Manager) cancelPress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Menu.disarm()
}

func (m *Manager) firePress(seq *uint64, target types.ContextTarget, x, y int) {
	changed := m.mutate("context_show", func(s *State) bool {
		if !s.Menu.claim(*seq) {
			return false
		}
		s.Menu.Show(target, m.clampMenuLocked(s, x), y)
		return true
	})
	if changed {
		m.metrics.RecordContextMenu("shown")
	}
}

// ============================================================================
// Power hooks
// ============================================================================

// HideAll hides every visible window (standby). The recent list keeps
// its order.
func (m *Manager) HideAll() bool {
	return m.mutate("hide_all", func(s *State) bool {
		changed := false
		for _, app := range s.Registry.Apps() {
			if app.State == types.StateOpen && m.hideLocked(s, app.ID) {
				changed = true
			}
		}
		return changed
	})
}

// Reset closes every app and clears the taskbar, recent list and menus
// (reboot). The z-order counter keeps counting.
func (m *Manager) Reset() bool {
	return m.mutate("reset", func(s *State) bool {
		for _, app := range s.Registry.apps {
			app.State = types.StateClosed
		}
		for _, win := range s.Registry.windows {
			win.Visible = false
			s.ZOrder.Deactivate(win.ID)
		}
		s.Recent.Clear()
		s.Taskbar.Clear()
		s.Menu.disarm()
		s.Menu.Dismiss()
		s.StartMenuOpen = false
		return true
	})
}

// ============================================================================
// Queries
// ============================================================================

// Snapshot returns the full renderable state
func (m *Manager) Snapshot() types.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Taskbar returns the current taskbar entries
func (m *Manager) Taskbar() []types.TaskbarEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Taskbar.Entries()
}

// Recent renders the dock's recent section
func (m *Manager) Recent() []types.RecentItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recentLocked()
}

// ContextMenu returns the renderable context menu state
func (m *Manager) ContextMenu() types.ContextMenu {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Menu.View()
}

// Stats returns manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	open, hidden := m.state.Registry.counts()
	stats := types.Stats{
		TotalApps:  len(m.state.Registry.apps),
		OpenApps:   open,
		HiddenApps: hidden,
		TopZOrder:  m.state.ZOrder.Top(),
	}
	if active := m.state.ZOrder.Active(); active != "" {
		stats.ActiveWindow = &active
	}
	return stats
}

func (m *Manager) recentLocked() []types.RecentItem {
	ids := m.state.Recent.List()
	items := make([]types.RecentItem, 0, len(ids))
	for _, appID := range ids {
		item := types.RecentItem{
			AppID:  appID,
			Icon:   m.labels.Icon(appID),
			Hidden: m.state.Registry.State(appID) == types.StateHidden,
		}
		if win, ok := m.state.Registry.WindowOf(appID); ok {
			item.WindowID = win.ID
		}
		items = append(items, item)
	}
	return items
}

func (m *Manager) snapshotLocked() types.Snapshot {
	active := m.state.ZOrder.Active()
	windows := m.state.Registry.Windows()
	for i := range windows {
		windows[i].Active = windows[i].ID == active
	}

	return types.Snapshot{
		Apps:          m.state.Registry.Apps(),
		Windows:       windows,
		Taskbar:       m.state.Taskbar.Entries(),
		Recent:        m.recentLocked(),
		ActiveWindow:  active,
		ContextMenu:   m.state.Menu.View(),
		StartMenuOpen: m.state.StartMenuOpen,
		Mobile:        m.mobileLocked(m.state),
	}
}
