package shell

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/schedule"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

func newTestManager(t *testing.T) (*Manager, *schedule.Manual) {
	t.Helper()

	clock := schedule.NewManual()
	cfg := DefaultConfig()
	m := NewManager(NewState(cfg), cfg).WithScheduler(clock)
	for _, app := range []string{"terminal", "files", "music"} {
		require.True(t, m.Register(app, "win-"+app))
	}
	return m, clock
}

func taskbarHas(m *Manager, windowID string) bool {
	for _, e := range m.Taskbar() {
		if e.WindowID == windowID {
			return true
		}
	}
	return false
}

func recentItem(m *Manager, appID string) (types.RecentItem, bool) {
	for _, item := range m.Recent() {
		if item.AppID == appID {
			return item, true
		}
	}
	return types.RecentItem{}, false
}

func appState(snap types.Snapshot, appID string) types.AppState {
	for _, app := range snap.Apps {
		if app.ID == appID {
			return app.State
		}
	}
	return types.StateClosed
}

func TestOpenThenCloseIsClosed(t *testing.T) {
	for _, app := range []string{"terminal", "files", "music"} {
		t.Run(app, func(t *testing.T) {
			m, _ := newTestManager(t)

			require.True(t, m.Open(app))
			assert.Equal(t, types.StateOpen, m.State(app))
			assert.True(t, taskbarHas(m, "win-"+app))

			require.True(t, m.Close(app))
			assert.Equal(t, types.StateClosed, m.State(app))
			assert.False(t, taskbarHas(m, "win-"+app))
			_, inRecent := recentItem(m, app)
			assert.False(t, inRecent)
		})
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Open("terminal"))
	first, _ := m.Window("win-terminal")
	require.True(t, m.Open("terminal"))
	second, _ := m.Window("win-terminal")

	assert.Len(t, m.Taskbar(), 1)
	assert.Greater(t, second.ZOrder, first.ZOrder, "re-open refocuses")
	assert.True(t, second.Active)
}

func TestUnknownTargetsAreNoops(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.Open("ghost"), "app without a window")
	assert.Equal(t, types.StateClosed, m.State("ghost"))
	app, ok := m.App("ghost")
	require.True(t, ok, "open creates the entry lazily")
	assert.Equal(t, types.StateClosed, app.State)

	assert.False(t, m.OpenWindow("win-ghost"))
	assert.False(t, m.CloseWindow("win-ghost"))
	assert.False(t, m.MinimizeWindow("win-ghost"))
	assert.False(t, m.Focus("win-ghost"))
	assert.False(t, m.Drag("win-ghost", 1, 1))
	assert.False(t, m.ToggleFullscreen("win-ghost"))
	assert.False(t, m.Close("nobody"))
	assert.Empty(t, m.Taskbar())
}

func TestMinimizeThenCloseClearsIndicators(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Open("files"))
	require.True(t, m.Minimize("files"))

	assert.Equal(t, types.StateHidden, m.State("files"))
	assert.True(t, taskbarHas(m, "win-files"), "minimized apps keep their taskbar entry")
	win, _ := m.Window("win-files")
	assert.False(t, win.Visible)

	item, ok := recentItem(m, "files")
	require.True(t, ok)
	assert.True(t, item.Hidden)
	assert.Equal(t, "win-files", item.WindowID)

	require.True(t, m.Close("files"))
	assert.False(t, taskbarHas(m, "win-files"))
	_, ok = recentItem(m, "files")
	assert.False(t, ok)
}

func TestMinimizeClosedAppIsNoop(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.Minimize("terminal"))
	assert.Equal(t, types.StateClosed, m.State("terminal"))
	assert.Empty(t, m.Recent())
	assert.Empty(t, m.Taskbar())
}

func TestCloseAlreadyClosed(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Open("music"))
	require.True(t, m.Close("music"))
	assert.False(t, m.Close("music"))
	assert.Equal(t, types.StateClosed, m.State("music"))
}

func TestFocusOrdering(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))

	var values []int
	for _, id := range []string{"win-terminal", "win-files", "win-terminal"} {
		require.True(t, m.Focus(id))
		w, _ := m.Window(id)
		values = append(values, w.ZOrder)
	}

	assert.Less(t, values[0], values[1])
	assert.Less(t, values[1], values[2])

	term, _ := m.Window("win-terminal")
	files, _ := m.Window("win-files")
	assert.Greater(t, term.ZOrder, files.ZOrder)
	assert.True(t, term.Active)
	assert.False(t, files.Active)
	assert.Equal(t, "win-terminal", m.Snapshot().ActiveWindow)
}

func TestFocusHiddenWindowIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Minimize("terminal"))

	assert.False(t, m.Focus("win-terminal"))
}

func TestClosingActiveHandsFocusToTopVisible(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("music"))
	require.True(t, m.Open("files"))
	require.True(t, m.Focus("win-music"))

	before, _ := m.Window("win-files")
	require.True(t, m.Close("music"))

	files, _ := m.Window("win-files")
	assert.True(t, files.Active)
	assert.Equal(t, before.ZOrder, files.ZOrder, "hand-off must not restack")

	require.True(t, m.Minimize("files"))
	assert.Equal(t, "win-terminal", m.Snapshot().ActiveWindow)

	require.True(t, m.Close("terminal"))
	assert.Empty(t, m.Snapshot().ActiveWindow)
	assert.Nil(t, m.Stats().ActiveWindow)
}

func TestDragFocusesAndMoves(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))

	require.True(t, m.Drag("win-terminal", 120, 80))
	term, _ := m.Window("win-terminal")
	files, _ := m.Window("win-files")
	assert.Equal(t, types.Position{X: 120, Y: 80}, term.Position)
	assert.Greater(t, term.ZOrder, files.ZOrder)
	assert.True(t, term.Active)

	require.True(t, m.ToggleFullscreen("win-terminal"))
	assert.False(t, m.Drag("win-terminal", 0, 0), "fullscreen windows stay put")
}

func TestFullscreenKeepsZOrder(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	before, _ := m.Window("win-terminal")

	require.True(t, m.ToggleFullscreen("win-terminal"))
	after, _ := m.Window("win-terminal")
	assert.True(t, after.Fullscreen)
	assert.Equal(t, before.ZOrder, after.ZOrder)

	require.True(t, m.ToggleFullscreen("win-terminal"))
	after, _ = m.Window("win-terminal")
	assert.False(t, after.Fullscreen)
}

func TestTaskbarClick(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.ClickTaskbar("win-terminal"), "no entry for closed app")

	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))
	require.True(t, m.ClickTaskbar("win-terminal"))
	term, _ := m.Window("win-terminal")
	assert.True(t, term.Active)

	require.True(t, m.Minimize("terminal"))
	require.True(t, m.ClickTaskbar("win-terminal"))
	assert.Equal(t, types.StateOpen, m.State("terminal"))
	assert.Len(t, m.Taskbar(), 2)
}

func TestRecentClick(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.ClickRecent("files"))

	require.True(t, m.Open("files"))
	require.True(t, m.Minimize("files"))
	require.True(t, m.ClickRecent("files"))
	assert.Equal(t, types.StateOpen, m.State("files"))
}

func TestRecentEvictionThroughManager(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))
	require.True(t, m.Open("music"))

	var ids []string
	for _, item := range m.Recent() {
		ids = append(ids, item.AppID)
	}
	assert.Equal(t, []string{"music", "files"}, ids)
}

func TestLongPress(t *testing.T) {
	target := types.ContextTarget{Kind: types.TargetDesktopIcon, AppID: "terminal", WindowID: "win-terminal"}

	t.Run("released early never shows", func(t *testing.T) {
		m, clock := newTestManager(t)

		require.True(t, m.TouchStart(target, 5, 5))
		clock.Advance(599 * time.Millisecond)
		assert.True(t, m.TouchEnd(), "press was still pending")

		clock.Advance(time.Second)
		assert.False(t, m.ContextMenu().Visible)
		assert.Zero(t, clock.Pending())
	})

	t.Run("held long enough shows", func(t *testing.T) {
		m, clock := newTestManager(t)

		require.True(t, m.TouchStart(target, 5, 7))
		clock.Advance(DefaultLongPress)

		menu := m.ContextMenu()
		require.True(t, menu.Visible)
		assert.Equal(t, 7, menu.Y)
		require.NotNil(t, menu.Target)
		assert.Equal(t, target, *menu.Target)
		assert.False(t, m.TouchEnd(), "nothing left to cancel")
		assert.True(t, m.ContextMenu().Visible)
	})

	t.Run("movement cancels", func(t *testing.T) {
		m, clock := newTestManager(t)

		require.True(t, m.TouchStart(target, 0, 0))
		clock.Advance(300 * time.Millisecond)
		assert.True(t, m.TouchMove())
		clock.Advance(time.Second)
		assert.False(t, m.ContextMenu().Visible)
	})

	t.Run("restart resets the timer", func(t *testing.T) {
		m, clock := newTestManager(t)

		require.True(t, m.TouchStart(target, 0, 0))
		clock.Advance(400 * time.Millisecond)
		require.True(t, m.TouchStart(target, 1, 1))
		clock.Advance(400 * time.Millisecond)
		assert.False(t, m.ContextMenu().Visible)
		clock.Advance(200 * time.Millisecond)
		assert.True(t, m.ContextMenu().Visible)
		assert.Equal(t, 1, m.ContextMenu().X)
	})

	t.Run("invalid surface", func(t *testing.T) {
		m, clock := newTestManager(t)

		assert.False(t, m.TouchStart(types.ContextTarget{Kind: "wallpaper"}, 0, 0))
		assert.Zero(t, clock.Pending())
	})
}

func TestContextActions(t *testing.T) {
	tests := []struct {
		name   string
		action types.Action
		want   types.AppState
	}{
		{"open", types.ActionOpen, types.StateOpen},
		{"hide", types.ActionHide, types.StateHidden},
		{"close", types.ActionClose, types.StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			require.True(t, m.Open("terminal"))

			target := types.ContextTarget{Kind: types.TargetTaskbar, WindowID: "win-terminal"}
			require.True(t, m.ShowContextMenu(target, 10, 10))
			require.True(t, m.ContextAction(tt.action))

			assert.Equal(t, tt.want, m.State("terminal"))
			assert.False(t, m.ContextMenu().Visible, "every action dismisses")
		})
	}
}

func TestContextActionResolvesByApp(t *testing.T) {
	m, _ := newTestManager(t)

	target := types.ContextTarget{Kind: types.TargetDockMain, AppID: "music"}
	require.True(t, m.ShowContextMenu(target, 0, 0))
	require.True(t, m.ContextAction(types.ActionOpen))
	assert.Equal(t, types.StateOpen, m.State("music"))
}

func TestContextActionUnresolvedDismisses(t *testing.T) {
	m, _ := newTestManager(t)

	target := types.ContextTarget{Kind: types.TargetWindow, WindowID: "win-gone"}
	require.True(t, m.ShowContextMenu(target, 0, 0))

	assert.False(t, m.ContextAction(types.ActionClose))
	assert.False(t, m.ContextMenu().Visible)
	assert.Empty(t, m.Taskbar())
}

func TestContextActionWithoutMenu(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))

	assert.False(t, m.ContextAction(types.ActionClose))
	assert.Equal(t, types.StateOpen, m.State("terminal"))
}

func TestContextMenuDismissPaths(t *testing.T) {
	target := types.ContextTarget{Kind: types.TargetDesktopIcon, AppID: "files"}

	m, _ := newTestManager(t)
	assert.False(t, m.ShowContextMenu(types.ContextTarget{Kind: "bogus"}, 0, 0))

	for _, reason := range []types.DismissReason{types.DismissClick, types.DismissScroll} {
		require.True(t, m.ShowContextMenu(target, 0, 0))
		assert.True(t, m.DismissContextMenu(reason))
		assert.False(t, m.ContextMenu().Visible)
		assert.Nil(t, m.ContextMenu().Target)
	}
	assert.False(t, m.DismissContextMenu(types.DismissClick), "already idle")

	require.True(t, m.ShowContextMenu(target, 0, 0))
	require.True(t, m.ClickDesktop())
	assert.False(t, m.ContextMenu().Visible)
}

func TestContextMenuClampedToViewport(t *testing.T) {
	target := types.ContextTarget{Kind: types.TargetDesktopIcon, AppID: "files"}
	m, clock := newTestManager(t)

	require.True(t, m.ShowContextMenu(target, 990, 40))
	assert.Equal(t, 990, m.ContextMenu().X, "unknown viewport leaves x alone")

	m.SetViewport(1000)
	right := 1000 - DefaultMenuWidth - menuMargin

	tests := []struct {
		x, want int
	}{
		{100, 100},
		{1000 - DefaultMenuWidth, 1000 - DefaultMenuWidth},
		{900, right},
		{5000, right},
	}
	for _, tt := range tests {
		require.True(t, m.ShowContextMenu(target, tt.x, 40))
		menu := m.ContextMenu()
		assert.Equal(t, tt.want, menu.X, "x=%d", tt.x)
		assert.Equal(t, 40, menu.Y)
	}

	require.True(t, m.TouchStart(target, 950, 12))
	clock.Advance(DefaultLongPress)
	assert.Equal(t, right, m.ContextMenu().X, "long press clamps too")

	m.SetViewport(100)
	require.True(t, m.ShowContextMenu(target, 50, 0))
	assert.Equal(t, 0, m.ContextMenu().X, "never negative")
}

func TestStartMenu(t *testing.T) {
	m, _ := newTestManager(t)

	require.True(t, m.ToggleStartMenu())
	assert.True(t, m.Snapshot().StartMenuOpen)

	require.True(t, m.LaunchFromStart("win-music"))
	snap := m.Snapshot()
	assert.False(t, snap.StartMenuOpen)
	assert.Equal(t, "win-music", snap.ActiveWindow)

	require.True(t, m.ToggleStartMenu())
	require.True(t, m.ClickDesktop())
	assert.False(t, m.Snapshot().StartMenuOpen)
	assert.False(t, m.ClickDesktop(), "nothing to close")
}

func TestViewportMobileMode(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))

	require.True(t, m.SetViewport(480))
	assert.True(t, m.Snapshot().Mobile)
	term, _ := m.Window("win-terminal")
	assert.True(t, term.Fullscreen)

	require.True(t, m.Open("files"))
	files, _ := m.Window("win-files")
	assert.True(t, files.Fullscreen, "windows opened on mobile start fullscreen")

	require.True(t, m.SetViewport(1280))
	assert.False(t, m.Snapshot().Mobile)
	term, _ = m.Window("win-terminal")
	assert.False(t, term.Fullscreen)

	assert.False(t, m.SetViewport(0))
}

func TestHideAllAndReset(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))
	require.True(t, m.ToggleStartMenu())

	require.True(t, m.HideAll())
	assert.Equal(t, types.StateHidden, m.State("terminal"))
	assert.Equal(t, types.StateHidden, m.State("files"))
	assert.Len(t, m.Taskbar(), 2)
	assert.False(t, m.HideAll(), "nothing visible left")

	top := m.Stats().TopZOrder
	require.True(t, m.Reset())
	snap := m.Snapshot()
	assert.Empty(t, snap.Taskbar)
	assert.Empty(t, snap.Recent)
	assert.Empty(t, snap.ActiveWindow)
	assert.False(t, snap.StartMenuOpen)
	for _, app := range snap.Apps {
		assert.Equal(t, types.StateClosed, app.State, app.ID)
	}

	require.True(t, m.Open("terminal"))
	assert.Greater(t, m.Stats().TopZOrder, top, "counter is never reset")
}

func TestHideAllKeepsRecentOrder(t *testing.T) {
	m, _ := newTestManager(t)
	for _, app := range []string{"terminal", "files", "music"} {
		require.True(t, m.Open(app))
	}

	recentIDs := func() []string {
		var ids []string
		for _, item := range m.Recent() {
			ids = append(ids, item.AppID)
		}
		return ids
	}
	require.Equal(t, []string{"music", "files"}, recentIDs())

	require.True(t, m.HideAll())
	assert.Equal(t, []string{"music", "files"}, recentIDs())
	for _, item := range m.Recent() {
		assert.True(t, item.Hidden, item.AppID)
	}
	assert.Equal(t, types.StateHidden, m.State("terminal"))
}

func TestListenersReceiveSnapshots(t *testing.T) {
	m, _ := newTestManager(t)

	var snaps []types.Snapshot
	m.Subscribe(ListenerFunc(func(s types.Snapshot) { snaps = append(snaps, s) }))

	require.True(t, m.Open("terminal"))
	assert.False(t, m.Minimize("files"))
	require.True(t, m.Minimize("terminal"))

	require.Len(t, snaps, 2, "no-ops do not notify")
	assert.Equal(t, types.StateOpen, appState(snaps[0], "terminal"))
	assert.Equal(t, types.StateHidden, appState(snaps[1], "terminal"))
}

func TestManagerMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	m, _ := newTestManager(t)
	m.WithMetrics(metrics)

	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))
	require.True(t, m.Minimize("files"))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AppsOpen))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AppsHidden))
}

func TestStats(t *testing.T) {
	m, _ := newTestManager(t)
	require.True(t, m.Open("terminal"))
	require.True(t, m.Open("files"))
	require.True(t, m.Minimize("terminal"))

	stats := m.Stats()
	assert.Equal(t, 3, stats.TotalApps)
	assert.Equal(t, 1, stats.OpenApps)
	assert.Equal(t, 1, stats.HiddenApps)
	require.NotNil(t, stats.ActiveWindow)
	assert.Equal(t, "win-files", *stats.ActiveWindow)
	assert.Equal(t, DefaultZOrderBase+2, stats.TopZOrder)
}

func TestConcurrentOperationsKeepInvariants(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(nil, cfg).WithScheduler(schedule.NewManual())
	apps := make([]string, 8)
	for i := range apps {
		apps[i] = fmt.Sprintf("app%d", i)
		require.True(t, m.Register(apps[i], "win-"+apps[i]))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				app := apps[(i+j)%len(apps)]
				switch j % 4 {
				case 0:
					m.Open(app)
				case 1:
					m.Minimize(app)
				case 2:
					m.Focus("win-" + app)
				case 3:
					m.Close(app)
				}
			}
		}(i)
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.LessOrEqual(t, len(snap.Recent), cfg.RecentCapacity)

	open := 0
	for _, app := range snap.Apps {
		if app.State.IsOpen() {
			open++
		}
	}
	assert.Len(t, snap.Taskbar, open, "one taskbar entry per open app")

	seen := map[int]bool{}
	for _, w := range snap.Windows {
		if w.ZOrder == 0 {
			continue
		}
		assert.False(t, seen[w.ZOrder], "z-order values are unique")
		seen[w.ZOrder] = true
	}
}
