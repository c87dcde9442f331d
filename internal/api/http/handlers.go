package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/power"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/wallpaper"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/browser"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/files"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/music"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/utils"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Deps are the components served over HTTP
type Deps struct {
	Shell     *shell.Manager
	Power     *power.Sequencer
	Catalog   *catalog.Catalog
	Wallpaper wallpaper.Wallpaper
	Terminal  *terminal.Provider
	Files     *files.Provider
	Music     *music.Player
	Browser   *browser.Provider
	Metrics   *monitoring.Metrics
	Logger    *zap.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	shell     *shell.Manager
	power     *power.Sequencer
	catalog   *catalog.Catalog
	wallpaper wallpaper.Wallpaper
	terminal  *terminal.Provider
	files     *files.Provider
	music     *music.Player
	browser   *browser.Provider
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(deps Deps) *Handlers {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	if deps.Wallpaper.Background == "" {
		deps.Wallpaper = wallpaper.Fallback()
	}
	return &Handlers{
		shell:     deps.Shell,
		power:     deps.Power,
		catalog:   cat,
		wallpaper: deps.Wallpaper,
		terminal:  deps.Terminal,
		files:     deps.Files,
		music:     deps.Music,
		browser:   deps.Browser,
		metrics:   deps.Metrics,
		logger:    logger,
	}
}

// Root returns service info
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "NamixOS Shell",
		"version": Version,
	})
}

// Health returns lifecycle counters and request metrics
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"stats":   h.shell.Stats(),
		"metrics": h.metrics.Snapshot(),
	})
}

// Shell returns the full shell snapshot
func (h *Handlers) Shell(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.Snapshot())
}

// ListApps returns every app with its lifecycle state
func (h *Handlers) ListApps(c *gin.Context) {
	snap := h.shell.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"apps":  snap.Apps,
		"stats": h.shell.Stats(),
	})
}

// GetApp returns one app and its window
func (h *Handlers) GetApp(c *gin.Context) {
	appID, ok := idParam(c, "id")
	if !ok {
		return
	}
	app, ok := h.shell.App(appID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
		return
	}

	resp := gin.H{
		"app":   app,
		"title": h.catalog.Title(appID),
		"icon":  h.catalog.Icon(appID),
	}
	if win, ok := h.shell.Window(app.WindowID); ok {
		resp["window"] = win
	}
	c.JSON(http.StatusOK, resp)
}

// idParam reads and validates an ID path parameter, replying 400 on error
func idParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if err := utils.ValidateID(value, name, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return value, true
}

// appOp adapts an app-scoped lifecycle operation
func (h *Handlers) appOp(op func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		appID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if _, ok := h.shell.App(appID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "app not found"})
			return
		}
		success := op(appID)
		c.JSON(http.StatusOK, gin.H{
			"success": success,
			"app_id":  appID,
			"state":   h.shell.State(appID),
		})
	}
}

// windowOp adapts a window-scoped operation
func (h *Handlers) windowOp(op func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if _, ok := h.shell.Window(windowID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
			return
		}
		h.windowResult(c, windowID, op(windowID))
	}
}

func (h *Handlers) windowResult(c *gin.Context, windowID string, success bool) {
	win, _ := h.shell.Window(windowID)
	c.JSON(http.StatusOK, gin.H{
		"success":   success,
		"window_id": windowID,
		"window":    win,
	})
}

// OpenApp opens or restores an app
func (h *Handlers) OpenApp(c *gin.Context) { h.appOp(h.shell.Open)(c) }

// CloseApp closes an app
func (h *Handlers) CloseApp(c *gin.Context) { h.appOp(h.shell.Close)(c) }

// MinimizeApp hides an open app
func (h *Handlers) MinimizeApp(c *gin.Context) { h.appOp(h.shell.Minimize)(c) }

// OpenWindow opens the app owning a window
func (h *Handlers) OpenWindow(c *gin.Context) { h.windowOp(h.shell.OpenWindow)(c) }

// CloseWindow closes the app owning a window
func (h *Handlers) CloseWindow(c *gin.Context) { h.windowOp(h.shell.CloseWindow)(c) }

// MinimizeWindow hides the app owning a window
func (h *Handlers) MinimizeWindow(c *gin.Context) { h.windowOp(h.shell.MinimizeWindow)(c) }

// FocusWindow raises a visible window
func (h *Handlers) FocusWindow(c *gin.Context) { h.windowOp(h.shell.Focus)(c) }

// ToggleFullscreen flips a window's fullscreen flag
func (h *Handlers) ToggleFullscreen(c *gin.Context) { h.windowOp(h.shell.ToggleFullscreen)(c) }

// DragWindow moves a window
func (h *Handlers) DragWindow(c *gin.Context) {
	windowID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req types.DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := h.shell.Window(windowID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	h.windowResult(c, windowID, h.shell.Drag(windowID, req.X, req.Y))
}

// Taskbar returns the taskbar entries in insertion order
func (h *Handlers) Taskbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.shell.Taskbar()})
}

// ClickTaskbar restores a hidden entry or focuses a visible one
func (h *Handlers) ClickTaskbar(c *gin.Context) {
	windowID, ok := idParam(c, "window")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": h.shell.ClickTaskbar(windowID),
		"entries": h.shell.Taskbar(),
	})
}

// Recent returns the dock's recent-apps section
func (h *Handlers) Recent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.shell.Recent()})
}

// ClickRecent opens the clicked recent app
func (h *Handlers) ClickRecent(c *gin.Context) {
	appID, ok := idParam(c, "app")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": h.shell.ClickRecent(appID),
		"items":   h.shell.Recent(),
	})
}

// ShowContextMenu opens the context menu over a target
func (h *Handlers) ShowContextMenu(c *gin.Context) {
	var req types.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target kind"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": h.shell.ShowContextMenu(req.Target(), req.X, req.Y),
		"menu":    h.shell.ContextMenu(),
	})
}

// ContextAction applies a menu button to the menu's target
func (h *Handlers) ContextAction(c *gin.Context) {
	var req types.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Action.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": h.shell.ContextAction(req.Action),
		"menu":    h.shell.ContextMenu(),
	})
}

// DismissContextMenu hides the context menu
func (h *Handlers) DismissContextMenu(c *gin.Context) {
	var req types.DismissRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Reason == "" {
		req.Reason = types.DismissClick
	}
	c.JSON(http.StatusOK, gin.H{
		"success": h.shell.DismissContextMenu(req.Reason),
		"menu":    h.shell.ContextMenu(),
	})
}

// TouchStart arms the long-press timer
func (h *Handlers) TouchStart(c *gin.Context) {
	var req types.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target kind"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": h.shell.TouchStart(req.Target(), req.X, req.Y)})
}

// TouchMove cancels a pending long press
func (h *Handlers) TouchMove(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cancelled": h.shell.TouchMove()})
}

// TouchEnd cancels a pending long press
func (h *Handlers) TouchEnd(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cancelled": h.shell.TouchEnd()})
}

// ToggleStartMenu opens or closes the start menu
func (h *Handlers) ToggleStartMenu(c *gin.Context) {
	h.shell.ToggleStartMenu()
	c.JSON(http.StatusOK, gin.H{"open": h.shell.Snapshot().StartMenuOpen})
}

// LaunchFromStart opens a window from the start menu
func (h *Handlers) LaunchFromStart(c *gin.Context) {
	windowID, ok := idParam(c, "window")
	if !ok {
		return
	}
	if _, ok := h.shell.Window(windowID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	h.windowResult(c, windowID, h.shell.LaunchFromStart(windowID))
}

// ClickDesktop dismisses menus
func (h *Handlers) ClickDesktop(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": h.shell.ClickDesktop()})
}

// SetViewport records the viewport width
func (h *Handlers) SetViewport(c *gin.Context) {
	var req types.ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.shell.SetViewport(req.Width)
	c.JSON(http.StatusOK, gin.H{"width": req.Width, "mobile": h.shell.Snapshot().Mobile})
}

// Power returns the current power screen
func (h *Handlers) Power(c *gin.Context) {
	c.JSON(http.StatusOK, h.power.Status())
}

// Standby blanks the screen from the desktop
func (h *Handlers) Standby(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": h.power.Standby(), "status": h.power.Status()})
}

// Wake resumes from standby
func (h *Handlers) Wake(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": h.power.Wake(), "status": h.power.Status()})
}

// Reboot resets the shell and replays the boot sequence
func (h *Handlers) Reboot(c *gin.Context) {
	h.power.Reboot()
	c.JSON(http.StatusOK, gin.H{"success": true, "status": h.power.Status()})
}

// Wallpaper returns the desktop background resolved at startup
func (h *Handlers) Wallpaper(c *gin.Context) {
	c.JSON(http.StatusOK, h.wallpaper)
}

// Catalog returns the app catalog and its launch surfaces
func (h *Handlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":    h.catalog.Apps(),
		"desktop": h.catalog.Surface("desktop"),
		"dock":    h.catalog.Surface("dock"),
		"start":   h.catalog.Surface("start"),
	})
}

// Exec runs a fake terminal command
func (h *Handlers) Exec(c *gin.Context) {
	var req types.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateString(req.Command, "command", 0, utils.MaxCommandLength, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.terminal.Exec(req.Command))
}

// Terminal returns the transcript and working folder
func (h *Handlers) Terminal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cwd":        h.terminal.Cwd(),
		"transcript": h.terminal.Transcript(),
	})
}

// Folders lists the file manager's folders
func (h *Handlers) Folders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"folders": h.files.Folders()})
}

// ListFolder returns one folder's contents
func (h *Handlers) ListFolder(c *gin.Context) {
	folder, ok := idParam(c, "folder")
	if !ok {
		return
	}
	listing, err := h.files.List(folder)
	if err != nil {
		if errors.Is(err, files.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SearchFiles matches paths against a glob
func (h *Handlers) SearchFiles(c *gin.Context) {
	pattern := c.Query("glob")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "glob is required"})
		return
	}
	matches, err := h.files.Glob(pattern)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"glob": pattern, "matches": matches})
}

// Music returns the player state
func (h *Handlers) Music(c *gin.Context) {
	c.JSON(http.StatusOK, h.music.Status())
}

// ToggleMusic flips play/pause
func (h *Handlers) ToggleMusic(c *gin.Context) {
	c.JSON(http.StatusOK, h.music.Toggle())
}

// Navigate asks the browser app to load a URL
func (h *Handlers) Navigate(c *gin.Context) {
	var req types.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateString(req.URL, "url", 0, utils.MaxURLLength, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.browser.Navigate(req.URL))
}
