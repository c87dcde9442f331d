package ws

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The desktop may be served from any host
	},
}

// Terminal runs fake terminal commands
type Terminal interface {
	Exec(line string) terminal.Result
}

// Handler manages WebSocket connections
type Handler struct {
	shell    *shell.Manager
	terminal Terminal
	hub      *Hub
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *shell.Manager, term Terminal, hub *Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		shell:    manager,
		terminal: term,
		hub:      hub,
		logger:   logger,
		metrics:  hub.metrics,
	}
}

// HandleConnection upgrades the request and serves the client until it
// disconnects
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(conn)
	h.hub.Register(client)
	go client.writePump()

	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	snap := h.shell.Snapshot()
	welcome := newEvent("snapshot")
	welcome.Snapshot = &snap
	h.hub.Send(client, welcome)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.hub.Send(client, errorEvent("invalid message"))
			continue
		}

		h.metrics.RecordWSMessage("in", msg.Type)
		h.hub.Send(client, h.Dispatch(msg))
	}
}

// Dispatch applies one inbound command and returns the reply
func (h *Handler) Dispatch(msg types.WSMessage) Event {
	m := h.shell

	if err := h.checkTargets(msg); err != "" {
		return errorEvent(err)
	}

	var changed bool
	switch msg.Type {
	case "ping":
		return newEvent("pong")
	case "terminal":
		if h.terminal == nil {
			return errorEvent("terminal unavailable")
		}
		res := h.terminal.Exec(msg.Command)
		evt := newEvent("terminal")
		evt.Terminal = &res
		return evt
	case "open":
		changed = byWindowOrApp(msg, m.OpenWindow, m.Open)
	case "close":
		changed = byWindowOrApp(msg, m.CloseWindow, m.Close)
	case "minimize":
		changed = byWindowOrApp(msg, m.MinimizeWindow, m.Minimize)
	case "focus":
		changed = m.Focus(msg.WindowID)
	case "fullscreen":
		changed = m.ToggleFullscreen(msg.WindowID)
	case "drag":
		changed = m.Drag(msg.WindowID, msg.X, msg.Y)
	case "taskbar_click":
		changed = m.ClickTaskbar(msg.WindowID)
	case "recent_click":
		changed = m.ClickRecent(msg.AppID)
	case "context_show":
		changed = m.ShowContextMenu(msg.Target(), msg.X, msg.Y)
	case "context_action":
		changed = m.ContextAction(msg.Action)
	case "context_dismiss":
		reason := msg.Reason
		if reason == "" {
			reason = types.DismissClick
		}
		changed = m.DismissContextMenu(reason)
	case "touch_start":
		changed = m.TouchStart(msg.Target(), msg.X, msg.Y)
	case "touch_move":
		changed = m.TouchMove()
	case "touch_end":
		changed = m.TouchEnd()
	case "start_toggle":
		changed = m.ToggleStartMenu()
	case "start_launch":
		changed = m.LaunchFromStart(msg.WindowID)
	case "desktop_click":
		changed = m.ClickDesktop()
	case "viewport":
		changed = m.SetViewport(msg.Width)
	default:
		return errorEvent("unknown message type")
	}

	evt := newEvent("ack")
	evt.Op = msg.Type
	evt.Changed = &changed
	return evt
}

// checkTargets validates the IDs a command names and requires them to be
// registered, so inbound messages never create registry entries
func (h *Handler) checkTargets(msg types.WSMessage) string {
	switch msg.Type {
	case "open", "close", "minimize":
		if msg.WindowID != "" {
			return h.checkWindow(msg.WindowID)
		}
		return h.checkApp(msg.AppID)
	case "focus", "fullscreen", "drag", "taskbar_click", "start_launch":
		return h.checkWindow(msg.WindowID)
	case "recent_click":
		return h.checkApp(msg.AppID)
	case "context_show", "touch_start":
		if !msg.Kind.Valid() {
			return "invalid target kind"
		}
		if err := utils.ValidateID(msg.AppID, "app_id", false); err != nil {
			return err.Error()
		}
		if err := utils.ValidateID(msg.WindowID, "window_id", false); err != nil {
			return err.Error()
		}
	case "context_action":
		if !msg.Action.Valid() {
			return "invalid action"
		}
	case "terminal":
		if err := utils.ValidateString(msg.Command, "command", 0, utils.MaxCommandLength, false); err != nil {
			return err.Error()
		}
	}
	return ""
}

func (h *Handler) checkApp(appID string) string {
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		return err.Error()
	}
	if _, ok := h.shell.App(appID); !ok {
		return "app not found"
	}
	return ""
}

func (h *Handler) checkWindow(windowID string) string {
	if err := utils.ValidateID(windowID, "window_id", true); err != nil {
		return err.Error()
	}
	if _, ok := h.shell.Window(windowID); !ok {
		return "window not found"
	}
	return ""
}

func byWindowOrApp(msg types.WSMessage, byWindow, byApp func(string) bool) bool {
	if msg.WindowID != "" {
		return byWindow(msg.WindowID)
	}
	return byApp(msg.AppID)
}

func errorEvent(message string) Event {
	evt := newEvent("error")
	evt.Error = message
	return evt
}
