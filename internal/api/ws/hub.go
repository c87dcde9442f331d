package ws

import (
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/power"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/music"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/NamixOS/backend/internal/shared/types"
)

// Event is an outbound message
type Event struct {
	Type     string           `json:"type"`
	ID       string           `json:"id"`
	Snapshot *types.Snapshot  `json:"snapshot,omitempty"`
	Power    *power.Status    `json:"power,omitempty"`
	Music    *music.Status    `json:"music,omitempty"`
	Terminal *terminal.Result `json:"terminal,omitempty"`
	Op       string           `json:"op,omitempty"`
	Changed  *bool            `json:"changed,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func newEvent(eventType string) Event {
	return Event{Type: eventType, ID: string(id.NewEventID())}
}

// Hub fans events out to connected clients
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger, metrics *monitoring.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// Register adds a client
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.IncWSConnections()
	h.logger.Info("WebSocket client connected", zap.String("client", c.ID))
}

// Unregister removes a client and closes its queue
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		h.metrics.DecWSConnections()
		h.logger.Info("WebSocket client disconnected", zap.String("client", c.ID))
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues evt for every client. Clients whose queue is full are
// dropped.
func (h *Hub) Broadcast(evt Event) {
	data, err := sonic.Marshal(evt)
	if err != nil {
		h.logger.Error("Failed to encode event", zap.String("type", evt.Type), zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
			h.metrics.RecordWSMessage("out", evt.Type)
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow WebSocket client", zap.String("client", c.ID))
		h.Unregister(c)
	}
}

// Send queues evt for one client. It reports false if the client is gone
// or its queue is full.
func (h *Hub) Send(c *Client, evt Event) bool {
	data, err := sonic.Marshal(evt)
	if err != nil {
		h.logger.Error("Failed to encode event", zap.String("type", evt.Type), zap.Error(err))
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- data:
		h.metrics.RecordWSMessage("out", evt.Type)
		return true
	default:
		return false
	}
}

// ShellChanged broadcasts a shell snapshot
func (h *Hub) ShellChanged(snap types.Snapshot) {
	evt := newEvent("snapshot")
	evt.Snapshot = &snap
	h.Broadcast(evt)
}

// PowerChanged broadcasts the power screen phase
func (h *Hub) PowerChanged(st power.Status) {
	evt := newEvent("power")
	evt.Power = &st
	h.Broadcast(evt)
}

// MusicTick broadcasts the player state
func (h *Hub) MusicTick(st music.Status) {
	evt := newEvent("music")
	evt.Music = &st
	h.Broadcast(evt)
}
