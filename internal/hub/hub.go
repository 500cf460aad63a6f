package hub

import (
	"context"
	"sync"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/client"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"go.uber.org/zap"
)

// BroadcastBufferSize is how many finished games may queue before drops
const BroadcastBufferSize = 1000

// Hub maintains the set of active clients and fans finished games out to them
type Hub struct {
	clients   map[*client.Client]bool
	clientsMu sync.RWMutex

	// Inbound games from the stream consumer
	broadcast chan *models.BoxScore

	register   chan *client.Client
	unregister chan *client.Client

	logger *zap.Logger

	totalConnections int64
	totalMessages    int64
	droppedMessages  int64
	metricsMu        sync.Mutex
}

// NewHub creates a new Hub instance
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*client.Client]bool),
		broadcast:  make(chan *models.BoxScore, BroadcastBufferSize),
		register:   make(chan *client.Client),
		unregister: make(chan *client.Client),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("hub started")

	go h.reportMetrics(ctx)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case box := <-h.broadcast:
			h.broadcastGame(box)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *client.Client) {
	h.register <- c
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *client.Client) {
	h.unregister <- c
}

// Broadcast queues a finished game for every matching client.
// Returns false when the queue is full and the game was dropped.
func (h *Hub) Broadcast(box *models.BoxScore) bool {
	select {
	case h.broadcast <- box:
		return true
	default:
		h.logger.Warn("broadcast buffer full, dropping game")
		h.metricsMu.Lock()
		h.droppedMessages++
		h.metricsMu.Unlock()
		return false
	}
}

func (h *Hub) registerClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	h.logger.Info("client connected", zap.String("client_id", c.ID), zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		h.logger.Info("client disconnected", zap.String("client_id", c.ID), zap.Int("total", len(h.clients)))
	}
}

// broadcastGame sends a game to every client whose filter accepts it.
// Slow clients with full buffers are disconnected.
func (h *Hub) broadcastGame(box *models.BoxScore) {
	if box == nil {
		return
	}

	h.clientsMu.RLock()
	clients := make([]*client.Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := models.ServerMessage{
		Type:      models.MessageTypeGameFinal,
		Payload:   box,
		Timestamp: time.Now(),
	}

	sent, dropped := 0, 0
	for _, c := range clients {
		if !c.MatchesFilter(box.Game) {
			continue
		}
		if c.TrySend(message) {
			sent++
			continue
		}
		dropped++
		h.logger.Warn("client buffer full, disconnecting", zap.String("client_id", c.ID))
		go h.Unregister(c)
	}

	h.metricsMu.Lock()
	if sent > 0 {
		h.totalMessages++
	}
	h.droppedMessages += int64(dropped)
	h.metricsMu.Unlock()
}

// GetMetrics returns hub metrics
func (h *Hub) GetMetrics() map[string]interface{} {
	h.clientsMu.RLock()
	activeClients := len(h.clients)
	h.clientsMu.RUnlock()

	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()

	return map[string]interface{}{
		"active_clients":     activeClients,
		"total_connections":  h.totalConnections,
		"total_messages":     h.totalMessages,
		"dropped_messages":   h.droppedMessages,
		"broadcast_capacity": cap(h.broadcast),
		"broadcast_usage":    len(h.broadcast),
	}
}

// GetClientCount returns the number of active clients
func (h *Hub) GetClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.Info("shutting down hub", zap.Int("active_clients", len(h.clients)))

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}

func (h *Hub) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := h.GetMetrics()
			h.logger.Info("hub metrics",
				zap.Any("clients", m["active_clients"]),
				zap.Any("total_connections", m["total_connections"]),
				zap.Any("messages", m["total_messages"]),
				zap.Any("dropped", m["dropped_messages"]))
		}
	}
}
