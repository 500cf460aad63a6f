package handlers

import (
	"context"
	"net/http"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/client"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/hub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler upgrades subscribers and registers them with the hub
type WebSocketHandler struct {
	hub      *hub.Hub
	ctx      context.Context
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler creates a handler whose clients live until ctx ends.
// An empty origins list, or one containing "*", accepts any origin.
func NewWebSocketHandler(ctx context.Context, h *hub.Hub, origins []string, logger *zap.Logger) *WebSocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHandler{
		hub: h,
		ctx: ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		logger: logger,
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
// GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := client.NewClient(uuid.New().String(), conn, h.hub, h.logger)
	h.hub.Register(c)

	// Pumps use the handler context; the request context ends with this call
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}
