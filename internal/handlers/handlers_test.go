package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/hub"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/gorilla/websocket"
)

func TestHealthCheck(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]handlers.HealthCheck
		wantCode   int
		wantStatus string
	}{
		{"all healthy", map[string]handlers.HealthCheck{"redis": ok, "postgres": ok}, http.StatusOK, "healthy"},
		{"one down", map[string]handlers.HealthCheck{"redis": ok, "postgres": down}, http.StatusServiceUnavailable, "unhealthy"},
		{"no dependencies", nil, http.StatusOK, "healthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHandler(tt.checks, nil, nil)
			w := httptest.NewRecorder()
			h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			var resp map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["status"] != tt.wantStatus {
				t.Errorf("expected status %q, got %v", tt.wantStatus, resp["status"])
			}
			if resp["service"] != "football-sim" {
				t.Errorf("expected service football-sim, got %v", resp["service"])
			}
		})
	}
}

func TestHandleMetrics(t *testing.T) {
	h := handlers.NewHandler(nil, func() map[string]interface{} {
		return map[string]interface{}{"active_clients": 3}
	}, nil)
	w := httptest.NewRecorder()
	h.HandleMetrics(w, httptest.NewRequest("GET", "/metrics", nil))

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["active_clients"] != float64(3) {
		t.Errorf("expected 3 active clients, got %v", resp["active_clients"])
	}
}

func TestWebSocket_ReceivesGameFinal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := hub.NewHub(nil)
	go h.Run(ctx)

	ws := handlers.NewWebSocketHandler(ctx, h, nil, nil)
	server := httptest.NewServer(http.HandlerFunc(ws.HandleWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for h.GetClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.Broadcast(&models.BoxScore{Game: &models.Game{GameID: "g-9", HomeTeam: "Home", AwayTeam: "Away"}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload models.BoxScore `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	if msg.Type != models.MessageTypeGameFinal || msg.Payload.Game.GameID != "g-9" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestWebSocket_RejectsUnknownOrigin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := hub.NewHub(nil)
	go h.Run(ctx)

	ws := handlers.NewWebSocketHandler(ctx, h, []string{"http://localhost:3000"}, nil)
	server := httptest.NewServer(http.HandlerFunc(ws.HandleWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"Origin": []string{"http://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Error("expected dial from unknown origin to fail")
	}

	header = http.Header{"Origin": []string{"http://localhost:3000"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("expected allowed origin to connect: %v", err)
	}
	conn.Close()
}
