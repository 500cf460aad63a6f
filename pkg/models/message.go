package models

import "time"

// Message types for WebSocket communication
const (
	MessageTypeGameFinal       = "game_final"
	MessageTypeSubscribe       = "subscribe"
	MessageTypeUnsubscribe     = "unsubscribe"
	MessageTypeHeartbeat       = "heartbeat"
	MessageTypeError           = "error"
	MessageTypeConnectionStats = "connection_stats"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SubscriptionFilter represents client subscription preferences
type SubscriptionFilter struct {
	Teams []string `json:"teams,omitempty"` // either side's team name
	Games []string `json:"games,omitempty"` // game IDs
}

// Empty reports whether the filter accepts everything
func (f SubscriptionFilter) Empty() bool {
	return len(f.Teams) == 0 && len(f.Games) == 0
}

// Matches checks a finished game against the filter
func (f SubscriptionFilter) Matches(g *Game) bool {
	if f.Empty() {
		return true
	}
	if g == nil {
		return false
	}
	if len(f.Games) > 0 && !contains(f.Games, g.GameID) {
		return false
	}
	if len(f.Teams) > 0 && !contains(f.Teams, g.HomeTeam) && !contains(f.Teams, g.AwayTeam) {
		return false
	}
	return true
}

// ConnectionStats represents connection statistics
type ConnectionStats struct {
	ClientID          string    `json:"client_id"`
	ConnectedAt       time.Time `json:"connected_at"`
	MessagesSent      int64     `json:"messages_sent"`
	MessagesReceived  int64     `json:"messages_received"`
	LastMessageAt     time.Time `json:"last_message_at"`
	BufferSize        int       `json:"buffer_size"`
	BufferUtilization float64   `json:"buffer_utilization"` // Percentage
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
