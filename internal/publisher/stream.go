package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/redis/go-redis/v9"
)

// MaxStreamLen caps the stream with an approximate trim
const MaxStreamLen = 10000

// StreamPublisher publishes finished games to a Redis stream
type StreamPublisher struct {
	client    *redis.Client
	streamKey string
}

// NewStreamPublisher creates a new stream publisher for streamKey,
// e.g. games.updates.american_football_sim
func NewStreamPublisher(client *redis.Client, streamKey string) *StreamPublisher {
	return &StreamPublisher{
		client:    client,
		streamKey: streamKey,
	}
}

// Name identifies the publisher as a result sink
func (p *StreamPublisher) Name() string {
	return "redis_stream"
}

// WriteResult publishes a finished box score
func (p *StreamPublisher) WriteResult(ctx context.Context, box *models.BoxScore) error {
	if box == nil || box.Game == nil {
		return fmt.Errorf("box score has no game")
	}
	data, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("marshaling boxscore update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		Values: Values(box.Game, data),
	}).Err()
}

// Values builds the stream entry fields for a game
func Values(game *models.Game, data []byte) map[string]interface{} {
	return map[string]interface{}{
		"data":    string(data),
		"game_id": game.GameID,
		"status":  string(game.Status),
		"type":    models.MessageTypeGameFinal,
	}
}
