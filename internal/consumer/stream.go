package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/config"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Batch size for reading messages
	batchSize = 100

	// Block duration when waiting for new messages
	blockDuration = 1 * time.Second
)

// Broadcaster receives every decoded game
type Broadcaster interface {
	Broadcast(box *models.BoxScore) bool
}

// StreamConsumer reads finished games off the games stream and hands them
// to the websocket hub
type StreamConsumer struct {
	redis        *redis.Client
	hub          Broadcaster
	streamConfig config.StreamConfig
	logger       *zap.Logger
}

// NewStreamConsumer creates a new stream consumer
func NewStreamConsumer(redisClient *redis.Client, h Broadcaster, streamConfig config.StreamConfig, logger *zap.Logger) *StreamConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamConsumer{
		redis:        redisClient,
		hub:          h,
		streamConfig: streamConfig,
		logger:       logger.With(zap.String("stream", streamConfig.Key())),
	}
}

// Start consumes until ctx is cancelled
func (sc *StreamConsumer) Start(ctx context.Context) error {
	stream := sc.streamConfig.Key()
	if err := sc.createConsumerGroup(ctx, stream); err != nil {
		return err
	}
	sc.logger.Info("stream consumer started", zap.String("group", sc.streamConfig.ConsumerGroup))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		streams, err := sc.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    sc.streamConfig.ConsumerGroup,
			Consumer: sc.streamConfig.ConsumerID,
			Streams:  []string{stream, ">"},
			Count:    batchSize,
			Block:    blockDuration,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			sc.logger.Warn("stream read error", zap.Error(err))
			time.Sleep(1 * time.Second)
			continue
		}

		for _, s := range streams {
			for _, message := range s.Messages {
				sc.processMessage(ctx, s.Stream, message)
			}
		}
	}
}

// createConsumerGroup creates the group, ignoring one that already exists
func (sc *StreamConsumer) createConsumerGroup(ctx context.Context, stream string) error {
	err := sc.redis.XGroupCreateMkStream(ctx, stream, sc.streamConfig.ConsumerGroup, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group for %s: %w", stream, err)
	}
	return nil
}

// processMessage decodes, broadcasts and acks one entry. Malformed entries
// are acked too so they are not redelivered forever.
func (sc *StreamConsumer) processMessage(ctx context.Context, stream string, msg redis.XMessage) {
	box, err := Decode(msg)
	if err != nil {
		sc.logger.Warn("skipping message", zap.String("id", msg.ID), zap.Error(err))
	} else {
		sc.logger.Debug("broadcasting game",
			zap.String("game_id", box.Game.GameID),
			zap.String("status", string(box.Game.Status)))
		sc.hub.Broadcast(box)
	}

	if err := sc.redis.XAck(ctx, stream, sc.streamConfig.ConsumerGroup, msg.ID).Err(); err != nil {
		sc.logger.Warn("failed to ack message", zap.String("id", msg.ID), zap.Error(err))
	}
}

// Decode parses a stream entry written by the stream publisher
func Decode(msg redis.XMessage) (*models.BoxScore, error) {
	if t, ok := msg.Values["type"].(string); ok && t != models.MessageTypeGameFinal {
		return nil, fmt.Errorf("unexpected message type %q", t)
	}
	data, ok := msg.Values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("message has no data field")
	}

	var box models.BoxScore
	if err := json.Unmarshal([]byte(data), &box); err != nil {
		return nil, fmt.Errorf("parsing box score: %w", err)
	}
	if box.Game == nil {
		return nil, fmt.Errorf("box score has no game")
	}
	return &box, nil
}
