package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultBoxScoreTTL applies when the writer is built with a zero TTL
const DefaultBoxScoreTTL = 6 * time.Hour

// RedisWriter caches finished games in Redis and keeps a capped list of the
// most recent game IDs per sport
type RedisWriter struct {
	client      *redis.Client
	sportKey    string
	ttl         time.Duration
	recentLimit int
}

// NewRedisWriter creates a new Redis writer
func NewRedisWriter(client *redis.Client, sportKey string, ttl time.Duration, recentLimit int) *RedisWriter {
	if ttl <= 0 {
		ttl = DefaultBoxScoreTTL
	}
	if recentLimit < 1 {
		recentLimit = 100
	}
	return &RedisWriter{
		client:      client,
		sportKey:    sportKey,
		ttl:         ttl,
		recentLimit: recentLimit,
	}
}

// SummaryKey is where a game's summary is cached
func SummaryKey(gameID string) string {
	return fmt.Sprintf("game:%s:summary", gameID)
}

// BoxScoreKey is where a game's full box score is cached
func BoxScoreKey(gameID string) string {
	return fmt.Sprintf("game:%s:boxscore", gameID)
}

// RecentKey is the list of recent game IDs for a sport, newest first
func RecentKey(sportKey string) string {
	return fmt.Sprintf("games:recent:%s", sportKey)
}

// Name identifies the writer as a result sink
func (w *RedisWriter) Name() string {
	return "redis_cache"
}

// WriteResult caches the summary and box score and records the game as
// recent, all in one pipeline
func (w *RedisWriter) WriteResult(ctx context.Context, box *models.BoxScore) error {
	if box == nil || box.Game == nil {
		return fmt.Errorf("box score has no game")
	}
	gameData, err := json.Marshal(box.Game)
	if err != nil {
		return fmt.Errorf("marshaling game: %w", err)
	}
	boxData, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("marshaling boxscore: %w", err)
	}

	id := box.Game.GameID
	recent := RecentKey(w.sportKey)

	pipe := w.client.TxPipeline()
	pipe.Set(ctx, SummaryKey(id), gameData, w.ttl)
	pipe.Set(ctx, BoxScoreKey(id), boxData, w.ttl)
	pipe.LPush(ctx, recent, id)
	pipe.LTrim(ctx, recent, 0, int64(w.recentLimit-1))
	pipe.Expire(ctx, recent, w.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("caching game %s: %w", id, err)
	}
	return nil
}

// ReadGameSummary retrieves a game summary. A cache miss returns nil, nil.
func (w *RedisWriter) ReadGameSummary(ctx context.Context, gameID string) (*models.Game, error) {
	var game models.Game
	found, err := w.readJSON(ctx, SummaryKey(gameID), &game)
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

// ReadBoxScore retrieves a full box score. A cache miss returns nil, nil.
func (w *RedisWriter) ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	var box models.BoxScore
	found, err := w.readJSON(ctx, BoxScoreKey(gameID), &box)
	if err != nil || !found {
		return nil, err
	}
	return &box, nil
}

// ReadRecentGames returns up to limit recent game IDs, newest first
func (w *RedisWriter) ReadRecentGames(ctx context.Context, limit int) ([]string, error) {
	if limit < 1 {
		limit = w.recentLimit
	}
	return w.client.LRange(ctx, RecentKey(w.sportKey), 0, int64(limit-1)).Result()
}

// Ping checks the Redis connection
func (w *RedisWriter) Ping(ctx context.Context) error {
	return w.client.Ping(ctx).Err()
}

func (w *RedisWriter) readJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := w.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshaling %s: %w", key, err)
	}
	return true, nil
}
