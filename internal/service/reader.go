package service

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"go.uber.org/zap"
)

// FallbackReader reads from the first reader that has the game. Readers
// return nil, nil for a miss; an error from one reader is logged and the
// next is tried.
type FallbackReader struct {
	readers []contracts.GameReader
	logger  *zap.Logger
}

// NewFallbackReader tries readers in order, nil readers skipped
func NewFallbackReader(logger *zap.Logger, readers ...contracts.GameReader) *FallbackReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	fr := &FallbackReader{logger: logger}
	for _, r := range readers {
		if r != nil {
			fr.readers = append(fr.readers, r)
		}
	}
	return fr
}

// ReadGameSummary returns the first hit, nil, nil when no reader has it
func (f *FallbackReader) ReadGameSummary(ctx context.Context, gameID string) (*models.Game, error) {
	var lastErr error
	for _, r := range f.readers {
		game, err := r.ReadGameSummary(ctx, gameID)
		if err != nil {
			f.logger.Warn("game summary read failed", zap.String("game_id", gameID), zap.Error(err))
			lastErr = err
			continue
		}
		if game != nil {
			return game, nil
		}
	}
	return nil, lastErr
}

// ReadBoxScore returns the first hit, nil, nil when no reader has it
func (f *FallbackReader) ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	var lastErr error
	for _, r := range f.readers {
		box, err := r.ReadBoxScore(ctx, gameID)
		if err != nil {
			f.logger.Warn("box score read failed", zap.String("game_id", gameID), zap.Error(err))
			lastErr = err
			continue
		}
		if box != nil {
			return box, nil
		}
	}
	return nil, lastErr
}

// ReadRecentGames returns the first non-empty list
func (f *FallbackReader) ReadRecentGames(ctx context.Context, limit int) ([]string, error) {
	var lastErr error
	for _, r := range f.readers {
		ids, err := r.ReadRecentGames(ctx, limit)
		if err != nil {
			f.logger.Warn("recent games read failed", zap.Error(err))
			lastErr = err
			continue
		}
		if len(ids) > 0 {
			return ids, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []string{}, nil
}
