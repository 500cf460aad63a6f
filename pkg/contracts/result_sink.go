package contracts

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
)

// ResultSink receives every finished game. Sinks are independent: a
// failing sink must not stop the others from being written.
type ResultSink interface {
	// Name identifies the sink in logs and health output
	Name() string

	// WriteResult persists or forwards a finished box score
	WriteResult(ctx context.Context, box *models.BoxScore) error
}

// GameReader serves finished games back to API callers
type GameReader interface {
	ReadGameSummary(ctx context.Context, gameID string) (*models.Game, error)
	ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error)
	ReadRecentGames(ctx context.Context, limit int) ([]string, error)
}
