package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	_ "github.com/lib/pq"
)

// PostgresSchema creates the tables the Postgres store writes to
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS simulated_games (
	id              BIGSERIAL PRIMARY KEY,
	game_id         TEXT UNIQUE NOT NULL,
	sport_key       TEXT NOT NULL,
	home_team       TEXT NOT NULL,
	away_team       TEXT NOT NULL,
	home_score      INTEGER NOT NULL,
	away_score      INTEGER NOT NULL,
	seed            BIGINT NOT NULL,
	drives          INTEGER NOT NULL,
	opening_kick_to TEXT NOT NULL,
	simulated_at    TIMESTAMPTZ NOT NULL,
	box_score       JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulated_games_simulated_at
	ON simulated_games (simulated_at DESC);

CREATE TABLE IF NOT EXISTS simulated_player_stats (
	id                BIGSERIAL PRIMARY KEY,
	simulated_game_id BIGINT NOT NULL REFERENCES simulated_games(id) ON DELETE CASCADE,
	team_name         TEXT NOT NULL,
	player_name       TEXT NOT NULL,
	position          TEXT NOT NULL,
	stats             JSONB NOT NULL
);
`

// PostgresStore writes finished games to Holocron
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection pool
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Name identifies the store as a result sink
func (s *PostgresStore) Name() string {
	return "postgres"
}

// Migrate creates missing tables
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WriteResult inserts a game and its player lines in one transaction
func (s *PostgresStore) WriteResult(ctx context.Context, box *models.BoxScore) error {
	if err := validate(box); err != nil {
		return err
	}
	boxData, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("failed to marshal box score: %w", err)
	}
	players, err := playerRows(box)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	g := box.Game
	gameQuery := `
		INSERT INTO simulated_games (
			game_id, sport_key, home_team, away_team, home_score, away_score,
			seed, drives, opening_kick_to, simulated_at, box_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var rowID int64
	err = tx.QueryRowContext(
		ctx,
		gameQuery,
		g.GameID,
		g.SportKey,
		g.HomeTeam,
		g.AwayTeam,
		g.HomeScore,
		g.AwayScore,
		g.Seed,
		g.Drives,
		g.OpeningKickTo,
		g.SimulatedAt,
		string(boxData),
	).Scan(&rowID)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	playerQuery := `
		INSERT INTO simulated_player_stats (
			simulated_game_id, team_name, player_name, position, stats
		) VALUES ($1, $2, $3, $4, $5)
	`
	for _, p := range players {
		if _, err := tx.ExecContext(ctx, playerQuery, rowID, p.teamName, p.playerName, p.position, string(p.stats)); err != nil {
			return fmt.Errorf("failed to insert player stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReadGameSummary returns a stored game, or nil, nil when it does not exist
func (s *PostgresStore) ReadGameSummary(ctx context.Context, gameID string) (*models.Game, error) {
	box, err := s.ReadBoxScore(ctx, gameID)
	if err != nil || box == nil {
		return nil, err
	}
	return box.Game, nil
}

// ReadBoxScore returns a stored box score, or nil, nil when it does not exist
func (s *PostgresStore) ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT box_score FROM simulated_games WHERE game_id = $1`, gameID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query game: %w", err)
	}
	return decodeBoxScore(data)
}

// ReadRecentGames lists game IDs newest first
func (s *PostgresStore) ReadRecentGames(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id FROM simulated_games ORDER BY simulated_at DESC, id DESC LIMIT $1`,
		recentLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent games: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PurgeBefore deletes games simulated before cutoff and reports how many went
func (s *PostgresStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM simulated_games WHERE simulated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge games: %w", err)
	}
	return res.RowsAffected()
}
