package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS simulated_games (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id         TEXT UNIQUE NOT NULL,
	sport_key       TEXT NOT NULL,
	home_team       TEXT NOT NULL,
	away_team       TEXT NOT NULL,
	home_score      INTEGER NOT NULL,
	away_score      INTEGER NOT NULL,
	seed            INTEGER NOT NULL,
	drives          INTEGER NOT NULL,
	opening_kick_to TEXT NOT NULL,
	simulated_at    INTEGER NOT NULL,
	box_score       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulated_games_simulated_at
	ON simulated_games (simulated_at DESC);

CREATE TABLE IF NOT EXISTS simulated_player_stats (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	simulated_game_id INTEGER NOT NULL REFERENCES simulated_games(id) ON DELETE CASCADE,
	team_name         TEXT NOT NULL,
	player_name       TEXT NOT NULL,
	position          TEXT NOT NULL,
	stats             TEXT NOT NULL
);
`

// SQLiteStore keeps simulated games in a local database file
type SQLiteStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// OpenSQLite opens a SQLite store at path and creates missing tables
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Name identifies the store as a result sink
func (s *SQLiteStore) Name() string {
	return "sqlite"
}

// WriteResult inserts a game and its player lines in one transaction
func (s *SQLiteStore) WriteResult(ctx context.Context, box *models.BoxScore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(box); err != nil {
		return err
	}
	boxData, err := json.Marshal(box)
	if err != nil {
		return fmt.Errorf("marshal box score: %w", err)
	}
	players, err := playerRows(box)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	g := box.Game
	simulatedAt := g.SimulatedAt
	if simulatedAt.IsZero() {
		simulatedAt = time.Now()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO simulated_games (
		   game_id, sport_key, home_team, away_team, home_score, away_score,
		   seed, drives, opening_kick_to, simulated_at, box_score
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.GameID,
		g.SportKey,
		g.HomeTeam,
		g.AwayTeam,
		g.HomeScore,
		g.AwayScore,
		g.Seed,
		g.Drives,
		g.OpeningKickTo,
		toMillis(simulatedAt),
		string(boxData),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	for _, p := range players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO simulated_player_stats (
			   simulated_game_id, team_name, player_name, position, stats
			 ) VALUES (?, ?, ?, ?, ?)`,
			rowID, p.teamName, p.playerName, p.position, string(p.stats),
		); err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReadGameSummary returns a stored game, or nil, nil when it does not exist
func (s *SQLiteStore) ReadGameSummary(ctx context.Context, gameID string) (*models.Game, error) {
	box, err := s.ReadBoxScore(ctx, gameID)
	if err != nil || box == nil {
		return nil, err
	}
	return box.Game, nil
}

// ReadBoxScore returns a stored box score, or nil, nil when it does not exist
func (s *SQLiteStore) ReadBoxScore(ctx context.Context, gameID string) (*models.BoxScore, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT box_score FROM simulated_games WHERE game_id = ?`, gameID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query game: %w", err)
	}
	return decodeBoxScore([]byte(data))
}

// ReadRecentGames lists game IDs newest first
func (s *SQLiteStore) ReadRecentGames(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id FROM simulated_games ORDER BY simulated_at DESC, id DESC LIMIT ?`,
		recentLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query recent games: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PlayerLine is one stored game line for a player
type PlayerLine struct {
	GameID   string
	TeamName string
	Position string
	Stats    map[string]float64
}

// ReadPlayerLines returns every stored line for a player, newest game first
func (s *SQLiteStore) ReadPlayerLines(ctx context.Context, playerName string) ([]PlayerLine, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT g.game_id, p.team_name, p.position, p.stats
		   FROM simulated_player_stats p
		   JOIN simulated_games g ON g.id = p.simulated_game_id
		  WHERE p.player_name = ?
		  ORDER BY g.simulated_at DESC, g.id DESC`,
		playerName,
	)
	if err != nil {
		return nil, fmt.Errorf("query player lines: %w", err)
	}
	defer rows.Close()

	var lines []PlayerLine
	for rows.Next() {
		var line PlayerLine
		var stats string
		if err := rows.Scan(&line.GameID, &line.TeamName, &line.Position, &stats); err != nil {
			return nil, fmt.Errorf("scan player line: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &line.Stats); err != nil {
			return nil, fmt.Errorf("decode player stats: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
