// Package store persists finished games to SQL databases. Postgres backs
// the service; SQLite backs local CLI runs.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
)

// DefaultRecentLimit bounds ReadRecentGames when callers pass a non-positive limit
const DefaultRecentLimit = 20

type playerRow struct {
	teamName   string
	playerName string
	position   string
	stats      []byte
}

// playerRows flattens both teams' player lines for insertion
func playerRows(box *models.BoxScore) ([]playerRow, error) {
	var rows []playerRow
	for _, side := range [][]models.PlayerStat{box.HomePlayers, box.AwayPlayers} {
		for _, ps := range side {
			data, err := json.Marshal(ps.Stats)
			if err != nil {
				return nil, fmt.Errorf("marshaling stats for %s: %w", ps.PlayerName, err)
			}
			rows = append(rows, playerRow{
				teamName:   ps.TeamName,
				playerName: ps.PlayerName,
				position:   ps.Position,
				stats:      data,
			})
		}
	}
	return rows, nil
}

func validate(box *models.BoxScore) error {
	if box == nil || box.Game == nil {
		return fmt.Errorf("box score has no game")
	}
	if box.Game.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	return nil
}

func decodeBoxScore(data []byte) (*models.BoxScore, error) {
	var box models.BoxScore
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, fmt.Errorf("decoding box score: %w", err)
	}
	return &box, nil
}

func recentLimit(limit int) int {
	if limit < 1 {
		return DefaultRecentLimit
	}
	return limit
}
