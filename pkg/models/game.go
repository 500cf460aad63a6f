package models

import "time"

// GameStatus represents the current state of a game
type GameStatus string

const (
	StatusSimulating GameStatus = "simulating"
	StatusFinal      GameStatus = "final"
)

// Game is the summary of one simulated game
type Game struct {
	GameID        string                 `json:"game_id"`
	SportKey      string                 `json:"sport_key"` // "american_football_sim"
	Status        GameStatus             `json:"status"`
	HomeTeam      string                 `json:"home_team"`
	AwayTeam      string                 `json:"away_team"`
	HomeScore     int                    `json:"home_score"`
	AwayScore     int                    `json:"away_score"`
	Period        int                    `json:"period"`       // halves played
	PeriodLabel   string                 `json:"period_label"` // "H2", "Final"
	Seed          int64                  `json:"seed"`
	Drives        int                    `json:"drives"`
	OpeningKickTo string                 `json:"opening_kick_to"`
	SimulatedAt   time.Time              `json:"simulated_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Winner returns the winning team name, or "" on a tie
func (g *Game) Winner() string {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeTeam
	case g.AwayScore > g.HomeScore:
		return g.AwayTeam
	}
	return ""
}
