package models

// BoxScore contains full game statistics
type BoxScore struct {
	Game         *Game              `json:"game"`
	HomeStats    map[string]float64 `json:"home_stats"` // team totals keyed by display label
	AwayStats    map[string]float64 `json:"away_stats"`
	HomePlayers  []PlayerStat       `json:"home_players"`
	AwayPlayers  []PlayerStat       `json:"away_players"`
	PeriodScores []PeriodScore      `json:"period_scores"` // half-by-half
}

// PeriodScore represents scoring by half
type PeriodScore struct {
	Period    int    `json:"period"`
	Label     string `json:"label"` // "H1", "H2"
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}
