package models

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SimulateRequest is the body of POST /api/v1/games
type SimulateRequest struct {
	Teams []RosterTeam `json:"teams"`
	Seed  *int64       `json:"seed,omitempty"`
}

// BatchRequest is the body of POST /api/v1/games/batch. When Seeds is
// empty, Games random seeds are drawn.
type BatchRequest struct {
	Teams []RosterTeam `json:"teams"`
	Seeds []int64      `json:"seeds,omitempty"`
	Games int          `json:"games,omitempty"`
}

// BatchResponse aggregates a batch of simulated games. Totals are kept
// per side since both teams may share a name.
type BatchResponse struct {
	HomeTeam      string  `json:"home_team"`
	AwayTeam      string  `json:"away_team"`
	Games         int     `json:"games"`
	HomeWins      int     `json:"home_wins"`
	AwayWins      int     `json:"away_wins"`
	Ties          int     `json:"ties"`
	AvgHomePoints float64 `json:"avg_home_points"`
	AvgAwayPoints float64 `json:"avg_away_points"`
	AvgDrives     float64 `json:"avg_drives"`
	Seeds         []int64 `json:"seeds"`
}
