package models

// PlayerStat represents a player's statistics in a game
// Uses hybrid model: raw stats map + display stats for UI
type PlayerStat struct {
	PlayerName   string             `json:"player_name"`
	TeamName     string             `json:"team_name"`
	Position     string             `json:"position,omitempty"`
	Stats        map[string]float64 `json:"stats"` // non-zero counters keyed by stat name
	DisplayStats []DisplayStat      `json:"display_stats"`
}

// DisplayStat provides formatted stat display info
type DisplayStat struct {
	Label    string `json:"label"`    // "Rush Yards"
	Value    string `json:"value"`    // "112"
	Category string `json:"category"` // "Rushing"
}
