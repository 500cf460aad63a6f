package service

import (
	"strconv"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
)

type statDisplay struct {
	key      string
	label    string
	category string
}

// displayOrder lists every player counter with its label and category
var displayOrder = []statDisplay{
	{"pass_attempts", "Pass Attempts", "Passing"},
	{"completions", "Completions", "Passing"},
	{"pass_yards", "Pass Yards", "Passing"},
	{"interceptions_thrown", "Interceptions Thrown", "Passing"},
	{"sacks_taken", "Sacks Taken", "Passing"},
	{"carries", "Carries", "Rushing"},
	{"rush_yards", "Rush Yards", "Rushing"},
	{"fumbles", "Fumbles", "Rushing"},
	{"targets", "Targets", "Receiving"},
	{"receptions", "Receptions", "Receiving"},
	{"receiving_yards", "Receiving Yards", "Receiving"},
	{"touchdowns", "Touchdowns", "Scoring"},
	{"tackles", "Tackles", "Defense"},
	{"sacks", "Sacks", "Defense"},
	{"interceptions", "Interceptions", "Defense"},
	{"forced_fumbles", "Forced Fumbles", "Defense"},
	{"pat_made", "PATs Made", "Kicking"},
	{"pat_attempts", "PATs Attempted", "Kicking"},
	{"fg_made", "Field Goals Made", "Kicking"},
	{"fg_attempted", "Field Goals Attempted", "Kicking"},
	{"punts", "Punts", "Punting"},
	{"punt_yards", "Punt Yards", "Punting"},
}

// BuildGame summarizes a finished game
func BuildGame(gameID, sportKey string, res *engine.GameResult, at time.Time) *models.Game {
	return &models.Game{
		GameID:        gameID,
		SportKey:      sportKey,
		Status:        models.StatusFinal,
		HomeTeam:      res.Home.Name,
		AwayTeam:      res.Away.Name,
		HomeScore:     res.Score.Home,
		AwayScore:     res.Score.Away,
		Period:        len(res.Halves),
		PeriodLabel:   "Final",
		Seed:          res.Seed,
		Drives:        res.Drives,
		OpeningKickTo: string(res.OpeningKickTo),
		SimulatedAt:   at,
		UpdatedAt:     at,
	}
}

// BuildBoxScore converts an engine result into the API box score
func BuildBoxScore(gameID, sportKey string, res *engine.GameResult, at time.Time) *models.BoxScore {
	box := &models.BoxScore{
		Game:        BuildGame(gameID, sportKey, res, at),
		HomeStats:   TeamStats(res.Home),
		AwayStats:   TeamStats(res.Away),
		HomePlayers: PlayerStats(res.Home),
		AwayPlayers: PlayerStats(res.Away),
	}
	for _, h := range res.Halves {
		box.PeriodScores = append(box.PeriodScores, models.PeriodScore{
			Period:    h.Half,
			Label:     "H" + strconv.Itoa(h.Half),
			HomeScore: h.Home,
			AwayScore: h.Away,
		})
	}
	return box
}

// TeamStats returns a team's box-score totals keyed by display label
func TeamStats(team *roster.Team) map[string]float64 {
	out := make(map[string]float64)
	for _, line := range engine.SummarizeStats(team).Lines() {
		out[line.Label] = line.Value
	}
	return out
}

// PlayerStats lists every player on team who recorded at least one stat,
// in roster order
func PlayerStats(team *roster.Team) []models.PlayerStat {
	var out []models.PlayerStat
	for _, p := range team.Players() {
		stats := p.Stats.Map()
		if len(stats) == 0 {
			continue
		}
		out = append(out, models.PlayerStat{
			PlayerName:   p.Name,
			TeamName:     team.Name,
			Position:     p.Position.String(),
			Stats:        stats,
			DisplayStats: DisplayStats(stats),
		})
	}
	return out
}

// DisplayStats formats non-zero counters for display
func DisplayStats(stats map[string]float64) []models.DisplayStat {
	var out []models.DisplayStat
	for _, d := range displayOrder {
		v, ok := stats[d.key]
		if !ok || v == 0 {
			continue
		}
		out = append(out, models.DisplayStat{
			Label:    d.label,
			Value:    strconv.FormatFloat(v, 'f', -1, 64),
			Category: d.category,
		})
	}
	return out
}

// RawTeams converts request rosters into the engine's roster input
func RawTeams(teams []models.RosterTeam) []roster.RawTeam {
	out := make([]roster.RawTeam, 0, len(teams))
	for _, t := range teams {
		out = append(out, roster.RawTeam{
			TeamName: t.TeamName,
			Offense:  rawPlayers(t.Offense),
			Defense:  rawPlayers(t.Defense),
		})
	}
	return out
}

func rawPlayers(players []models.RosterPlayer) []roster.RawPlayer {
	out := make([]roster.RawPlayer, len(players))
	for i, p := range players {
		out[i] = roster.RawPlayer(p)
	}
	return out
}
