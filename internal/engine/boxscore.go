package engine

import (
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
)

// TeamSummary is the fixed set of team totals shown in a box score
type TeamSummary struct {
	PassAttempts        float64 `json:"Pass Attempts" yaml:"Pass Attempts"`
	Completions         float64 `json:"Completions" yaml:"Completions"`
	PassYards           float64 `json:"Pass Yards" yaml:"Pass Yards"`
	InterceptionsThrown float64 `json:"Interceptions Thrown" yaml:"Interceptions Thrown"`
	SacksTaken          float64 `json:"Sacks Taken" yaml:"Sacks Taken"`
	Carries             float64 `json:"Carries" yaml:"Carries"`
	RushYards           float64 `json:"Rush Yards" yaml:"Rush Yards"`
	Fumbles             float64 `json:"Fumbles" yaml:"Fumbles"`
	Receptions          float64 `json:"Receptions" yaml:"Receptions"`
	ReceivingYards      float64 `json:"Receiving Yards" yaml:"Receiving Yards"`
	Targets             float64 `json:"Targets" yaml:"Targets"`
	Touchdowns          float64 `json:"Touchdowns" yaml:"Touchdowns"`
	Tackles             float64 `json:"Tackles" yaml:"Tackles"`
	Sacks               float64 `json:"Sacks" yaml:"Sacks"`
	Interceptions       float64 `json:"Interceptions" yaml:"Interceptions"`
	PATMade             float64 `json:"PATs Made" yaml:"PATs Made"`
	PATAttempts         float64 `json:"PATs Attempted" yaml:"PATs Attempted"`
	FGMade              float64 `json:"Field Goals Made" yaml:"Field Goals Made"`
	FGAttempted         float64 `json:"Field Goals Attempted" yaml:"Field Goals Attempted"`
	Punts               float64 `json:"Punts" yaml:"Punts"`
	PuntYards           float64 `json:"Punt Yards" yaml:"Punt Yards"`
}

// StatLine is one labelled row of a TeamSummary
type StatLine struct {
	Label string
	Value float64
}

// Lines returns the summary rows in display order
func (s TeamSummary) Lines() []StatLine {
	return []StatLine{
		{"Pass Attempts", s.PassAttempts},
		{"Completions", s.Completions},
		{"Pass Yards", s.PassYards},
		{"Interceptions Thrown", s.InterceptionsThrown},
		{"Sacks Taken", s.SacksTaken},
		{"Carries", s.Carries},
		{"Rush Yards", s.RushYards},
		{"Fumbles", s.Fumbles},
		{"Receptions", s.Receptions},
		{"Receiving Yards", s.ReceivingYards},
		{"Targets", s.Targets},
		{"Touchdowns", s.Touchdowns},
		{"Tackles", s.Tackles},
		{"Sacks", s.Sacks},
		{"Interceptions", s.Interceptions},
		{"PATs Made", s.PATMade},
		{"PATs Attempted", s.PATAttempts},
		{"Field Goals Made", s.FGMade},
		{"Field Goals Attempted", s.FGAttempted},
		{"Punts", s.Punts},
		{"Punt Yards", s.PuntYards},
	}
}

// SummarizeStats totals every player's counters on a team
func SummarizeStats(team *roster.Team) TeamSummary {
	var t roster.Stats
	for _, p := range team.Players() {
		t.Add(p.Stats)
	}
	return TeamSummary{
		PassAttempts:        t.PassAttempts,
		Completions:         t.Completions,
		PassYards:           t.PassYards,
		InterceptionsThrown: t.InterceptionsThrown,
		SacksTaken:          t.SacksTaken,
		Carries:             t.Carries,
		RushYards:           t.RushYards,
		Fumbles:             t.Fumbles,
		Receptions:          t.Receptions,
		ReceivingYards:      t.ReceivingYards,
		Targets:             t.Targets,
		Touchdowns:          t.Touchdowns,
		Tackles:             t.Tackles,
		Sacks:               t.Sacks,
		Interceptions:       t.Interceptions,
		PATMade:             t.PATMade,
		PATAttempts:         t.PATAttempts,
		FGMade:              t.FGMade,
		FGAttempted:         t.FGAttempted,
		Punts:               t.Punts,
		PuntYards:           t.PuntYards,
	}
}

// TeamBox is one side of a produced box score
type TeamBox struct {
	Name  string      `json:"name" yaml:"name"`
	Score int         `json:"score" yaml:"score"`
	Stats TeamSummary `json:"stats" yaml:"stats"`
}

// ProducedBoxScore pairs the two team boxes
type ProducedBoxScore struct {
	Team1 TeamBox `json:"team1" yaml:"team1"`
	Team2 TeamBox `json:"team2" yaml:"team2"`
}

// ProduceBoxScore builds the final box score for two teams
func ProduceBoxScore(team1, team2 *roster.Team, score1, score2 int) ProducedBoxScore {
	return ProducedBoxScore{
		Team1: TeamBox{Name: team1.Name, Score: score1, Stats: SummarizeStats(team1)},
		Team2: TeamBox{Name: team2.Name, Score: score2, Stats: SummarizeStats(team2)},
	}
}

// BoxScore produces the box score for a finished game, home team first
func (g *GameResult) BoxScore() ProducedBoxScore {
	return ProduceBoxScore(g.Home, g.Away, g.Score.Home, g.Score.Away)
}

// SummaryLabels returns the team total labels in display order
func SummaryLabels() []string {
	lines := TeamSummary{}.Lines()
	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = l.Label
	}
	return labels
}
