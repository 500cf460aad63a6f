package service_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/service"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/testutil"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
)

func TestDisplayStats(t *testing.T) {
	got := service.DisplayStats(map[string]float64{
		"rush_yards": 112,
		"carries":    21,
		"sacks":      1.5,
		"tackles":    0,
	})

	want := []struct{ label, value, category string }{
		{"Carries", "21", "Rushing"},
		{"Rush Yards", "112", "Rushing"},
		{"Sacks", "1.5", "Defense"},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d display stats, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Value != w.value || got[i].Category != w.category {
			t.Errorf("Row %d: expected %+v, got %+v", i, w, got[i])
		}
	}
}

func TestBuildBoxScore(t *testing.T) {
	res, err := engine.SimulateFullGame(testutil.MockLeague().Teams, engine.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	box := service.BuildBoxScore("g-1", "american_football_sim", res, at)

	if box.Game.GameID != "g-1" || box.Game.HomeTeam != "Home" || box.Game.AwayTeam != "Away" {
		t.Errorf("Unexpected game header: %+v", box.Game)
	}
	if !box.Game.SimulatedAt.Equal(at) {
		t.Errorf("Expected simulated_at %v, got %v", at, box.Game.SimulatedAt)
	}
	if box.Game.Period != 2 || box.Game.PeriodLabel != "Final" {
		t.Errorf("Expected 2 periods, final; got %d %s", box.Game.Period, box.Game.PeriodLabel)
	}

	if len(box.PeriodScores) != 2 {
		t.Fatalf("Expected 2 period scores, got %d", len(box.PeriodScores))
	}
	var home, away int
	for i, p := range box.PeriodScores {
		if want := []string{"H1", "H2"}[i]; p.Label != want {
			t.Errorf("Expected label %s, got %s", want, p.Label)
		}
		home += p.HomeScore
		away += p.AwayScore
	}
	if home != box.Game.HomeScore || away != box.Game.AwayScore {
		t.Errorf("Period scores %d-%d do not sum to final %d-%d", home, away, box.Game.HomeScore, box.Game.AwayScore)
	}

	if len(box.HomeStats) != len(engine.SummaryLabels()) {
		t.Errorf("Expected %d team totals, got %d", len(engine.SummaryLabels()), len(box.HomeStats))
	}
	summary := engine.SummarizeStats(res.Home)
	if box.HomeStats["Pass Yards"] != summary.PassYards {
		t.Errorf("Expected pass yards %v, got %v", summary.PassYards, box.HomeStats["Pass Yards"])
	}

	var passYards float64
	for _, p := range box.HomePlayers {
		if p.TeamName != "Home" {
			t.Errorf("Player %s listed under %s", p.PlayerName, p.TeamName)
		}
		if len(p.Stats) == 0 || len(p.DisplayStats) == 0 {
			t.Errorf("Player %s listed without stats", p.PlayerName)
		}
		passYards += p.Stats["pass_yards"]
	}
	if passYards != summary.PassYards {
		t.Errorf("Player pass yards %v do not match team total %v", passYards, summary.PassYards)
	}
}

func TestRawTeams(t *testing.T) {
	teams := []models.RosterTeam{{
		TeamName: "Sharks",
		Offense: []models.RosterPlayer{
			{Name: "QB", Position: "QB", Passing: testutil.PtrFloat64(88), InGame: testutil.PtrBool(true)},
		},
		Defense: []models.RosterPlayer{
			{Name: "CB", Position: "CB", Stats: map[string]float64{"tackles": 2}},
		},
	}}

	raw := service.RawTeams(teams)
	if len(raw) != 1 || raw[0].TeamName != "Sharks" {
		t.Fatalf("Unexpected teams: %+v", raw)
	}
	qb := raw[0].Offense[0]
	if qb.Name != "QB" || qb.Passing == nil || *qb.Passing != 88 || qb.InGame == nil || !*qb.InGame {
		t.Errorf("Unexpected quarterback: %+v", qb)
	}
	if qb.Speed != nil {
		t.Error("Expected absent ratings to stay nil")
	}
	if raw[0].Defense[0].Stats["tackles"] != 2 {
		t.Errorf("Expected seeded stats to carry over, got %v", raw[0].Defense[0].Stats)
	}

	if got := service.RawTeams(nil); len(got) != 0 {
		t.Errorf("Expected no teams, got %d", len(got))
	}
}
