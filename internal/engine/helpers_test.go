package engine_test

import (
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/testutil"
)

func scripted(r *testutil.ScriptedRand) *engine.Engine {
	return engine.New(engine.WithRand(r))
}

// withKicker sets kick power on the team's K
func withKicker(raw roster.RawTeam, power float64) roster.RawTeam {
	offense := append([]roster.RawPlayer(nil), raw.Offense...)
	for i := range offense {
		if offense[i].Position == "K" {
			offense[i].KickPower = testutil.PtrFloat64(power)
		}
	}
	raw.Offense = offense
	return raw
}

func buildTeams(t *testing.T, raw ...roster.RawTeam) (*roster.Team, *roster.Team) {
	t.Helper()
	teams, err := roster.InitializeTeams(raw)
	if err != nil {
		t.Fatalf("Failed to initialize teams: %v", err)
	}
	return teams[0], teams[1]
}

func mustPlayer(t *testing.T, team *roster.Team, name string) *roster.Player {
	t.Helper()
	p := team.PlayerByName(name)
	if p == nil {
		t.Fatalf("Player %q not found", name)
	}
	return p
}

func sumStat(players []*roster.Player, stat func(roster.Stats) float64) float64 {
	var total float64
	for _, p := range players {
		total += stat(p.Stats)
	}
	return total
}

func tackles(s roster.Stats) float64 { return s.Tackles }
