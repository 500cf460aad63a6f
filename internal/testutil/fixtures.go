package testutil

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
)

// MockPlayer creates a raw player with every rating left at its default
func MockPlayer(name, position string) roster.RawPlayer {
	return roster.RawPlayer{Name: name, Position: position}
}

// MockRatedPlayer creates a raw player with a single rating applied to
// speed, strength, intelligence and endurance
func MockRatedPlayer(name, position string, rating float64) roster.RawPlayer {
	p := MockPlayer(name, position)
	p.Speed = PtrFloat64(rating)
	p.Strength = PtrFloat64(rating)
	p.Intelligence = PtrFloat64(rating)
	p.Endurance = PtrFloat64(rating)
	return p
}

// MockTeam creates a full two-deep roster. Starters are flagged in_game.
func MockTeam(name string) roster.RawTeam {
	offense := []roster.RawPlayer{
		starter(MockPlayer(name+" QB1", "QB")),
		starter(MockPlayer(name+" RB1", "RB")),
		MockPlayer(name+" RB2", "RB"),
		starter(MockPlayer(name+" WR1", "WR")),
		starter(MockPlayer(name+" WR2", "WR")),
		starter(MockPlayer(name+" WR3", "WR")),
		MockPlayer(name+" WR4", "WR"),
		starter(MockPlayer(name+" TE1", "TE")),
		MockPlayer(name+" TE2", "TE"),
		starter(MockPlayer(name+" K", "K")),
		starter(MockPlayer(name+" P", "P")),
	}
	for i := 1; i <= 5; i++ {
		offense = append(offense, starter(MockPlayer(fmt.Sprintf("%s OL%d", name, i), "OL")))
	}

	defense := []roster.RawPlayer{
		starter(MockPlayer(name+" ROLB1", "ROLB")),
		starter(MockPlayer(name+" MLB1", "MLB")),
		starter(MockPlayer(name+" LOLB1", "LOLB")),
		MockPlayer(name+" MLB2", "MLB"),
		starter(MockPlayer(name+" CB1", "CB")),
		starter(MockPlayer(name+" CB2", "CB")),
		MockPlayer(name+" CB3", "CB"),
		starter(MockPlayer(name+" S1", "S")),
		starter(MockPlayer(name+" S2", "S")),
		MockPlayer(name+" S3", "S"),
	}
	for i := 1; i <= 6; i++ {
		p := MockPlayer(fmt.Sprintf("%s DL%d", name, i), "DL")
		if i <= 4 {
			p = starter(p)
		}
		defense = append(defense, p)
	}

	return roster.RawTeam{TeamName: name, Offense: offense, Defense: defense}
}

// MockLeague creates a two-team roster document
func MockLeague() roster.RawLeague {
	return roster.RawLeague{Teams: []roster.RawTeam{MockTeam("Home"), MockTeam("Away")}}
}

// MockTeams builds initialized teams from MockLeague and panics on error
func MockTeams() []*roster.Team {
	teams, err := roster.InitializeTeams(MockLeague().Teams)
	if err != nil {
		panic(err)
	}
	return teams
}

func starter(p roster.RawPlayer) roster.RawPlayer {
	p.InGame = PtrBool(true)
	return p
}

// Helper functions
func PtrFloat64(f float64) *float64 {
	return &f
}

func PtrBool(b bool) *bool {
	return &b
}

// ScriptedRand replays queued values. Float64 falls back to Default once
// Floats is exhausted, Intn to 0 and NormFloat64 to 0.
type ScriptedRand struct {
	Floats  []float64
	Ints    []int
	Norms   []float64
	Default float64
}

// Float64 returns the next queued float
func (s *ScriptedRand) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.Default
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Intn returns the next queued int, capped at n-1
func (s *ScriptedRand) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return min(v, n-1)
}

// NormFloat64 returns the next queued normal deviate
func (s *ScriptedRand) NormFloat64() float64 {
	if len(s.Norms) == 0 {
		return 0
	}
	v := s.Norms[0]
	s.Norms = s.Norms[1:]
	return v
}

// WireTeams converts raw rosters into request rosters
func WireTeams(raw ...roster.RawTeam) []models.RosterTeam {
	out := make([]models.RosterTeam, 0, len(raw))
	for _, t := range raw {
		team := models.RosterTeam{TeamName: t.TeamName}
		for _, p := range t.Offense {
			team.Offense = append(team.Offense, models.RosterPlayer(p))
		}
		for _, p := range t.Defense {
			team.Defense = append(team.Defense, models.RosterPlayer(p))
		}
		out = append(out, team)
	}
	return out
}

// MockRequestTeams is MockLeague as request rosters
func MockRequestTeams() []models.RosterTeam {
	return WireTeams(MockLeague().Teams...)
}
