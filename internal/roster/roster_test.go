package roster_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/testutil"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw     string
		want    roster.Position
		wantErr bool
	}{
		{"QB", roster.QB, false},
		{"lolb", roster.LOLB, false},
		{" S ", roster.S, false},
		{"OLB", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := roster.ParsePosition(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, roster.ErrUnknownPosition) {
					t.Fatalf("Expected ErrUnknownPosition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPositionTags(t *testing.T) {
	for _, pos := range []roster.Position{roster.ROLB, roster.MLB, roster.LOLB} {
		if !pos.Linebacker() {
			t.Errorf("Expected %s to be a linebacker", pos)
		}
		if !pos.Defensive() {
			t.Errorf("Expected %s to be defensive", pos)
		}
	}
	if !roster.OL.Has(roster.TagLine) || !roster.DL.Has(roster.TagLine) {
		t.Error("Expected OL and DL to carry the line tag")
	}
	if roster.QB.Has(roster.TagSkillOffense) {
		t.Error("QB should not carry the skill-offense tag")
	}
	if !roster.S.Has(roster.TagSecondary | roster.TagLinebacker) {
		t.Error("Expected S to match a secondary-or-linebacker query")
	}
}

func TestInitializeTeams_TeamCount(t *testing.T) {
	_, err := roster.InitializeTeams([]roster.RawTeam{testutil.MockTeam("Solo")})
	if !errors.Is(err, roster.ErrTeamCount) {
		t.Fatalf("Expected ErrTeamCount, got %v", err)
	}
}

func TestInitializeTeams_Specialists(t *testing.T) {
	missing := testutil.MockTeam("NoKicker")
	kept := missing.Offense[:0]
	for _, p := range missing.Offense {
		if p.Position != "K" {
			kept = append(kept, p)
		}
	}
	missing.Offense = kept

	_, err := roster.InitializeTeams([]roster.RawTeam{missing, testutil.MockTeam("Away")})
	if !errors.Is(err, roster.ErrMissingSpecialist) {
		t.Fatalf("Expected ErrMissingSpecialist, got %v", err)
	}

	dup := testutil.MockTeam("TwoPunters")
	dup.Offense = append(dup.Offense, testutil.MockPlayer("Extra P", "P"))
	_, err = roster.InitializeTeams([]roster.RawTeam{testutil.MockTeam("Home"), dup})
	if !errors.Is(err, roster.ErrDuplicateSpecialist) {
		t.Fatalf("Expected ErrDuplicateSpecialist, got %v", err)
	}
}

func TestInitializeTeams_EmptyRoster(t *testing.T) {
	empty := roster.RawTeam{TeamName: "Ghosts"}
	_, err := roster.InitializeTeams([]roster.RawTeam{empty, testutil.MockTeam("Away")})
	if !errors.Is(err, roster.ErrEmptyRoster) {
		t.Fatalf("Expected ErrEmptyRoster, got %v", err)
	}
}

func TestInitializeTeams_ActivatesUnflaggedSide(t *testing.T) {
	home := testutil.MockTeam("Home")
	for i := range home.Defense {
		home.Defense[i].InGame = nil
	}

	teams, err := roster.InitializeTeams([]roster.RawTeam{home, testutil.MockTeam("Away")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, want := len(teams[0].ActiveDefense()), len(home.Defense); got != want {
		t.Errorf("Expected all %d defenders active, got %d", want, got)
	}
	if got := len(teams[0].ActiveOffense()); got == len(home.Offense) {
		t.Errorf("Offense had starters flagged, expected bench players to stay out, got %d active", got)
	}
}

func TestNewPlayer_Defaults(t *testing.T) {
	raw := testutil.MockPlayer("Default Dan", "WR")
	raw.Speed = testutil.PtrFloat64(140)
	raw.Fatigue = testutil.PtrFloat64(-3)

	p, err := roster.NewPlayer(raw)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Ratings.Hands != roster.DefaultRating {
		t.Errorf("Expected missing rating to default to 50, got %v", p.Ratings.Hands)
	}
	if p.Ratings.Speed != 100 {
		t.Errorf("Expected speed clamped to 100, got %v", p.Ratings.Speed)
	}
	if p.Fatigue != 0 {
		t.Errorf("Expected fatigue clamped to 0, got %v", p.Fatigue)
	}
}

func TestNewPlayer_UnknownStat(t *testing.T) {
	raw := testutil.MockPlayer("Stat Padder", "RB")
	raw.Stats = map[string]float64{"style_points": 3}

	if _, err := roster.NewPlayer(raw); !errors.Is(err, roster.ErrUnknownStat) {
		t.Fatalf("Expected ErrUnknownStat, got %v", err)
	}
}

func TestApplyFatiguePenalty_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		fatigue float64
	}{
		{"fresh", 0},
		{"half", 50},
		{"spent", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := testutil.MockRatedPlayer("Tired Tom", "RB", 80)
			raw.Coverage = testutil.PtrFloat64(7)
			p, err := roster.NewPlayer(raw)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			p.SetFatigue(tt.fatigue)
			p.ApplyFatiguePenalty()
			base := p.Baseline()

			checks := map[string][2]float64{
				"speed":    {p.Ratings.Speed, base.Speed},
				"strength": {p.Ratings.Strength, base.Strength},
				"coverage": {p.Ratings.Coverage, base.Coverage},
			}
			for attr, v := range checks {
				if v[0] > v[1] {
					t.Errorf("%s rose above baseline: %v > %v", attr, v[0], v[1])
				}
				if v[0] < v[1]*2/3 {
					t.Errorf("%s fell below two thirds of baseline: %v", attr, v[0])
				}
			}
			if p.Ratings.Intelligence != base.Intelligence {
				t.Errorf("intelligence is not fatigue sensitive, got %v", p.Ratings.Intelligence)
			}
		})
	}
}

func TestApplyFatiguePenalty_NotCumulative(t *testing.T) {
	p, err := roster.NewPlayer(testutil.MockRatedPlayer("Steady", "WR", 80))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	p.SetFatigue(100)
	for i := 0; i < 5; i++ {
		p.ApplyFatiguePenalty()
	}
	// 80 * (1 - 0.15) = 68
	if p.Ratings.Speed != 68 {
		t.Errorf("Expected speed 68 after repeated penalties, got %v", p.Ratings.Speed)
	}
}

func TestRecoverBenchPlayers(t *testing.T) {
	team := testutil.MockTeams()[0]
	backup := team.PlayerByName("Home RB2")
	starterRB := team.PlayerByName("Home RB1")
	backup.SetFatigue(12)
	starterRB.SetFatigue(12)

	team.RecoverBenchPlayers()

	if backup.Fatigue != 7 {
		t.Errorf("Expected bench fatigue 12 - 50/10 = 7, got %v", backup.Fatigue)
	}
	if starterRB.Fatigue != 12 {
		t.Errorf("Active player should not recover, got %v", starterRB.Fatigue)
	}

	backup.SetFatigue(2)
	team.RecoverBenchPlayers()
	if backup.Fatigue != 0 {
		t.Errorf("Expected fatigue floored at 0, got %v", backup.Fatigue)
	}
}

func TestSubSkillPositionPlayers_PrefersProduction(t *testing.T) {
	raw := testutil.MockTeam("Home")
	raw.Offense = append(raw.Offense, testutil.MockPlayer("Home RB3", "RB"))
	teams, err := roster.InitializeTeams([]roster.RawTeam{raw, testutil.MockTeam("Away")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	team := teams[0]

	team.PlayerByName("Home RB1").SetFatigue(80)
	team.PlayerByName("Home RB2").SetFatigue(10)
	productive := team.PlayerByName("Home RB3")
	productive.SetFatigue(40)
	productive.Stats.RushYards = 55

	team.SubSkillPositionPlayers(50)

	if team.PlayerByName("Home RB1").InGame {
		t.Error("Expected tired starter to be benched")
	}
	if !productive.InGame {
		t.Error("Expected most productive backup to come in")
	}
	if team.PlayerByName("Home RB2").InGame {
		t.Error("Expected fresher but unproductive backup to stay on the bench")
	}
}

func TestSubDefensivePlayers_PrefersFreshLegs(t *testing.T) {
	team := testutil.MockTeams()[0]
	team.PlayerByName("Home DL1").SetFatigue(70)
	team.PlayerByName("Home DL2").SetFatigue(90)

	dl5 := team.PlayerByName("Home DL5")
	dl5.SetFatigue(30)
	dl5.Stats.Tackles = 9
	dl6 := team.PlayerByName("Home DL6")
	dl6.SetFatigue(5)

	team.SubDefensivePlayers(50)

	if team.PlayerByName("Home DL1").InGame || team.PlayerByName("Home DL2").InGame {
		t.Error("Expected both tired linemen to be benched")
	}
	if !dl5.InGame || !dl6.InGame {
		t.Error("Expected both backups to enter")
	}
	if got := len(team.ActiveDefense()); got != 11 {
		t.Errorf("Swaps must be 1:1, expected 11 active defenders, got %d", got)
	}
}

func TestSubDefensivePlayers_StopsWhenBenchExhausted(t *testing.T) {
	team := testutil.MockTeams()[0]
	team.PlayerByName("Home CB1").SetFatigue(90)
	team.PlayerByName("Home CB2").SetFatigue(90)

	team.SubDefensivePlayers(50)

	if !team.PlayerByName("Home CB3").InGame {
		t.Error("Expected CB3 to enter")
	}
	if team.PlayerByName("Home CB1").InGame {
		t.Error("Expected first tired corner to be swapped first")
	}
	if !team.PlayerByName("Home CB2").InGame {
		t.Error("Expected second tired corner to stay in with no backup left")
	}
}

func TestStats_TotalAndMap(t *testing.T) {
	s, err := roster.StatsFromMap(map[string]float64{"tackles": 3, "sacks": 0.5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Total() != 3.5 {
		t.Errorf("Expected total 3.5, got %v", s.Total())
	}
	m := s.Map()
	if len(m) != 2 || m["sacks"] != 0.5 {
		t.Errorf("Expected only non-zero counters, got %v", m)
	}
	if len(roster.StatKeys()) != 22 {
		t.Errorf("Expected 22 stat keys, got %d", len(roster.StatKeys()))
	}
}

func TestStats_TotalIsStable(t *testing.T) {
	s, err := roster.StatsFromMap(map[string]float64{
		"tackles": 0.1, "sacks": 0.2, "punts": 0.3, "targets": 0.7, "carries": 1.1,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := s.Total()
	for i := 0; i < 500; i++ {
		if got := s.Total(); got != want {
			t.Fatalf("Call %d: expected total %v, got %v", i, want, got)
		}
	}
}

func TestDecode_YAML(t *testing.T) {
	doc := `
teams:
  - team_name: Pines
    offense:
      - {name: Ace, position: QB, passing: 88}
      - {name: Kick, position: K}
      - {name: Boot, position: P}
    defense:
      - {name: Wall, position: DL, in_game: true}
`
	league, err := roster.Decode(strings.NewReader(doc), roster.FormatYAML)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(league.Teams) != 1 || league.Teams[0].TeamName != "Pines" {
		t.Fatalf("Unexpected league: %+v", league)
	}
	qb := league.Teams[0].Offense[0]
	if qb.Passing == nil || *qb.Passing != 88 {
		t.Errorf("Expected passing 88, got %v", qb.Passing)
	}
	if qb.Speed != nil {
		t.Errorf("Expected absent speed to stay nil, got %v", *qb.Speed)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]roster.Format{
		"rosters.json":                      roster.FormatJSON,
		"rosters.YML":                       roster.FormatYAML,
		"https://example.com/r.yaml?raw=1": roster.FormatYAML,
		"no-extension":                      roster.FormatJSON,
	}
	for in, want := range tests {
		if got := roster.FormatFor(in); got != want {
			t.Errorf("FormatFor(%q) = %s, want %s", in, got, want)
		}
	}
}
