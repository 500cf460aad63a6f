package roster

import (
	"fmt"
	"sort"
)

// Team owns two disjoint ordered rosters
type Team struct {
	Name    string
	Offense []*Player
	Defense []*Player

	kicker *Player
	punter *Player
}

// NewTeam builds and validates a team from raw input
func NewTeam(raw RawTeam) (*Team, error) {
	if len(raw.Offense) == 0 || len(raw.Defense) == 0 {
		return nil, fmt.Errorf("team %q: %w", raw.TeamName, ErrEmptyRoster)
	}

	t := &Team{Name: raw.TeamName}
	for _, rp := range raw.Offense {
		p, err := NewPlayer(rp)
		if err != nil {
			return nil, fmt.Errorf("team %q offense: %w", raw.TeamName, err)
		}
		t.Offense = append(t.Offense, p)
	}
	for _, rp := range raw.Defense {
		p, err := NewPlayer(rp)
		if err != nil {
			return nil, fmt.Errorf("team %q defense: %w", raw.TeamName, err)
		}
		t.Defense = append(t.Defense, p)
	}

	var err error
	if t.kicker, err = t.specialist(K); err != nil {
		return nil, err
	}
	if t.punter, err = t.specialist(P); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Team) specialist(pos Position) (*Player, error) {
	var found *Player
	for _, p := range t.Offense {
		if p.Position != pos {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("team %q position %s: %w", t.Name, pos, ErrDuplicateSpecialist)
		}
		found = p
	}
	if found == nil {
		return nil, fmt.Errorf("team %q position %s: %w", t.Name, pos, ErrMissingSpecialist)
	}
	return found, nil
}

// Kicker returns the team's single K
func (t *Team) Kicker() *Player { return t.kicker }

// Punter returns the team's single P
func (t *Team) Punter() *Player { return t.punter }

// ActiveOffense returns offensive players currently on the field
func (t *Team) ActiveOffense() []*Player { return active(t.Offense) }

// ActiveDefense returns defensive players currently on the field
func (t *Team) ActiveDefense() []*Player { return active(t.Defense) }

// AllOffense returns a copy of the full offensive roster
func (t *Team) AllOffense() []*Player { return append([]*Player(nil), t.Offense...) }

// AllDefense returns a copy of the full defensive roster
func (t *Team) AllDefense() []*Player { return append([]*Player(nil), t.Defense...) }

// Players returns offense then defense
func (t *Team) Players() []*Player {
	all := make([]*Player, 0, len(t.Offense)+len(t.Defense))
	all = append(all, t.Offense...)
	return append(all, t.Defense...)
}

// PlayerByName finds a player on either side
func (t *Team) PlayerByName(name string) *Player {
	for _, p := range t.Players() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func active(players []*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.InGame {
			out = append(out, p)
		}
	}
	return out
}

// activateIdleSides puts a whole side on the field when nobody was flagged in_game
func (t *Team) activateIdleSides() {
	for _, side := range [][]*Player{t.Offense, t.Defense} {
		if len(active(side)) > 0 {
			continue
		}
		for _, p := range side {
			p.InGame = true
		}
	}
}

// ApplyFatiguePenalties recomputes every player's ratings from their baseline
func (t *Team) ApplyFatiguePenalties() {
	for _, p := range t.Players() {
		p.ApplyFatiguePenalty()
	}
}

// RecoverBenchPlayers lets benched players shed endurance/10 fatigue
func (t *Team) RecoverBenchPlayers() {
	for _, p := range t.Players() {
		if !p.InGame {
			p.SetFatigue(p.Fatigue - p.Ratings.Endurance/10)
		}
	}
}

var skillGroups = []Position{RB, WR, TE}

// SubSkillPositionPlayers swaps tired RB/WR/TE starters for rested backups.
// Backups are ordered by production, then by freshness.
func (t *Team) SubSkillPositionPlayers(threshold float64) {
	for _, pos := range skillGroups {
		swap(t.Offense, pos, threshold, func(a, b *Player) bool {
			if sa, sb := a.Stats.Total(), b.Stats.Total(); sa != sb {
				return sa > sb
			}
			return a.Fatigue < b.Fatigue
		})
	}
}

// SubDefensivePlayers swaps tired defenders for rested backups at the same
// position. Backups are ordered by freshness, then by production.
func (t *Team) SubDefensivePlayers(threshold float64) {
	seen := make(map[Position]bool)
	for _, p := range t.Defense {
		if seen[p.Position] {
			continue
		}
		seen[p.Position] = true
		swap(t.Defense, p.Position, threshold, func(a, b *Player) bool {
			if a.Fatigue != b.Fatigue {
				return a.Fatigue < b.Fatigue
			}
			return a.Stats.Total() > b.Stats.Total()
		})
	}
}

func swap(side []*Player, pos Position, threshold float64, better func(a, b *Player) bool) {
	var tired, bench []*Player
	for _, p := range side {
		if p.Position != pos {
			continue
		}
		switch {
		case p.InGame && p.Fatigue > threshold:
			tired = append(tired, p)
		case !p.InGame && p.Fatigue <= threshold:
			bench = append(bench, p)
		}
	}
	if len(tired) == 0 || len(bench) == 0 {
		return
	}

	sort.SliceStable(bench, func(i, j int) bool { return better(bench[i], bench[j]) })
	for i := 0; i < len(tired) && i < len(bench); i++ {
		tired[i].InGame = false
		bench[i].InGame = true
	}
}

// InitializeTeams builds the two teams for a game
func InitializeTeams(raw []RawTeam) ([]*Team, error) {
	if len(raw) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTeamCount, len(raw))
	}

	teams := make([]*Team, 0, len(raw))
	for _, rt := range raw {
		team, err := NewTeam(rt)
		if err != nil {
			return nil, err
		}
		team.activateIdleSides()
		teams = append(teams, team)
	}
	return teams, nil
}
