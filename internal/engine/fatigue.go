package engine

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
)

const (
	skillFatigueBase   = 1.8
	trenchFatigueBase  = 0.1
	generalFatigueTags = roster.TagSkillOffense | roster.TagSecondary | roster.TagLinebacker
)

// ApplyBaselineFatigue gives each player a pre-game fatigue roll. Low
// endurance raises both the chance and the ceiling.
func ApplyBaselineFatigue(r Rand, team *roster.Team) {
	for _, p := range team.Players() {
		base := (100 - p.Ratings.Endurance) / 10
		if chance(r, base/100) {
			ceiling := int(math.Round(base))
			if ceiling < 1 {
				p.SetFatigue(0)
				continue
			}
			p.SetFatigue(float64(randInt(r, 1, ceiling)))
		} else {
			p.SetFatigue(0)
		}
	}
}

// ApplyGeneralFatigue charges every active player for one snap
func ApplyGeneralFatigue(offense, defense []*roster.Player) {
	for _, side := range [][]*roster.Player{offense, defense} {
		for _, p := range side {
			base := trenchFatigueBase
			if p.Position.Has(generalFatigueTags) {
				base = skillFatigueBase
			}
			p.AddFatigue(base + (100-p.Ratings.Endurance)/100*base)
		}
	}
}

// ApplyRunFatigue charges skill players and run defenders for a run play.
// The ball carrier pays extra in proportion to the yards gained.
func ApplyRunFatigue(offense, defense []*roster.Player, rusher *roster.Player, yards float64) {
	for _, p := range offense {
		if !p.Position.Has(roster.TagSkillOffense) {
			continue
		}
		base := 1 + (100-p.Ratings.Endurance)/80
		cost := base * 0.75
		if p == rusher {
			cost = base + (1+yards/7)*(1+(100-p.Ratings.Endurance)/100)
		}
		p.AddFatigue(math.Round(cost))
	}

	for _, p := range defense {
		if p.Position == roster.DL || p.Position == roster.S || p.Position.Linebacker() {
			p.AddFatigue(math.Round(0.6 + (100-p.Ratings.Endurance)/110))
		}
	}
}

// ApplyPassFatigue charges receivers and coverage players for a pass play.
// receiver may be nil when no one caught the ball.
func ApplyPassFatigue(offense, defense []*roster.Player, receiver *roster.Player, yards float64) {
	for _, p := range offense {
		if !p.Position.Has(roster.TagSkillOffense) {
			continue
		}
		cost := 1 + (100-p.Ratings.Endurance)/80
		if p == receiver {
			cost += (1 + yards/10) * (1 + (100-p.Ratings.Endurance)/100)
		}
		p.AddFatigue(math.Round(cost))
	}

	for _, p := range defense {
		if p.Position.Has(roster.TagSecondary | roster.TagLinebacker) {
			p.AddFatigue(math.Round(0.5 + (100-p.Ratings.Endurance)/120))
		}
	}
}
