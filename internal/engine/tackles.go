package engine

import (
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
)

const maxCornerTacklers = 3

// tackle weights by position for short (<=2), mid (<=7) and long gains
var (
	shortTackleWeights = map[roster.Position]float64{
		roster.DL: 0.35, roster.ROLB: 0.20, roster.LOLB: 0.15, roster.MLB: 0.20, roster.S: 0.10,
	}
	midTackleWeights = map[roster.Position]float64{
		roster.ROLB: 0.25, roster.LOLB: 0.20, roster.MLB: 0.25, roster.S: 0.20, roster.DL: 0.10,
	}
	longTackleWeights = map[roster.Position]float64{
		roster.S: 0.40, roster.CB: 0.40, roster.ROLB: 0.08, roster.LOLB: 0.06, roster.MLB: 0.06,
	}
)

func tackleProfile(yards float64) map[roster.Position]float64 {
	switch {
	case yards <= 2:
		return shortTackleWeights
	case yards <= 7:
		return midTackleWeights
	default:
		return longTackleWeights
	}
}

func tackleSkill(p *roster.Player) float64 {
	return (p.Ratings.Tackling + p.Ratings.Intelligence) / 2
}

// AssignTackles credits the tackle on a play that gained yards. Roughly a
// third of tackles are assisted and credit two defenders.
func (e *Engine) AssignTackles(defense []*roster.Player, yards float64) []*roster.Player {
	if len(defense) == 0 {
		return nil
	}

	profile := tackleProfile(yards)
	var candidates []*roster.Player
	var weights []float64
	corners := 0
	for _, p := range defense {
		w, ok := profile[p.Position]
		if !ok {
			continue
		}
		if p.Position == roster.CB {
			if corners >= maxCornerTacklers {
				continue
			}
			corners++
		}
		candidates = append(candidates, p)
		weights = append(weights, w*tackleSkill(p))
	}

	var tacklers []*roster.Player
	switch {
	case len(candidates) == 0:
		all := make([]float64, len(defense))
		for i, p := range defense {
			all[i] = tackleSkill(p)
		}
		tacklers = []*roster.Player{weightedChoice(e.rng, defense, all)}
	case chance(e.rng, 0.35) && len(candidates) >= 2:
		tacklers = weightedSample(e.rng, candidates, weights, 2)
	default:
		tacklers = []*roster.Player{weightedChoice(e.rng, candidates, weights)}
	}

	for _, t := range tacklers {
		t.Stats.Tackles++
	}
	return tacklers
}

// AssignForcedFumble picks the defender who jarred the ball loose.
// Linebackers dominate short gains, safeties join on mid gains and the
// secondary owns long ones.
func (e *Engine) AssignForcedFumble(defense []*roster.Player, yards float64) *roster.Player {
	if len(defense) == 0 {
		return nil
	}

	eligible := func(p *roster.Player) bool {
		switch {
		case yards <= 2:
			return p.Position.Linebacker()
		case yards <= 7:
			return p.Position.Linebacker() || p.Position == roster.S
		default:
			return p.Position.Has(roster.TagSecondary)
		}
	}

	var candidates []*roster.Player
	for _, p := range defense {
		if eligible(p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = defense
	}

	weights := make([]float64, len(candidates))
	for i, p := range candidates {
		weights[i] = (p.Ratings.Tackling + p.Ratings.Strength) / 2
	}
	forcer := weightedChoice(e.rng, candidates, weights)
	forcer.Stats.ForcedFumbles++
	forcer.Stats.Tackles++
	return forcer
}

// AssignSack picks the pass rushers credited with a sack. A quarter of
// sacks are split between two picks, possibly the same player twice.
// It returns no sackers when nobody is eligible.
func (e *Engine) AssignSack(defense []*roster.Player, guessed bool) ([]*roster.Player, bool) {
	var candidates []*roster.Player
	var weights []float64
	for _, p := range defense {
		if p.Position == roster.DL || (guessed && p.Position.Linebacker()) {
			candidates = append(candidates, p)
			weights = append(weights, p.Ratings.Rushing)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	half := chance(e.rng, 0.25)
	picks := 1
	if half {
		picks = 2
	}
	sackers := make([]*roster.Player, 0, picks)
	for i := 0; i < picks; i++ {
		sackers = append(sackers, weightedChoice(e.rng, candidates, weights))
	}
	return sackers, half
}
