package engine

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

// ratingSwing rolls a rating driven adjustment. Ratings far from 50 are
// more likely to matter and matter more; the returned multiplier is 1
// when the roll misses.
func ratingSwing(r Rand, rating float64, favourable bool) float64 {
	dev := rating
	if rating < 50 {
		dev = 100 - rating
	}
	factor := dev / 250
	if !chance(r, dev/100*0.5) {
		return 1
	}
	if (rating >= 50) == favourable {
		return 1 + factor
	}
	return 1 - factor
}

func runBaseYards(down, toGo, advantage int) float64 {
	base := 4.5
	switch down {
	case 2:
		base -= 0.5
	case 3:
		base -= 5.5
		if toGo > 6 {
			base *= 0.75
		}
	}
	return base * (1 + float64(advantage)/750)
}

func (e *Engine) pickCarrier(offense []*roster.Player) *roster.Player {
	var candidates []*roster.Player
	var weights []float64
	for _, p := range offense {
		switch {
		case p.Position == roster.RB:
			candidates, weights = append(candidates, p), append(weights, 0.8)
		case p.Position == roster.WR:
			candidates, weights = append(candidates, p), append(weights, 0.03)
		case p.Position == roster.QB && p.Ratings.Speed > 60:
			candidates, weights = append(candidates, p), append(weights, p.Ratings.Speed/1000)
		}
	}
	if len(candidates) == 0 {
		candidates = offense
		weights = make([]float64, len(offense))
		for i := range weights {
			weights[i] = 1
		}
	}
	return weightedChoice(e.rng, candidates, weights)
}

// ResolveRun resolves a designed run and returns its outcome and rounded yards
func (e *Engine) ResolveRun(offense, defense []*roster.Player, s Snap) (Outcome, int) {
	base := runBaseYards(s.Down, s.Distance, s.LineAdvantage)

	for _, d := range defense {
		if d.Position == roster.DL || d.Position.Linebacker() {
			base *= ratingSwing(e.rng, d.Ratings.Tackling, false)
		}
	}

	carrier := e.pickCarrier(offense)
	base *= ratingSwing(e.rng, carrier.Ratings.Speed, true)
	base *= ratingSwing(e.rng, carrier.Ratings.Strength, true)
	base *= ratingSwing(e.rng, carrier.Ratings.Intelligence, true)
	if carrier.Position == roster.RB {
		base *= ratingSwing(e.rng, carrier.Ratings.Elusiveness, true)
		base *= ratingSwing(e.rng, carrier.Ratings.Vision, true)
	}

	fumble := 0.003 +
		(100-carrier.Ratings.Strength)/100*0.005 +
		(100-carrier.Ratings.Intelligence)/100*0.005
	if chance(e.rng, fumble) {
		carrier.Stats.Carries++
		carrier.Stats.RushYards += math.Round(base)
		carrier.Stats.Fumbles++
		ApplyRunFatigue(offense, defense, carrier, base)
		forcer := e.AssignForcedFumble(defense, base)
		e.logger.Debug("fumble",
			zap.String("carrier", carrier.Name),
			zap.String("forced_by", nameOf(forcer)))
		return OutcomeFumble, 0
	}

	if carrier.Ratings.Speed > 75 && chance(e.rng, 0.1) {
		base += float64(randInt(e.rng, 15, 40))
	}
	if s.Guessed && chance(e.rng, 0.5) {
		base -= float64(randInt(e.rng, 1, 10))
	}
	if s.Distance <= 2 && base > -1.25 && chance(e.rng, 0.6) {
		base = float64(s.Distance)
	}
	if base < 2.0 {
		base = math.Max(base, uniform(e.rng, 1.5, 3.5))
	}

	yards := int(math.Round(base))
	if s.Yardline+yards >= 100 {
		yards = 100 - s.Yardline
		carrier.Stats.Touchdowns++
	}

	carrier.Stats.Carries++
	carrier.Stats.RushYards += float64(yards)
	ApplyRunFatigue(offense, defense, carrier, float64(yards))
	if s.Yardline+yards < 100 {
		e.AssignTackles(defense, float64(yards))
	}

	e.logger.Debug("run", zap.String("carrier", carrier.Name), zap.Int("yards", yards))
	return OutcomeRun, yards
}

func nameOf(p *roster.Player) string {
	if p == nil {
		return ""
	}
	return p.Name
}
