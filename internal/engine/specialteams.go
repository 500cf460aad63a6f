package engine

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

const (
	kickoffOutOfBoundsSpot = 40
	touchbackSpot          = 25
	puntTouchbackSpot      = 80
	baseKickRange          = 65
)

// Kickoff resolves a kickoff and returns the receiving team's starting
// yardline on its own 0-100 scale
func (e *Engine) Kickoff(kicker *roster.Player) int {
	power := kicker.Ratings.KickPower
	accuracy := kicker.Ratings.KickAccuracy

	landing := clamp(45+power*0.5+uniform(e.rng, -5, 5), 0, 100)

	var spot int
	switch {
	case chance(e.rng, math.Max(0.15-accuracy/100*0.15, 0.01)):
		spot = kickoffOutOfBoundsSpot
	case landing >= 95:
		spot = touchbackSpot
	case chance(e.rng, 0.1):
		spot = 100 - int(math.Round(landing))
	default:
		spot = int(math.Round(100 - landing + float64(randInt(e.rng, 10, 35))))
	}
	spot = clampInt(spot, 1, 99)

	e.logger.Debug("kickoff",
		zap.String("kicker", kicker.Name),
		zap.Float64("landing", landing),
		zap.Int("start", spot))
	return spot
}

// KickRange is the yardline from which a kicker will attempt a field goal
func KickRange(kicker *roster.Player) int {
	return int(math.Round(baseKickRange - (kicker.Ratings.KickPower-50)/5))
}

// FieldGoalProbability returns the make chance from a yardline
func FieldGoalProbability(yardline int, accuracy float64) float64 {
	distance := (100 - yardline) + 17
	var prob float64
	switch {
	case distance <= 30:
		prob = 0.98
	case distance <= 39:
		prob = 0.94
	case distance <= 49:
		prob = 0.85
	case distance <= 55:
		prob = 0.65
	default:
		prob = 0.40
	}
	return clamp(prob+(accuracy-50)*0.005, 0.05, 1.0)
}

// AttemptFieldGoal rolls a field goal and records it on the kicker
func (e *Engine) AttemptFieldGoal(yardline int, kicker *roster.Player) bool {
	kicker.Stats.FGAttempted++
	made := chance(e.rng, FieldGoalProbability(yardline, kicker.Ratings.KickAccuracy))
	if made {
		kicker.Stats.FGMade++
	}
	e.logger.Debug("field goal attempt",
		zap.String("kicker", kicker.Name),
		zap.Int("distance", (100-yardline)+17),
		zap.Bool("good", made))
	return made
}

// PATProbability returns the extra point make chance
func PATProbability(accuracy float64) float64 {
	return clamp(0.94+(accuracy-50)*0.005, 0.80, 0.99)
}

// AttemptPAT rolls an extra point and records it on the kicker
func (e *Engine) AttemptPAT(kicker *roster.Player) bool {
	kicker.Stats.PATAttempts++
	made := chance(e.rng, PATProbability(kicker.Ratings.KickAccuracy))
	if made {
		kicker.Stats.PATMade++
	}
	return made
}

// PuntDistance draws a gross punt distance
func (e *Engine) PuntDistance(punter *roster.Player) int {
	return int(math.Round(gauss(e.rng, 47, 4))) + int(math.Round((punter.Ratings.PuntPower-50)/5))
}

// Punt resolves a punt from yardline and returns where the ball ends up
// on the kicking team's scale
func (e *Engine) Punt(yardline int, punter *roster.Player) int {
	landing := yardline + e.PuntDistance(punter)

	var final int
	if landing < 90 {
		final = landing - randInt(e.rng, 0, 15)
		if final < 1 {
			final = 1
		}
	} else {
		pin := 0.25 + (punter.Ratings.PuntAccuracy-50)/100
		if chance(e.rng, pin) {
			final = 100 - randInt(e.rng, 1, 4)
		} else {
			final = puntTouchbackSpot
		}
	}

	punter.Stats.Punts++
	punter.Stats.PuntYards += float64(final - yardline)

	e.logger.Debug("punt",
		zap.String("punter", punter.Name),
		zap.Int("from", yardline),
		zap.Int("to", final))
	return final
}
