package engine

import (
	"math"
	"sort"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

const (
	maxCompletionYards = 40
	maxPickChance      = 0.03
	checkdownRate      = 0.18
)

func quarterback(offense []*roster.Player) *roster.Player {
	var best *roster.Player
	for _, p := range offense {
		if p.Position == roster.QB {
			return p
		}
		if best == nil || p.Ratings.Passing > best.Ratings.Passing {
			best = p
		}
	}
	return best
}

func receiverSkill(p *roster.Player) float64 {
	return (p.Ratings.RouteRunning + p.Ratings.Hands + p.Ratings.Intelligence) / 3
}

// progression orders WR/TE targets by skill with a random tiebreak
func (e *Engine) progression(offense []*roster.Player) []*roster.Player {
	type entry struct {
		p      *roster.Player
		weight float64
		tie    float64
	}
	var entries []entry
	for _, p := range offense {
		if p.Position == roster.WR || p.Position == roster.TE {
			entries = append(entries, entry{p, receiverSkill(p), e.rng.Float64()})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].tie < entries[j].tie
	})
	out := make([]*roster.Player, len(entries))
	for i, en := range entries {
		out[i] = en.p
	}
	return out
}

func coverageEligible(p *roster.Player, guessed bool) bool {
	return p.Position.Has(roster.TagSecondary) || (guessed && p.Position.Linebacker())
}

// ResolvePass resolves a pass play: sack, completion, checkdown,
// interception, scramble or incompletion, checked in that order
func (e *Engine) ResolvePass(offense, defense []*roster.Player, s Snap) (Outcome, int) {
	qb := quarterback(offense)

	sackRate := 0.005 + 0.005*float64(s.Down)
	if s.Guessed {
		sackRate += 0.1
	}
	sackRate -= float64(s.LineAdvantage) / 5000
	if chance(e.rng, sackRate) {
		return e.sack(qb, offense, defense, s)
	}

	var coverage float64
	var speedSum float64
	var speedCount int
	for _, d := range defense {
		if coverageEligible(d, s.Guessed) {
			coverage += d.Ratings.Coverage / 1000
		}
		if d.Position.Has(roster.TagSecondary) {
			speedSum += d.Ratings.Speed
			speedCount++
		}
	}
	avgDefSpeed := 50.0
	if speedCount > 0 && speedSum > 0 {
		avgDefSpeed = speedSum / float64(speedCount)
	}

	completion := 0.35 + (qb.Ratings.Intelligence+qb.Ratings.Passing+qb.Ratings.DecisionMaking)/1000
	targets := e.progression(offense)
	if s.Down == 3 || s.Yardline > 80 {
		for _, p := range targets {
			if p.Position == roster.TE {
				completion += 0.05
			}
		}
	}

	var receiver *roster.Player
	for _, p := range targets {
		completion += (p.Ratings.RouteRunning-50)/200 + (p.Ratings.Speed-50)/300 - coverage/1.9
		if completion < 0 {
			completion = 0.01
		}
		if chance(e.rng, completion) {
			receiver = p
			break
		}
		completion -= 0.05
	}

	if receiver != nil {
		ratio := receiver.Ratings.Speed / avgDefSpeed
		gain := gauss(e.rng, 9.5, 4) * ratio
		if ratio > 1 && chance(e.rng, 0.1) {
			gain = float64(randInt(e.rng, 20, 70))
		}
		yards := int(math.Min(math.Round(gain), maxCompletionYards))
		yards = e.catchAndRun(qb, receiver, defense, s.Yardline, yards)
		ApplyPassFatigue(offense, defense, receiver, float64(yards))
		e.logger.Debug("completion", zap.String("receiver", receiver.Name), zap.Int("yards", yards))
		return OutcomeCompletion, yards
	}

	if chance(e.rng, checkdownRate) {
		var backs []*roster.Player
		for _, p := range offense {
			if p.Position == roster.RB {
				backs = append(backs, p)
			}
		}
		if len(backs) > 0 {
			rb := backs[e.rng.Intn(len(backs))]
			gain := gauss(e.rng, 3, 2)
			if chance(e.rng, rb.Ratings.Speed/100) {
				gain += float64(randInt(e.rng, 1, 9))
			}
			yards := int(math.Round(math.Max(0, gain)))
			yards = e.catchAndRun(qb, rb, defense, s.Yardline, yards)
			ApplyPassFatigue(offense, defense, rb, float64(yards))
			e.logger.Debug("checkdown", zap.String("receiver", rb.Name), zap.Int("yards", yards))
			return OutcomeCheckdown, yards
		}
	}

	if defender, pick := e.bestCoverage(qb, defense, s.Guessed); defender != nil && chance(e.rng, math.Min(pick, maxPickChance)) {
		qb.Stats.PassAttempts++
		qb.Stats.InterceptionsThrown++
		defender.Stats.Interceptions++
		ApplyPassFatigue(offense, defense, nil, 0)
		e.logger.Debug("interception", zap.String("defender", defender.Name))
		return OutcomeInterception, 10
	}

	if yards, ok := e.Scramble(qb); ok {
		if s.Yardline+yards >= 100 {
			yards = 100 - s.Yardline
			qb.Stats.Touchdowns++
		} else {
			e.AssignTackles(defense, float64(yards))
		}
		qb.Stats.Carries++
		qb.Stats.RushYards += float64(yards)
		ApplyRunFatigue(offense, defense, qb, float64(yards))
		e.logger.Debug("scramble", zap.String("qb", qb.Name), zap.Int("yards", yards))
		return OutcomeRun, yards
	}

	intended := e.intendedReceiver(offense)
	qb.Stats.PassAttempts++
	if intended != nil {
		intended.Stats.Targets++
	}
	ApplyPassFatigue(offense, defense, nil, 0)
	return OutcomeIncomplete, 0
}

// catchAndRun records a completion and clamps it at the goal line
func (e *Engine) catchAndRun(qb, receiver *roster.Player, defense []*roster.Player, yardline, yards int) int {
	if yardline+yards >= 100 {
		yards = 100 - yardline
		qb.Stats.Touchdowns++
		receiver.Stats.Touchdowns++
	} else {
		e.AssignTackles(defense, float64(yards))
	}
	qb.Stats.PassAttempts++
	qb.Stats.Completions++
	qb.Stats.PassYards += float64(yards)
	receiver.Stats.Targets++
	receiver.Stats.Receptions++
	receiver.Stats.ReceivingYards += float64(yards)
	return yards
}

func (e *Engine) sack(qb *roster.Player, offense, defense []*roster.Player, s Snap) (Outcome, int) {
	loss := -int(math.Abs(math.Round(gauss(e.rng, 8, 2))))
	sackers, half := e.AssignSack(defense, s.Guessed)
	credit := 1.0
	if half {
		credit = 0.5
	}
	for _, d := range sackers {
		d.Stats.Sacks += credit
		d.Stats.Tackles++
	}
	qb.Stats.SacksTaken++

	fumble := 0.02 + (100-qb.Ratings.Strength)/100*0.01 + (100-qb.Ratings.Intelligence)/100*0.005
	if chance(e.rng, fumble) {
		qb.Stats.Fumbles++
		for _, d := range sackers {
			d.Stats.ForcedFumbles += credit
		}
		ApplyPassFatigue(offense, defense, nil, 0)
		e.logger.Debug("strip sack", zap.String("qb", qb.Name), zap.Int("yards", loss))
		return OutcomeFumble, loss
	}

	ApplyPassFatigue(offense, defense, nil, 0)
	e.logger.Debug("sack", zap.String("qb", qb.Name), zap.Int("yards", loss))
	return OutcomeSack, loss
}

// bestCoverage returns the coverage defender most likely to pick the pass
func (e *Engine) bestCoverage(qb *roster.Player, defense []*roster.Player, guessed bool) (*roster.Player, float64) {
	var best *roster.Player
	var highest float64
	for _, d := range defense {
		if !coverageEligible(d, guessed) {
			continue
		}
		c := 0.02 + d.Ratings.Coverage/10000
		if guessed {
			c += 0.005
		}
		c += (100 - qb.Ratings.DecisionMaking) / 2000
		if c > highest {
			highest, best = c, d
		}
	}
	return best, highest
}

// Scramble rolls whether the quarterback escapes the pocket and, if so,
// how many yards the scramble gains
func (e *Engine) Scramble(qb *roster.Player) (int, bool) {
	escape := math.Max(0.05, (100-qb.Ratings.Intelligence)/150)
	if qb.Ratings.Speed < 60 {
		escape *= 0.5
	}
	if !chance(e.rng, escape) {
		return 0, false
	}

	gainOdds := clamp(0.5+(qb.Ratings.Speed-50)/100, 0.1, 0.95)
	gain := randInt(e.rng, 1, 12)
	loss := -randInt(e.rng, 1, 6)
	if chance(e.rng, gainOdds) {
		return gain, true
	}
	return loss, true
}

// intendedReceiver picks who an incompletion was thrown at. Backs are
// heavily discounted.
func (e *Engine) intendedReceiver(offense []*roster.Player) *roster.Player {
	var candidates []*roster.Player
	var weights []float64
	var nonBackTotal float64
	backs := 0
	for _, p := range offense {
		switch p.Position {
		case roster.WR, roster.TE:
			w := receiverSkill(p)
			candidates, weights = append(candidates, p), append(weights, w)
			nonBackTotal += w
		case roster.RB:
			candidates, weights = append(candidates, p), append(weights, 0)
			backs++
		}
	}
	if len(candidates) == 0 {
		if len(offense) == 0 {
			return nil
		}
		return offense[e.rng.Intn(len(offense))]
	}
	if backs > 0 {
		backWeight := 0.01 * nonBackTotal / float64(backs)
		for i, p := range candidates {
			if p.Position == roster.RB {
				weights[i] = backWeight
			}
		}
	}
	return weightedChoice(e.rng, candidates, weights)
}
