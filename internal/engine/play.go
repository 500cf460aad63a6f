package engine

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

// PlayType is the kind of snap that was run
type PlayType string

const (
	PlayRun     PlayType = "run"
	PlayPass    PlayType = "pass"
	PlayPenalty PlayType = "penalty"
)

// Outcome is how a snap ended
type Outcome string

const (
	OutcomeRun              Outcome = "run"
	OutcomeFumble           Outcome = "fumble"
	OutcomeSack             Outcome = "sack"
	OutcomeInterception     Outcome = "interception"
	OutcomeCompletion       Outcome = "successful_pass"
	OutcomeCheckdown        Outcome = "checkdown_pass"
	OutcomeIncomplete       Outcome = "incomplete"
	OutcomeOffensivePenalty Outcome = "offensive penalty"
	OutcomeDefensivePenalty Outcome = "defensive penalty"
)

// DefenseCall is the defense's guess at the offensive play
type DefenseCall string

const (
	DefendRun  DefenseCall = "defend_run"
	DefendPass DefenseCall = "defend_pass"
)

// PlayContext is the situation a snap is resolved in
type PlayContext struct {
	Offense  *roster.Team
	Defense  *roster.Team
	Down     int
	Distance int
	Yardline int
	Hurrying bool
	LastPlay PlayType
	LastGain int
}

// PlayResult describes a resolved snap. For interceptions Yards is the
// return spot offset from the line of scrimmage; for sack fumbles it is
// the sack loss.
type PlayResult struct {
	Type    PlayType
	Outcome Outcome
	Yards   int
	Elapsed int
}

// Snap carries the situational inputs the run and pass resolvers need
type Snap struct {
	Down          int
	Distance      int
	Yardline      int
	Guessed       bool
	LineAdvantage int
}

// ResolvePlay runs one snap: fatigue and substitution upkeep, penalty
// checks, play calls, then run or pass resolution
func (e *Engine) ResolvePlay(pc PlayContext) PlayResult {
	e.upkeep(pc.Offense, pc.Defense)

	offense := pc.Offense.ActiveOffense()
	defense := pc.Defense.ActiveDefense()

	elapsed := randInt(e.rng, 25, 40)
	if pc.Hurrying {
		elapsed = randInt(e.rng, 10, 25)
	}

	if chance(e.rng, e.tables.OffensivePenaltyRate) {
		pen, yards := e.penalty(e.tables.OffensivePenalties)
		e.logger.Debug("offensive penalty", zap.String("penalty", pen), zap.Int("yards", yards))
		return PlayResult{Type: PlayPenalty, Outcome: OutcomeOffensivePenalty, Yards: yards, Elapsed: elapsed}
	}
	if chance(e.rng, e.tables.DefensivePenaltyRate) {
		pen, yards := e.penalty(e.tables.DefensivePenalties)
		e.logger.Debug("defensive penalty", zap.String("penalty", pen), zap.Int("yards", yards))
		return PlayResult{Type: PlayPenalty, Outcome: OutcomeDefensivePenalty, Yards: yards, Elapsed: elapsed}
	}

	call := e.ChooseOffense(pc.Down, pc.Distance, pc.LastPlay, pc.LastGain)
	dcall := e.ChooseDefense(pc.Down, pc.Distance)
	snap := Snap{
		Down:          pc.Down,
		Distance:      pc.Distance,
		Yardline:      pc.Yardline,
		Guessed:       (call == PlayRun && dcall == DefendRun) || (call == PlayPass && dcall == DefendPass),
		LineAdvantage: LineAdvantage(offense, defense, call, dcall),
	}

	var outcome Outcome
	var yards int
	if call == PlayRun {
		outcome, yards = e.ResolveRun(offense, defense, snap)
	} else {
		outcome, yards = e.ResolvePass(offense, defense, snap)
	}

	e.logger.Debug("play",
		zap.String("offense", pc.Offense.Name),
		zap.Int("down", pc.Down),
		zap.Int("distance", pc.Distance),
		zap.Int("yardline", pc.Yardline),
		zap.String("call", string(call)),
		zap.String("defense_call", string(dcall)),
		zap.String("outcome", string(outcome)),
		zap.Int("yards", yards))
	return PlayResult{Type: call, Outcome: outcome, Yards: yards, Elapsed: elapsed}
}

// upkeep runs the per-snap fatigue and substitution passes
func (e *Engine) upkeep(offense, defense *roster.Team) {
	ApplyGeneralFatigue(offense.ActiveOffense(), defense.ActiveDefense())
	offense.ApplyFatiguePenalties()
	defense.ApplyFatiguePenalties()
	offense.SubSkillPositionPlayers(e.tables.SubThreshold)
	defense.SubDefensivePlayers(e.tables.SubThreshold)
	offense.RecoverBenchPlayers()
	defense.RecoverBenchPlayers()
}

func (e *Engine) penalty(table []Penalty) (string, int) {
	weights := make([]float64, len(table))
	for i, p := range table {
		weights[i] = p.Weight
	}
	p := table[weightedIndex(e.rng, weights)]
	if p.MaxYards != 0 {
		return p.Name, randInt(e.rng, p.MinYards, p.MaxYards)
	}
	return p.Name, p.Yards
}

// ChooseOffense picks run or pass from the down and distance table, nudged
// by the previous play
func (e *Engine) ChooseOffense(down, toGo int, last PlayType, lastGain int) PlayType {
	if chance(e.rng, e.RunChance(down, toGo, last, lastGain)) {
		return PlayRun
	}
	return PlayPass
}

// RunChance is the momentum adjusted run probability
func (e *Engine) RunChance(down, toGo int, last PlayType, lastGain int) float64 {
	t := e.tables
	p := t.runProbability(down, toGo)
	switch {
	case last == PlayRun && lastGain >= t.MomentumRunGain:
		p += t.MomentumRunBonus
	case last == PlayPass && lastGain >= t.MomentumPassGain:
		p -= t.MomentumPassMinus
	}
	return clamp(p, t.MinRunChance, t.MaxRunChance)
}

// ChooseDefense picks the defense's guess from its own table
func (e *Engine) ChooseDefense(down, toGo int) DefenseCall {
	row := e.tables.defenseRow(down, toGo)
	if row.Prob >= 1 {
		return row.Call
	}
	if chance(e.rng, row.Prob) {
		return row.Call
	}
	if row.Call == DefendRun {
		return DefendPass
	}
	return DefendRun
}

// LineAdvantage is offensive blocking minus defensive rush for a call pairing
func LineAdvantage(offense, defense []*roster.Player, call PlayType, dcall DefenseCall) int {
	var block, rush float64
	for _, p := range offense {
		if p.Position != roster.OL && !(call == PlayRun && p.Position == roster.TE) {
			continue
		}
		block += p.Ratings.Strength
		if call == PlayRun {
			block += p.Ratings.RunBlocking
		} else {
			block += p.Ratings.PassBlocking
		}
	}
	for _, p := range defense {
		if p.Position == roster.DL || (dcall == DefendRun && p.Position.Linebacker()) {
			rush += p.Ratings.Strength + p.Ratings.Rushing
		}
	}
	return int(math.Round(block - rush))
}
