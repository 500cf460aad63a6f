package engine

import (
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

const (
	// DownTurnover and DownTouchdown are terminal sentinels stored in Down
	DownTurnover  = 5
	DownTouchdown = 6

	// MaxSnapsPerDrive bounds a drive that keeps trading penalties
	MaxSnapsPerDrive = 100
)

// DriveResult is how a possession ended
type DriveResult string

const (
	ResultTouchdown  DriveResult = "touchdown"
	ResultFieldGoal  DriveResult = "field goal"
	ResultMissedKick DriveResult = "missed kick"
	ResultPunt       DriveResult = "punt"
	ResultTurnover   DriveResult = "turnover"
)

// DriveState is the down and distance state machine for one possession
type DriveState struct {
	Down     int
	Distance int
	Yardline int
	LastPlay PlayType
	LastGain int
}

// NewDriveState starts a possession at first and ten
func NewDriveState(yardline int) DriveState {
	return DriveState{Down: 1, Distance: 10, Yardline: clampInt(yardline, 1, 99)}
}

// Terminal reports whether the possession is over on downs, by turnover
// or by touchdown
func (s DriveState) Terminal() bool {
	return s.Down >= DownTurnover
}

// ApplyPlay advances the drive state by one resolved play
func ApplyPlay(s DriveState, res PlayResult) DriveState {
	switch res.Outcome {
	case OutcomeFumble:
		if res.Type == PlayPass {
			s.Yardline += res.Yards
		}
		s.Down = DownTurnover
	case OutcomeInterception:
		s.Yardline = min(s.Yardline+res.Yards, 99)
		s.Down = DownTurnover
	case OutcomeRun, OutcomeCompletion, OutcomeCheckdown, OutcomeSack:
		s.Yardline += res.Yards
		s.Distance -= res.Yards
		s.Down++
	case OutcomeOffensivePenalty:
		before := s.Yardline
		s.Yardline = max(0, s.Yardline+res.Yards)
		s.Distance += before - s.Yardline
	case OutcomeDefensivePenalty:
		before := s.Yardline
		s.Yardline = min(99, s.Yardline+res.Yards)
		s.Distance = max(0, s.Distance-(s.Yardline-before))
	case OutcomeIncomplete:
		s.Down++
	}

	if s.Yardline < 0 {
		s.Yardline = 0
	}
	if s.Down < DownTurnover && s.Distance <= 0 {
		s.Down = 1
		s.Distance = 10
	}
	if s.Yardline >= 100 {
		s.Yardline = 100
		s.Down = DownTouchdown
	}

	s.LastPlay = res.Type
	s.LastGain = res.Yards
	return s
}

// ShouldGoForIt makes the fourth down decision
func (e *Engine) ShouldGoForIt(distance, yardline int) bool {
	switch {
	case yardline < 50:
		return distance <= 1 && chance(e.rng, 0.3)
	case distance <= 2 && yardline < 70:
		return chance(e.rng, 0.5)
	case yardline > 85:
		return distance <= 5 && chance(e.rng, 0.6)
	}
	return false
}

// DriveSummary is the outcome of RunDrive
type DriveSummary struct {
	LastPlay PlayType
	Result   DriveResult
	Yardline int
	Seconds  int
	Plays    int
}

// RunDrive plays one possession from yardline until it ends in a score,
// a turnover, a punt or a field goal try. seconds is the clock before
// the drive; the returned summary carries what is left.
func (e *Engine) RunDrive(offense, defense *roster.Team, yardline, seconds int, hurrying bool) DriveSummary {
	st := NewDriveState(yardline)
	summary := DriveSummary{}

	for !st.Terminal() {
		if st.Down == 4 {
			forced := summary.Plays >= MaxSnapsPerDrive
			if forced || !e.ShouldGoForIt(st.Distance, st.Yardline) {
				return e.kickOrPunt(offense, st, seconds, summary)
			}
		}

		res := e.ResolvePlay(PlayContext{
			Offense:  offense,
			Defense:  defense,
			Down:     st.Down,
			Distance: st.Distance,
			Yardline: st.Yardline,
			Hurrying: hurrying,
			LastPlay: st.LastPlay,
			LastGain: st.LastGain,
		})
		seconds -= res.Elapsed
		st = ApplyPlay(st, res)
		summary.Plays++
		summary.LastPlay = res.Type

		if summary.Plays >= MaxSnapsPerDrive && st.Down < 4 {
			st.Down = 4
		}
	}

	summary.Yardline = st.Yardline
	summary.Seconds = seconds
	if st.Down == DownTouchdown {
		summary.Result = ResultTouchdown
	} else {
		summary.Result = ResultTurnover
	}
	e.logger.Debug("drive",
		zap.String("offense", offense.Name),
		zap.String("result", string(summary.Result)),
		zap.Int("plays", summary.Plays))
	return summary
}

func (e *Engine) kickOrPunt(offense *roster.Team, st DriveState, seconds int, summary DriveSummary) DriveSummary {
	kicker := offense.Kicker()
	summary.Yardline = st.Yardline

	if st.Yardline >= KickRange(kicker) {
		seconds -= randInt(e.rng, 5, 7)
		if e.AttemptFieldGoal(st.Yardline, kicker) {
			summary.Result = ResultFieldGoal
		} else {
			summary.Result = ResultMissedKick
		}
	} else {
		summary.Yardline = e.Punt(st.Yardline, offense.Punter())
		seconds -= randInt(e.rng, 6, 10)
		summary.Result = ResultPunt
	}

	summary.Seconds = seconds
	e.logger.Debug("drive",
		zap.String("offense", offense.Name),
		zap.String("result", string(summary.Result)),
		zap.Int("plays", summary.Plays))
	return summary
}
