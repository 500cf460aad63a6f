package engine

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"go.uber.org/zap"
)

// Side identifies the home or away team
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Other returns the opposite side
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Score is a home/away point pair
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// HalfScore holds the points each team scored in one half
type HalfScore struct {
	Half int `json:"half"`
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameResult is everything a finished game produced. Player stats live on
// the returned teams.
type GameResult struct {
	Home          *roster.Team
	Away          *roster.Team
	Score         Score
	Halves        []HalfScore
	Drives        int
	OpeningKickTo Side
	Seed          int64
}

// SimulateFullGame is a convenience wrapper around New(opts...).SimulateFullGame
func SimulateFullGame(raw []roster.RawTeam, opts ...Option) (*GameResult, error) {
	return New(opts...).SimulateFullGame(raw)
}

// SimulateFullGame builds both teams from raw rosters and plays two halves.
// The first raw team is the home team.
func (e *Engine) SimulateFullGame(raw []roster.RawTeam) (*GameResult, error) {
	teams, err := roster.InitializeTeams(raw)
	if err != nil {
		return nil, fmt.Errorf("initializing teams: %w", err)
	}
	home, away := teams[0], teams[1]

	ApplyBaselineFatigue(e.rng, home)
	ApplyBaselineFatigue(e.rng, away)

	result := &GameResult{Home: home, Away: away, Seed: e.seed}
	receiver := e.DetermineReceivingTeam()
	result.OpeningKickTo = receiver

	for half := 1; half <= 2; half++ {
		hs, drives := e.PlayHalf(home, away, receiver, half)
		result.Halves = append(result.Halves, hs)
		result.Score.Home += hs.Home
		result.Score.Away += hs.Away
		result.Drives += drives
		receiver = receiver.Other()
	}

	e.logger.Info("final",
		zap.String("home", home.Name),
		zap.Int("home_score", result.Score.Home),
		zap.String("away", away.Name),
		zap.Int("away_score", result.Score.Away),
		zap.Int("drives", result.Drives))
	return result, nil
}

// DetermineReceivingTeam flips the coin; the winner usually elects to receive
func (e *Engine) DetermineReceivingTeam() Side {
	winner := Away
	if chance(e.rng, 0.5) {
		winner = Home
	}
	if chance(e.rng, e.tables.ReceiveProb) {
		return winner
	}
	return winner.Other()
}

// PlayHalf runs one half starting with a kickoff to receiver. It returns
// the points scored and the number of drives played.
func (e *Engine) PlayHalf(home, away *roster.Team, receiver Side, half int) (HalfScore, int) {
	teams := map[Side]*roster.Team{Home: home, Away: away}
	hs := HalfScore{Half: half}
	seconds := e.tables.HalfSeconds

	offense := receiver
	start, cost := e.kickoff(teams[offense.Other()])
	seconds -= cost

	drives := 0
	for seconds > 0 {
		hurrying := seconds <= e.tables.HurryWindow
		d := e.RunDrive(teams[offense], teams[offense.Other()], start, seconds, hurrying)
		seconds = d.Seconds
		drives++

		points := 0
		switch d.Result {
		case ResultTouchdown:
			points = 6
			if e.AttemptPAT(teams[offense].Kicker()) {
				points++
			}
			start, cost = e.kickoff(teams[offense])
			seconds -= cost
		case ResultFieldGoal:
			points = 3
			start, cost = e.kickoff(teams[offense])
			seconds -= cost
		default:
			start = 100 - d.Yardline
		}

		if offense == Home {
			hs.Home += points
		} else {
			hs.Away += points
		}
		if points > 0 {
			e.logger.Debug("score",
				zap.String("team", teams[offense].Name),
				zap.String("result", string(d.Result)),
				zap.Int("points", points))
		}
		offense = offense.Other()
	}

	e.logger.Info("end of half",
		zap.Int("half", half),
		zap.Int("home", hs.Home),
		zap.Int("away", hs.Away),
		zap.Int("drives", drives))
	return hs, drives
}

// kickoff resolves a kickoff by team and returns the receiver's start and
// the seconds it took
func (e *Engine) kickoff(team *roster.Team) (int, int) {
	start := e.Kickoff(team.Kicker())
	return start, randInt(e.rng, 4, 12)
}
