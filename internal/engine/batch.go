package engine

import (
	"context"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"golang.org/x/sync/errgroup"
)

// RunBatch plays one independent game per seed, at most workers at a time.
// Every game builds its own rosters and random source, so results match
// running the same seeds one after another.
func RunBatch(ctx context.Context, raw []roster.RawTeam, seeds []int64, workers int, opts ...Option) ([]*GameResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*GameResult, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gameOpts := make([]Option, 0, len(opts)+1)
			gameOpts = append(gameOpts, opts...)
			gameOpts = append(gameOpts, WithSeed(seed))

			res, err := New(gameOpts...).SimulateFullGame(raw)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchSummary aggregates scores over many games
type BatchSummary struct {
	Games     int     `json:"games" yaml:"games"`
	HomeWins  int     `json:"home_wins" yaml:"home_wins"`
	AwayWins  int     `json:"away_wins" yaml:"away_wins"`
	Ties      int     `json:"ties" yaml:"ties"`
	AvgHome   float64 `json:"avg_home_points" yaml:"avg_home_points"`
	AvgAway   float64 `json:"avg_away_points" yaml:"avg_away_points"`
	AvgDrives float64 `json:"avg_drives" yaml:"avg_drives"`
}

// Summarize aggregates a batch of results
func Summarize(results []*GameResult) BatchSummary {
	var s BatchSummary
	var home, away, drives int
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Games++
		home += r.Score.Home
		away += r.Score.Away
		drives += r.Drives
		switch {
		case r.Score.Home > r.Score.Away:
			s.HomeWins++
		case r.Score.Away > r.Score.Home:
			s.AwayWins++
		default:
			s.Ties++
		}
	}
	if s.Games > 0 {
		n := float64(s.Games)
		s.AvgHome = float64(home) / n
		s.AvgAway = float64(away) / n
		s.AvgDrives = float64(drives) / n
	}
	return s
}
