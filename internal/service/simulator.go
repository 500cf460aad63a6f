package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBatchTooLarge is returned when a batch asks for more games than allowed
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrEmptyBatch is returned when a batch names neither seeds nor a game count
	ErrEmptyBatch = errors.New("batch has no games")
)

// IsInvalidInput reports whether err was caused by the caller's request
// rather than by the simulator or a sink
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		roster.ErrUnknownPosition,
		roster.ErrMissingSpecialist,
		roster.ErrDuplicateSpecialist,
		roster.ErrTeamCount,
		roster.ErrEmptyRoster,
		roster.ErrUnknownStat,
		ErrBatchTooLarge,
		ErrEmptyBatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Options configures a Simulator
type Options struct {
	SportKey      string
	Tables        engine.Tables
	Workers       int
	MaxBatchGames int
	Logger        *zap.Logger
}

// Simulator runs games and hands finished results to every sink
type Simulator struct {
	sinks   []contracts.ResultSink
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
	newSeed func() (int64, error)
}

// NewSimulator creates a simulator writing to sinks in order
func NewSimulator(opts Options, sinks ...contracts.ResultSink) *Simulator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxBatchGames < 1 {
		opts.MaxBatchGames = 1000
	}
	if opts.SportKey == "" {
		opts.SportKey = "american_football_sim"
	}
	if opts.Tables.HalfSeconds == 0 {
		opts.Tables = engine.DefaultTables()
	}
	return &Simulator{
		sinks:   sinks,
		opts:    opts,
		logger:  opts.Logger.With(zap.String("component", "simulator")),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		newSeed: engine.NewSeed,
	}
}

// Sinks returns the names of the configured sinks
func (s *Simulator) Sinks() []string {
	names := make([]string, len(s.sinks))
	for i, sink := range s.sinks {
		names[i] = sink.Name()
	}
	return names
}

// Simulate plays one game and writes it to every sink. A failing sink is
// logged and skipped; the box score is still returned.
func (s *Simulator) Simulate(ctx context.Context, req models.SimulateRequest) (*models.BoxScore, error) {
	seed, err := s.seed(req.Seed)
	if err != nil {
		return nil, err
	}

	res, err := engine.New(
		engine.WithSeed(seed),
		engine.WithTables(s.opts.Tables),
		engine.WithLogger(s.opts.Logger.With(zap.String("component", "engine"))),
	).SimulateFullGame(RawTeams(req.Teams))
	if err != nil {
		return nil, err
	}

	box := BuildBoxScore(s.newID(), s.opts.SportKey, res, s.now().UTC())
	s.logger.Info("game simulated",
		zap.String("game_id", box.Game.GameID),
		zap.Int64("seed", seed),
		zap.String("home", box.Game.HomeTeam),
		zap.Int("home_score", box.Game.HomeScore),
		zap.String("away", box.Game.AwayTeam),
		zap.Int("away_score", box.Game.AwayScore))

	s.publish(ctx, box)
	return box, nil
}

func (s *Simulator) publish(ctx context.Context, box *models.BoxScore) {
	for _, sink := range s.sinks {
		if err := sink.WriteResult(ctx, box); err != nil {
			s.logger.Warn("failed to write result",
				zap.String("sink", sink.Name()),
				zap.String("game_id", box.Game.GameID),
				zap.Error(err))
		}
	}
}

func (s *Simulator) seed(requested *int64) (int64, error) {
	if requested != nil {
		return *requested, nil
	}
	seed, err := s.newSeed()
	if err != nil {
		return 0, fmt.Errorf("drawing seed: %w", err)
	}
	return seed, nil
}

// SimulateBatch plays many games in parallel and aggregates them. Batch
// games are not written to sinks.
func (s *Simulator) SimulateBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	seeds := req.Seeds
	if len(seeds) == 0 {
		if req.Games < 1 {
			return nil, ErrEmptyBatch
		}
		if req.Games > s.opts.MaxBatchGames {
			return nil, fmt.Errorf("%w: %d games requested, limit %d", ErrBatchTooLarge, req.Games, s.opts.MaxBatchGames)
		}
		seeds = make([]int64, req.Games)
		for i := range seeds {
			seed, err := s.seed(nil)
			if err != nil {
				return nil, err
			}
			seeds[i] = seed
		}
	}
	if len(seeds) > s.opts.MaxBatchGames {
		return nil, fmt.Errorf("%w: %d games requested, limit %d", ErrBatchTooLarge, len(seeds), s.opts.MaxBatchGames)
	}

	results, err := engine.RunBatch(ctx, RawTeams(req.Teams), seeds, s.opts.Workers, engine.WithTables(s.opts.Tables))
	if err != nil {
		return nil, err
	}

	sum := engine.Summarize(results)
	resp := &models.BatchResponse{
		HomeTeam:      results[0].Home.Name,
		AwayTeam:      results[0].Away.Name,
		Games:         sum.Games,
		HomeWins:      sum.HomeWins,
		AwayWins:      sum.AwayWins,
		Ties:          sum.Ties,
		AvgHomePoints: sum.AvgHome,
		AvgAwayPoints: sum.AvgAway,
		AvgDrives:     sum.AvgDrives,
		Seeds:         seeds,
	}

	s.logger.Info("batch simulated",
		zap.Int("games", sum.Games),
		zap.Int("home_wins", sum.HomeWins),
		zap.Int("away_wins", sum.AwayWins),
		zap.Int("ties", sum.Ties))
	return resp, nil
}
