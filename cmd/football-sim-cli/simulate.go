package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/render"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/roster"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/service"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/store"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/writers"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	sportKey = "american_football_sim"
)

type simulateOptions struct {
	input   string
	output  string
	seed    *int64
	format  string
	verbose bool
	copy    bool
	tuning  string
	games   int
	workers int
	db      string
	players bool

	// logger overrides the stderr logger, for tests
	logger *zap.Logger
}

// batchOutput is the json/yaml shape of a multi-game run
type batchOutput struct {
	HomeTeam string              `json:"home_team" yaml:"home_team"`
	AwayTeam string              `json:"away_team" yaml:"away_team"`
	Summary  engine.BatchSummary `json:"summary" yaml:"summary"`
	Seeds    []int64             `json:"seeds" yaml:"seeds"`
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func runSimulate(ctx context.Context, opts simulateOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch opts.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.format)
	}
	if opts.games < 1 {
		return fmt.Errorf("--games must be at least 1, got %d", opts.games)
	}

	logger := opts.logger
	if logger == nil {
		var err error
		if logger, err = newLogger(opts.verbose); err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()
	}

	league, err := roster.Load(opts.input)
	if err != nil {
		return err
	}

	tables := engine.DefaultTables()
	if opts.tuning != "" {
		if tables, err = engine.LoadTablesFile(opts.tuning); err != nil {
			return err
		}
	}

	var db *store.SQLiteStore
	if opts.db != "" {
		if db, err = store.OpenSQLite(opts.db); err != nil {
			return err
		}
		defer db.Close()
	}

	seeds, err := pickSeeds(opts.seed, opts.games)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if opts.games == 1 {
		err = simulateOne(ctx, &buf, league.Teams, seeds[0], tables, db, logger, opts)
	} else {
		err = simulateMany(ctx, &buf, league.Teams, seeds, tables, db, logger, opts)
	}
	if err != nil {
		return err
	}

	var out io.WriteCloser = nopCloser{stdout}
	if opts.output != stdoutCLIName && opts.output != "" {
		out = writers.NewLazyFile(opts.output)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	if opts.copy {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			logger.Warn("failed to copy to clipboard", zap.Error(err))
		}
	}
	return nil
}

func pickSeeds(first *int64, n int) ([]int64, error) {
	seeds := make([]int64, n)
	for i := range seeds {
		if first != nil {
			seeds[i] = *first + int64(i)
			continue
		}
		seed, err := engine.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("drawing seed: %w", err)
		}
		seeds[i] = seed
	}
	return seeds, nil
}

func simulateOne(ctx context.Context, w io.Writer, teams []roster.RawTeam, seed int64, tables engine.Tables, db *store.SQLiteStore, logger *zap.Logger, opts simulateOptions) error {
	res, err := engine.New(
		engine.WithSeed(seed),
		engine.WithTables(tables),
		engine.WithLogger(logger),
	).SimulateFullGame(teams)
	if err != nil {
		return err
	}
	logger.Info("game complete", zap.Int64("seed", seed))

	box := service.BuildBoxScore(uuid.New().String(), sportKey, res, time.Now().UTC())
	if db != nil {
		if err := db.WriteResult(ctx, box); err != nil {
			return err
		}
	}

	switch opts.format {
	case formatJSON:
		return writeJSON(w, res.BoxScore())
	case formatYAML:
		return writeYAML(w, res.BoxScore())
	}

	if _, err := io.WriteString(w, render.BoxScore(box)); err != nil {
		return err
	}
	if opts.players {
		_, err = io.WriteString(w, "\n"+render.PlayerLines(box.HomePlayers)+"\n"+render.PlayerLines(box.AwayPlayers))
	}
	return err
}

func simulateMany(ctx context.Context, w io.Writer, teams []roster.RawTeam, seeds []int64, tables engine.Tables, db *store.SQLiteStore, logger *zap.Logger, opts simulateOptions) error {
	results, err := engine.RunBatch(ctx, teams, seeds, opts.workers, engine.WithTables(tables))
	if err != nil {
		return err
	}

	if db != nil {
		now := time.Now().UTC()
		for _, res := range results {
			box := service.BuildBoxScore(uuid.New().String(), sportKey, res, now)
			if err := db.WriteResult(ctx, box); err != nil {
				return err
			}
		}
	}

	sum := engine.Summarize(results)
	home, away := results[0].Home.Name, results[0].Away.Name
	logger.Info("batch complete", zap.Int("games", sum.Games))

	out := batchOutput{HomeTeam: home, AwayTeam: away, Summary: sum, Seeds: seeds}
	switch opts.format {
	case formatJSON:
		return writeJSON(w, out)
	case formatYAML:
		return writeYAML(w, out)
	}
	_, err = io.WriteString(w, render.Batch(sum, home, away))
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
