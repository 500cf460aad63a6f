// Package engine resolves plays, drives and full games between two rosters.
//
// A single Engine owns one random source and must not be shared between
// goroutines; run independent games on independent engines.
package engine

import (
	"go.uber.org/zap"
)

// Engine holds the random source, tuning tables and logger for one game
type Engine struct {
	rng    Rand
	seed   int64
	tables Tables
	logger *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithSeed seeds a fresh math/rand source
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.rng = NewRand(seed)
	}
}

// WithRand injects a random source directly, typically a scripted one in tests
func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithTables replaces the default tuning tables
func WithTables(t Tables) Option {
	return func(e *Engine) {
		e.tables = t
	}
}

// WithLogger sets the logger. Play-by-play is logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine. Without WithSeed or WithRand it seeds itself
// from crypto/rand.
func New(opts ...Option) *Engine {
	e := &Engine{
		tables: DefaultTables(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.seed = mustSeed()
		e.rng = NewRand(e.seed)
	}
	return e
}

// Seed returns the seed the engine's source was built from. It is zero
// when the source was injected with WithRand.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Tables returns the tuning tables in use
func (e *Engine) Tables() Tables {
	return e.tables
}
