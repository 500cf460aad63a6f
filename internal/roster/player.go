package roster

import (
	"fmt"
	"math"
)

// Player is a single roster entry. Ratings are the current, fatigue
// adjusted values; the baseline captured at construction never changes.
type Player struct {
	Name     string
	Position Position
	Ratings  Ratings
	Fatigue  float64
	InGame   bool
	Stats    Stats

	baseline Ratings
}

// NewPlayer builds a player from raw roster input, defaulting missing ratings to 50
func NewPlayer(raw RawPlayer) (*Player, error) {
	pos, err := ParsePosition(raw.Position)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", raw.Name, err)
	}

	stats, err := StatsFromMap(raw.Stats)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", raw.Name, err)
	}

	ratings := raw.ratings()
	p := &Player{
		Name:     raw.Name,
		Position: pos,
		Ratings:  ratings,
		Stats:    stats,
		baseline: ratings,
	}
	if raw.InGame != nil {
		p.InGame = *raw.InGame
	}
	if raw.Fatigue != nil {
		p.SetFatigue(*raw.Fatigue)
	}
	return p, nil
}

// Baseline returns the ratings captured when the player was created
func (p *Player) Baseline() Ratings {
	return p.baseline
}

// SetFatigue stores fatigue clamped to [0,100]
func (p *Player) SetFatigue(v float64) {
	p.Fatigue = math.Max(0, math.Min(100, v))
}

// AddFatigue accrues fatigue, keeping it within [0,100]
func (p *Player) AddFatigue(delta float64) {
	p.SetFatigue(p.Fatigue + delta)
}

// ApplyFatiguePenalty recomputes current ratings from the baseline
func (p *Player) ApplyFatiguePenalty() {
	p.Ratings = p.baseline.Penalized(p.Fatigue)
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Position)
}
