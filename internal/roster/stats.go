package roster

import (
	"fmt"
	"sort"
)

// Stats is the fixed set of counters a player accumulates during a game.
// Sacks and forced fumbles may accrue in half increments on split sacks.
type Stats struct {
	PassAttempts        float64
	Completions         float64
	PassYards           float64
	InterceptionsThrown float64
	SacksTaken          float64
	Carries             float64
	RushYards           float64
	Fumbles             float64
	Receptions          float64
	ReceivingYards      float64
	Targets             float64
	Touchdowns          float64
	Tackles             float64
	Sacks               float64
	Interceptions       float64
	ForcedFumbles       float64
	PATMade             float64
	PATAttempts         float64
	FGMade              float64
	FGAttempted         float64
	Punts               float64
	PuntYards           float64
}

func (s *Stats) fields() map[string]*float64 {
	return map[string]*float64{
		"pass_attempts":        &s.PassAttempts,
		"completions":          &s.Completions,
		"pass_yards":           &s.PassYards,
		"interceptions_thrown": &s.InterceptionsThrown,
		"sacks_taken":          &s.SacksTaken,
		"carries":              &s.Carries,
		"rush_yards":           &s.RushYards,
		"fumbles":              &s.Fumbles,
		"receptions":           &s.Receptions,
		"receiving_yards":      &s.ReceivingYards,
		"targets":              &s.Targets,
		"touchdowns":           &s.Touchdowns,
		"tackles":              &s.Tackles,
		"sacks":                &s.Sacks,
		"interceptions":        &s.Interceptions,
		"forced_fumbles":       &s.ForcedFumbles,
		"pat_made":             &s.PATMade,
		"pat_attempts":         &s.PATAttempts,
		"fg_made":              &s.FGMade,
		"fg_attempted":         &s.FGAttempted,
		"punts":                &s.Punts,
		"punt_yards":           &s.PuntYards,
	}
}

// StatKeys returns the serialized stat names in sorted order
func StatKeys() []string {
	var s Stats
	keys := make([]string, 0, 22)
	for k := range s.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns only the non-zero counters keyed by their serialized names
func (s Stats) Map() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range s.fields() {
		if *v != 0 {
			out[k] = *v
		}
	}
	return out
}

// Total sums every counter in field order, so equal stat lines always
// produce the same total. Substitution uses it as a production score.
func (s Stats) Total() float64 {
	return s.PassAttempts + s.Completions + s.PassYards + s.InterceptionsThrown +
		s.SacksTaken + s.Carries + s.RushYards + s.Fumbles + s.Receptions +
		s.ReceivingYards + s.Targets + s.Touchdowns + s.Tackles + s.Sacks +
		s.Interceptions + s.ForcedFumbles + s.PATMade + s.PATAttempts +
		s.FGMade + s.FGAttempted + s.Punts + s.PuntYards
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	dst := s.fields()
	for k, v := range other.fields() {
		*dst[k] += *v
	}
}

// StatsFromMap builds Stats from pre-seeded roster input
func StatsFromMap(m map[string]float64) (Stats, error) {
	var s Stats
	fields := s.fields()
	for k, v := range m {
		ptr, ok := fields[k]
		if !ok {
			return Stats{}, fmt.Errorf("%w: %q", ErrUnknownStat, k)
		}
		*ptr = v
	}
	return s, nil
}
