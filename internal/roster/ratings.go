package roster

import "math"

// DefaultRating is used for any rating missing from the roster input
const DefaultRating = 50.0

// Ratings holds every 0-100 attribute a player may carry
type Ratings struct {
	Speed          float64 `json:"speed" yaml:"speed"`
	Strength       float64 `json:"strength" yaml:"strength"`
	Intelligence   float64 `json:"intelligence" yaml:"intelligence"`
	Endurance      float64 `json:"endurance" yaml:"endurance"`
	Passing        float64 `json:"passing" yaml:"passing"`
	DecisionMaking float64 `json:"decision_making" yaml:"decision_making"`
	Elusiveness    float64 `json:"elusiveness" yaml:"elusiveness"`
	Vision         float64 `json:"vision" yaml:"vision"`
	Hands          float64 `json:"hands" yaml:"hands"`
	RouteRunning   float64 `json:"route_running" yaml:"route_running"`
	RunBlocking    float64 `json:"run_blocking" yaml:"run_blocking"`
	PassBlocking   float64 `json:"pass_blocking" yaml:"pass_blocking"`
	Rushing        float64 `json:"rushing" yaml:"rushing"`
	Tackling       float64 `json:"tackling" yaml:"tackling"`
	Coverage       float64 `json:"coverage" yaml:"coverage"`
	KickPower      float64 `json:"kick_power" yaml:"kick_power"`
	KickAccuracy   float64 `json:"kick_accuracy" yaml:"kick_accuracy"`
	PuntPower      float64 `json:"punt_power" yaml:"punt_power"`
	PuntAccuracy   float64 `json:"punt_accuracy" yaml:"punt_accuracy"`
}

// DefaultRatings returns a rating set with every attribute at DefaultRating
func DefaultRatings() Ratings {
	d := DefaultRating
	return Ratings{d, d, d, d, d, d, d, d, d, d, d, d, d, d, d, d, d, d, d}
}

// fatigueSensitive returns pointers to the attributes degraded by fatigue
func (r *Ratings) fatigueSensitive() []*float64 {
	return []*float64{
		&r.Speed, &r.Strength, &r.Elusiveness, &r.Vision, &r.Hands,
		&r.RouteRunning, &r.RunBlocking, &r.PassBlocking, &r.Rushing,
		&r.Tackling, &r.Coverage,
	}
}

// Penalized derives current ratings from a baseline and a fatigue level.
// Each sensitive attribute drops by up to 15% and never below two thirds
// of its baseline.
func (r Ratings) Penalized(fatigue float64) Ratings {
	out := r
	scale := fatigue / 100 * 0.15
	base := r.fatigueSensitive()
	cur := out.fatigueSensitive()
	for i, b := range base {
		floor := *b * 2 / 3
		*cur[i] = math.Max(floor, math.Round(*b*(1-scale)))
		if *cur[i] > *b {
			*cur[i] = *b
		}
	}
	return out
}

func clampRating(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
