package roster

// RawLeague is the top-level roster document
type RawLeague struct {
	Teams []RawTeam `json:"teams" yaml:"teams"`
}

// RawTeam is one team as it appears in a roster document
type RawTeam struct {
	TeamName string      `json:"team_name" yaml:"team_name"`
	Offense  []RawPlayer `json:"offense" yaml:"offense"`
	Defense  []RawPlayer `json:"defense" yaml:"defense"`
}

// RawPlayer is a roster record. Ratings are optional; nil means 50.
type RawPlayer struct {
	Name     string             `json:"name" yaml:"name"`
	Position string             `json:"position" yaml:"position"`
	InGame   *bool              `json:"in_game,omitempty" yaml:"in_game,omitempty"`
	Fatigue  *float64           `json:"fatigue,omitempty" yaml:"fatigue,omitempty"`
	Stats    map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`

	Speed          *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	Strength       *float64 `json:"strength,omitempty" yaml:"strength,omitempty"`
	Intelligence   *float64 `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
	Endurance      *float64 `json:"endurance,omitempty" yaml:"endurance,omitempty"`
	Passing        *float64 `json:"passing,omitempty" yaml:"passing,omitempty"`
	DecisionMaking *float64 `json:"decision_making,omitempty" yaml:"decision_making,omitempty"`
	Elusiveness    *float64 `json:"elusiveness,omitempty" yaml:"elusiveness,omitempty"`
	Vision         *float64 `json:"vision,omitempty" yaml:"vision,omitempty"`
	Hands          *float64 `json:"hands,omitempty" yaml:"hands,omitempty"`
	RouteRunning   *float64 `json:"route_running,omitempty" yaml:"route_running,omitempty"`
	RunBlocking    *float64 `json:"run_blocking,omitempty" yaml:"run_blocking,omitempty"`
	PassBlocking   *float64 `json:"pass_blocking,omitempty" yaml:"pass_blocking,omitempty"`
	Rushing        *float64 `json:"rushing,omitempty" yaml:"rushing,omitempty"`
	Tackling       *float64 `json:"tackling,omitempty" yaml:"tackling,omitempty"`
	Coverage       *float64 `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	KickPower      *float64 `json:"kick_power,omitempty" yaml:"kick_power,omitempty"`
	KickAccuracy   *float64 `json:"kick_accuracy,omitempty" yaml:"kick_accuracy,omitempty"`
	PuntPower      *float64 `json:"punt_power,omitempty" yaml:"punt_power,omitempty"`
	PuntAccuracy   *float64 `json:"punt_accuracy,omitempty" yaml:"punt_accuracy,omitempty"`
}

func (r RawPlayer) ratings() Ratings {
	pick := func(v *float64) float64 {
		if v == nil {
			return DefaultRating
		}
		return clampRating(*v)
	}
	return Ratings{
		Speed:          pick(r.Speed),
		Strength:       pick(r.Strength),
		Intelligence:   pick(r.Intelligence),
		Endurance:      pick(r.Endurance),
		Passing:        pick(r.Passing),
		DecisionMaking: pick(r.DecisionMaking),
		Elusiveness:    pick(r.Elusiveness),
		Vision:         pick(r.Vision),
		Hands:          pick(r.Hands),
		RouteRunning:   pick(r.RouteRunning),
		RunBlocking:    pick(r.RunBlocking),
		PassBlocking:   pick(r.PassBlocking),
		Rushing:        pick(r.Rushing),
		Tackling:       pick(r.Tackling),
		Coverage:       pick(r.Coverage),
		KickPower:      pick(r.KickPower),
		KickAccuracy:   pick(r.KickAccuracy),
		PuntPower:      pick(r.PuntPower),
		PuntAccuracy:   pick(r.PuntAccuracy),
	}
}
