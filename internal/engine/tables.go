package engine

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CallRow applies Prob when distance to go is at most MaxToGo
type CallRow struct {
	MaxToGo int     `yaml:"max_to_go"`
	Prob    float64 `yaml:"prob"`
}

// RunTable holds the run probability rows for one down
type RunTable struct {
	Rows []CallRow `yaml:"rows"`
	Else float64   `yaml:"else"`
}

// DefenseRow gives the probability of calling Call when distance to go
// is at most MaxToGo; the other call takes the remainder
type DefenseRow struct {
	MaxToGo int         `yaml:"max_to_go"`
	Call    DefenseCall `yaml:"call"`
	Prob    float64     `yaml:"prob"`
}

// DefenseTable holds the defensive call rows for one down
type DefenseTable struct {
	Rows []DefenseRow `yaml:"rows"`
	Else DefenseRow   `yaml:"else"`
}

// Penalty is one entry of a penalty distribution. A non-zero MaxYards
// draws yardage uniformly from [MinYards, MaxYards].
type Penalty struct {
	Name     string  `yaml:"name"`
	Weight   float64 `yaml:"weight"`
	Yards    int     `yaml:"yards"`
	MinYards int     `yaml:"min_yards"`
	MaxYards int     `yaml:"max_yards"`
}

// Tables is the tuning data the play caller and clock rely on
type Tables struct {
	Run            map[int]RunTable     `yaml:"run"`
	RunDefault     float64              `yaml:"run_default"`
	Defense        map[int]DefenseTable `yaml:"defense"`
	DefenseDefault DefenseRow           `yaml:"defense_default"`

	MomentumRunGain   int     `yaml:"momentum_run_gain"`
	MomentumRunBonus  float64 `yaml:"momentum_run_bonus"`
	MomentumPassGain  int     `yaml:"momentum_pass_gain"`
	MomentumPassMinus float64 `yaml:"momentum_pass_minus"`
	MinRunChance      float64 `yaml:"min_run_chance"`
	MaxRunChance      float64 `yaml:"max_run_chance"`

	OffensivePenaltyRate float64   `yaml:"offensive_penalty_rate"`
	OffensivePenalties   []Penalty `yaml:"offensive_penalties"`
	DefensivePenaltyRate float64   `yaml:"defensive_penalty_rate"`
	DefensivePenalties   []Penalty `yaml:"defensive_penalties"`

	SubThreshold float64 `yaml:"sub_threshold"`
	HalfSeconds  int     `yaml:"half_seconds"`
	HurryWindow  int     `yaml:"hurry_window"`
	ReceiveProb  float64 `yaml:"receive_prob"`
}

// DefaultTables returns the stock tuning
func DefaultTables() Tables {
	return Tables{
		Run: map[int]RunTable{
			1: {Rows: []CallRow{{3, 0.75}, {6, 0.65}, {10, 0.55}}, Else: 0.40},
			2: {Rows: []CallRow{{3, 0.70}, {6, 0.50}, {10, 0.40}}, Else: 0.25},
			3: {Rows: []CallRow{{3, 0.60}, {6, 0.35}, {10, 0.20}}, Else: 0.10},
			4: {Rows: []CallRow{{1, 0.55}, {3, 0.35}, {6, 0.20}}, Else: 0.05},
		},
		RunDefault: 0.25,
		Defense: map[int]DefenseTable{
			1: {
				Rows: []DefenseRow{{3, DefendRun, 0.75}, {6, DefendRun, 0.60}, {10, DefendPass, 0.55}},
				Else: DefenseRow{Call: DefendPass, Prob: 0.70},
			},
			2: {
				Rows: []DefenseRow{{3, DefendRun, 0.65}, {6, DefendPass, 0.60}, {10, DefendPass, 0.70}},
				Else: DefenseRow{Call: DefendPass, Prob: 0.80},
			},
			3: {
				Rows: []DefenseRow{{3, DefendRun, 0.60}, {6, DefendPass, 0.70}, {10, DefendPass, 0.85}},
				Else: DefenseRow{Call: DefendPass, Prob: 0.90},
			},
		},
		DefenseDefault: DefenseRow{Call: DefendPass, Prob: 1},

		MomentumRunGain:   6,
		MomentumRunBonus:  0.10,
		MomentumPassGain:  10,
		MomentumPassMinus: 0.05,
		MinRunChance:      0.10,
		MaxRunChance:      0.90,

		OffensivePenaltyRate: 0.08,
		OffensivePenalties: []Penalty{
			{Name: "false_start", Weight: 0.30, Yards: -5},
			{Name: "holding", Weight: 0.40, Yards: -10},
			{Name: "offensive_pass_interference", Weight: 0.15, Yards: -15},
			{Name: "delay_of_game", Weight: 0.15, Yards: -5},
		},
		DefensivePenaltyRate: 0.05,
		DefensivePenalties: []Penalty{
			{Name: "offside", Weight: 0.40, Yards: 5},
			{Name: "pass_interference", Weight: 0.40, MinYards: 10, MaxYards: 25},
			{Name: "facemask", Weight: 0.20, Yards: 15},
		},

		SubThreshold: 50,
		HalfSeconds:  2000,
		HurryWindow:  120,
		ReceiveProb:  0.8,
	}
}

// LoadTables overlays a YAML document onto DefaultTables. A down given
// under run or defense is overlaid onto that down's default entry, so
// fields it leaves out keep their stock values.
func LoadTables(r io.Reader) (Tables, error) {
	t := DefaultTables()

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return t, nil
		}
		return Tables{}, fmt.Errorf("decoding tuning tables: %w", err)
	}

	var downs struct {
		Run     map[int]yaml.Node `yaml:"run"`
		Defense map[int]yaml.Node `yaml:"defense"`
	}
	if err := doc.Decode(&downs); err != nil {
		return Tables{}, fmt.Errorf("decoding tuning tables: %w", err)
	}
	if err := doc.Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("decoding tuning tables: %w", err)
	}

	base := DefaultTables()
	for down, node := range downs.Run {
		entry := base.Run[down]
		if err := node.Decode(&entry); err != nil {
			return Tables{}, fmt.Errorf("decoding run table down %d: %w", down, err)
		}
		t.Run[down] = entry
	}
	for down, node := range downs.Defense {
		entry := base.Defense[down]
		if err := node.Decode(&entry); err != nil {
			return Tables{}, fmt.Errorf("decoding defense table down %d: %w", down, err)
		}
		t.Defense[down] = entry
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// LoadTablesFile reads tuning overrides from a YAML file
func LoadTablesFile(path string) (Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("opening tuning file: %w", err)
	}
	defer f.Close()
	return LoadTables(f)
}

// Validate checks the probabilities and weights are usable
func (t Tables) Validate() error {
	for down, rt := range t.Run {
		for _, row := range append(rt.Rows, CallRow{Prob: rt.Else}) {
			if row.Prob < 0 || row.Prob > 1 {
				return fmt.Errorf("run table down %d: probability %v out of range", down, row.Prob)
			}
		}
	}
	for down, dt := range t.Defense {
		for _, row := range append(dt.Rows, dt.Else) {
			if row.Call != DefendRun && row.Call != DefendPass {
				return fmt.Errorf("defense table down %d: unknown call %q", down, row.Call)
			}
			if row.Prob < 0 || row.Prob > 1 {
				return fmt.Errorf("defense table down %d: probability %v out of range", down, row.Prob)
			}
		}
	}
	if len(t.OffensivePenalties) == 0 || len(t.DefensivePenalties) == 0 {
		return fmt.Errorf("penalty tables must not be empty")
	}
	if t.HalfSeconds <= 0 {
		return fmt.Errorf("half_seconds must be positive, got %d", t.HalfSeconds)
	}
	return nil
}

// runProbability looks up the base run chance for a down and distance
func (t Tables) runProbability(down, toGo int) float64 {
	rt, ok := t.Run[down]
	if !ok {
		return t.RunDefault
	}
	for _, row := range rt.Rows {
		if toGo <= row.MaxToGo {
			return row.Prob
		}
	}
	return rt.Else
}

func (t Tables) defenseRow(down, toGo int) DefenseRow {
	dt, ok := t.Defense[down]
	if !ok {
		return t.DefenseDefault
	}
	for _, row := range dt.Rows {
		if toGo <= row.MaxToGo {
			return row
		}
	}
	return dt.Else
}
