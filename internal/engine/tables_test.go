package engine_test

import (
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/engine"
)

func TestDefaultTablesValidate(t *testing.T) {
	if err := engine.DefaultTables().Validate(); err != nil {
		t.Fatalf("Default tables should validate: %v", err)
	}
}

func TestLoadTables(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		check   func(t *testing.T, tb engine.Tables)
	}{
		{
			name: "empty document keeps defaults",
			doc:  "",
			check: func(t *testing.T, tb engine.Tables) {
				if tb.HalfSeconds != 2000 || tb.SubThreshold != 50 {
					t.Errorf("Expected default clock and threshold, got %d and %v", tb.HalfSeconds, tb.SubThreshold)
				}
			},
		},
		{
			name: "scalar overrides",
			doc:  "half_seconds: 1800\nreceive_prob: 0.6\n",
			check: func(t *testing.T, tb engine.Tables) {
				if tb.HalfSeconds != 1800 {
					t.Errorf("Expected half_seconds 1800, got %d", tb.HalfSeconds)
				}
				if tb.ReceiveProb != 0.6 {
					t.Errorf("Expected receive_prob 0.6, got %v", tb.ReceiveProb)
				}
				if len(tb.Run) != 4 || len(tb.OffensivePenalties) != 4 {
					t.Error("Expected untouched tables to keep their defaults")
				}
			},
		},
		{
			name: "penalty list replaced",
			doc:  "offensive_penalties:\n  - name: false_start\n    weight: 1\n    yards: -5\n",
			check: func(t *testing.T, tb engine.Tables) {
				if len(tb.OffensivePenalties) != 1 || tb.OffensivePenalties[0].Yards != -5 {
					t.Errorf("Unexpected offensive penalties: %+v", tb.OffensivePenalties)
				}
			},
		},
		{
			name: "partial run down keeps its default else",
			doc:  "run:\n  3:\n    rows:\n      - max_to_go: 5\n        prob: 0.5\n",
			check: func(t *testing.T, tb engine.Tables) {
				rt := tb.Run[3]
				if len(rt.Rows) != 1 || rt.Rows[0].Prob != 0.5 {
					t.Errorf("Expected the overridden rows, got %+v", rt.Rows)
				}
				if rt.Else != 0.10 {
					t.Errorf("Expected down 3 else to stay 0.10, got %v", rt.Else)
				}
				if tb.Run[1].Else != 0.40 || len(tb.Run[1].Rows) != 3 {
					t.Errorf("Expected down 1 untouched, got %+v", tb.Run[1])
				}
			},
		},
		{
			name: "partial defense down keeps its default else",
			doc:  "defense:\n  2:\n    rows:\n      - max_to_go: 4\n        call: defend_run\n        prob: 0.5\n",
			check: func(t *testing.T, tb engine.Tables) {
				dt := tb.Defense[2]
				if len(dt.Rows) != 1 || dt.Rows[0].Call != engine.DefendRun {
					t.Errorf("Expected the overridden rows, got %+v", dt.Rows)
				}
				if dt.Else.Call != engine.DefendPass || dt.Else.Prob != 0.80 {
					t.Errorf("Expected down 2 else to stay defend_pass 0.80, got %+v", dt.Else)
				}
			},
		},
		{
			name: "else field overlaid alone",
			doc:  "defense:\n  3:\n    else:\n      prob: 0.5\n",
			check: func(t *testing.T, tb engine.Tables) {
				dt := tb.Defense[3]
				if dt.Else.Call != engine.DefendPass || dt.Else.Prob != 0.5 {
					t.Errorf("Expected defend_pass at 0.5, got %+v", dt.Else)
				}
				if len(dt.Rows) != 3 {
					t.Errorf("Expected down 3 rows kept, got %+v", dt.Rows)
				}
			},
		},
		{
			name:    "probability out of range",
			doc:     "run:\n  1:\n    rows:\n      - max_to_go: 3\n        prob: 1.5\n",
			wantErr: "out of range",
		},
		{
			name:    "unknown defensive call",
			doc:     "defense:\n  1:\n    else:\n      call: blitz\n      prob: 0.5\n",
			wantErr: "unknown call",
		},
		{
			name:    "non-positive half",
			doc:     "half_seconds: 0\n",
			wantErr: "half_seconds",
		},
		{
			name:    "malformed yaml",
			doc:     "half_seconds: [\n",
			wantErr: "decoding tuning tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := engine.LoadTables(strings.NewReader(tt.doc))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, tb)
		})
	}
}

func TestWithTables(t *testing.T) {
	tb := engine.DefaultTables()
	tb.HalfSeconds = 600

	e := engine.New(engine.WithSeed(3), engine.WithTables(tb))
	if e.Tables().HalfSeconds != 600 {
		t.Errorf("Expected overridden tables, got half of %d", e.Tables().HalfSeconds)
	}
	if e.Seed() != 3 {
		t.Errorf("Expected seed 3, got %d", e.Seed())
	}
}
