package ratelimit_test

import (
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/ratelimit"
)

func TestWindow_Key(t *testing.T) {
	w := ratelimit.NewWindow(nil, "football-sim", 10, time.Minute)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	if w.Key(base) != w.Key(base.Add(59*time.Second)) {
		t.Error("expected times within one minute to share a window")
	}
	if w.Key(base) == w.Key(base.Add(time.Minute)) {
		t.Error("expected the next minute to start a new window")
	}
}

func TestWindow_DefaultPeriod(t *testing.T) {
	w := ratelimit.NewWindow(nil, "p", 1, 0)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	if w.Key(base) != w.Key(base.Add(30*time.Second)) {
		t.Error("expected a zero period to default to one minute")
	}
}
