package pacing

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func ptr(v float64) *float64 { return &v }

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-12 && d > -1e-12
}

func TestBaseDelayFromWPM(t *testing.T) {
	for _, wpm := range []float64{1, 12.5, 40, 60, 137} {
		got := BaseDelay(10, ptr(wpm), nil)
		want := 60 / (wpm * 5)
		if got != want {
			t.Fatalf("wpm %.1f: expected %v, got %v", wpm, want, got)
		}
	}
	if got := BaseDelay(2, ptr(60), nil); !approx(got, 0.2) {
		t.Fatalf("expected 0.2s at 60 wpm, got %v", got)
	}
}

func TestBaseDelayDefaultsTo40WPM(t *testing.T) {
	got := BaseDelay(100, nil, nil)
	want := 60 / (40.0 * 5)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBaseDelayPrefersWPMOverDuration(t *testing.T) {
	got := BaseDelay(10, ptr(60), ptr(100))
	if !approx(got, 0.2) {
		t.Fatalf("expected wpm to win, got %v", got)
	}
}

func TestBaseDelayFromDuration(t *testing.T) {
	cases := []struct {
		length   int
		duration float64
	}{
		{1, 1}, {4, 2}, {120, 30}, {7, 3.5},
	}
	for _, tc := range cases {
		got := BaseDelay(tc.length, nil, ptr(tc.duration))
		want := tc.duration / float64(tc.length)
		if got != want {
			t.Fatalf("length %d duration %v: expected %v, got %v", tc.length, tc.duration, want, got)
		}
	}
}

func TestBaseDelayFallback(t *testing.T) {
	cases := []struct {
		name     string
		length   int
		wpm      *float64
		duration *float64
	}{
		{"zero wpm", 10, ptr(0), nil},
		{"negative wpm", 10, ptr(-5), nil},
		{"zero duration", 10, nil, ptr(0)},
		{"negative duration", 10, nil, ptr(-1)},
		{"empty text", 0, nil, ptr(10)},
		{"infinite wpm", 10, ptr(math.Inf(1)), nil},
		{"nan wpm", 10, ptr(math.NaN()), nil},
		{"infinite duration", 10, nil, ptr(math.Inf(1))},
		{"nan duration", 10, nil, ptr(math.NaN())},
		{"negative infinite duration", 10, nil, ptr(math.Inf(-1))},
	}
	for _, tc := range cases {
		if got := BaseDelay(tc.length, tc.wpm, tc.duration); got != FallbackDelay {
			t.Fatalf("%s: expected fallback, got %v", tc.name, got)
		}
	}
}

func TestCharDelayRoles(t *testing.T) {
	cfg := model.TypingConfig{BaseDelay: 0.2, CharDelay: 0.03, SpaceDelay: 0.1, Jitter: 0.05}
	if got := CharDelay(cfg, 'a', fixedSource(0)); !approx(got, 0.23) {
		t.Fatalf("unexpected char delay %v", got)
	}
	if got := CharDelay(cfg, ' ', fixedSource(0)); !approx(got, 0.3) {
		t.Fatalf("unexpected space delay %v", got)
	}
	if got := CharDelay(cfg, 'a', fixedSource(0.5)); !approx(got, 0.255) {
		t.Fatalf("unexpected jittered delay %v", got)
	}
}

func TestCharDelayBounds(t *testing.T) {
	cfg := model.TypingConfig{BaseDelay: 0.15, CharDelay: 0.03, SpaceDelay: 0.1, Jitter: 0.05}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		ch := 'x'
		role := cfg.CharDelay
		if i%3 == 0 {
			ch = ' '
			role = cfg.SpaceDelay
		}
		got := CharDelay(cfg, ch, rnd)
		low := cfg.BaseDelay + role
		if got < low || got >= low+cfg.Jitter+1e-9 {
			t.Fatalf("delay %v outside [%v, %v)", got, low, low+cfg.Jitter)
		}
	}
}

func TestSeconds(t *testing.T) {
	if Seconds(0.2) != 200*time.Millisecond {
		t.Fatalf("unexpected conversion %v", Seconds(0.2))
	}
	if Seconds(-1) != 0 {
		t.Fatalf("negative seconds should clamp to zero")
	}
}

func TestEstimateWithoutMistakes(t *testing.T) {
	cfg := model.TypingConfig{BaseDelay: 0.2, CharDelay: 0.1, SpaceDelay: 0.3}
	got := Estimate(cfg, "a b")
	want := 1100 * time.Millisecond
	if diff := got - want; diff > time.Microsecond || diff < -time.Microsecond {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
