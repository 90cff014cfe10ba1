// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"time"
)

// TypingConfig defines pacing and mistake settings for a typing session.
// All delays are in seconds.
type TypingConfig struct {
	BaseDelay     float64
	MistakeProb   float64
	MistakeLenMin int
	MistakeLenMax int
	CharDelay     float64
	SpaceDelay    float64
	Jitter        float64
}

// ConfigError reports invalid user input detected before typing starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("--%s %s", e.Field, e.Reason)
}

// Validate checks the config invariants.
func (c TypingConfig) Validate() error {
	if math.IsNaN(c.MistakeProb) || c.MistakeProb < 0 || c.MistakeProb > 1 {
		return &ConfigError{Field: "mistake-prob", Reason: "must be between 0 and 1"}
	}
	if c.MistakeLenMin < 0 {
		return &ConfigError{Field: "mistake-len-min", Reason: "must be >= 0"}
	}
	if c.MistakeLenMax < 0 {
		return &ConfigError{Field: "mistake-len-max", Reason: "must be >= 0"}
	}
	if c.MistakeLenMin > c.MistakeLenMax {
		return &ConfigError{Field: "mistake-len-min", Reason: fmt.Sprintf("must be <= --mistake-len-max (%d > %d)", c.MistakeLenMin, c.MistakeLenMax)}
	}
	delays := []struct {
		name  string
		value float64
	}{
		{"base-delay", c.BaseDelay},
		{"random-delay-char", c.CharDelay},
		{"random-delay-space", c.SpaceDelay},
		{"random-jitter", c.Jitter},
	}
	for _, d := range delays {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value < 0 {
			return &ConfigError{Field: d.name, Reason: "must be a finite value >= 0"}
		}
	}
	return nil
}

// Outcome describes how a typing session ended.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeStopped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "Completed"
	case OutcomeStopped:
		return "Stopped"
	case OutcomeFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Report captures the result of a finished typing session.
type Report struct {
	Outcome   Outcome
	Typed     int
	Leftover  string
	Mistakes  int
	StartedAt time.Time
	EndedAt   time.Time
	Err       error
}

// Duration returns the wall time the session ran for.
func (r Report) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Snippet is a named text stored in the snippet library.
type Snippet struct {
	Name      string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
