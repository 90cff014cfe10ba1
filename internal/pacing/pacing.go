// Package pacing converts typing speed settings into per-character delays.
package pacing

import (
	"math"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

const (
	// DefaultWPM is used when neither a speed nor a duration is given.
	DefaultWPM = 40.0
	// FallbackDelay is the per-character delay used when the speed
	// settings cannot produce a positive delay.
	FallbackDelay = 0.3
	// CharsPerWord is the conventional word length used for WPM.
	CharsPerWord = 5.0
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// BaseDelay returns the average delay in seconds between characters.
// When wpm is set it wins over duration. The result is always finite and
// positive.
func BaseDelay(textLength int, wpm, duration *float64) float64 {
	if wpm == nil && duration == nil {
		w := DefaultWPM
		wpm = &w
	}
	var delay float64
	switch {
	case wpm != nil:
		delay = 60.0 / (*wpm * CharsPerWord)
	case textLength > 0:
		delay = *duration / float64(textLength)
	}
	if delay <= 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return FallbackDelay
	}
	return delay
}

// CharDelay returns the randomized delay to wait after typing ch.
func CharDelay(cfg model.TypingConfig, ch rune, rnd Source) float64 {
	delay := cfg.BaseDelay
	if ch == ' ' {
		delay += cfg.SpaceDelay
	} else {
		delay += cfg.CharDelay
	}
	return delay + rnd.Float64()*cfg.Jitter
}

// Seconds converts fractional seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Estimate returns the expected time to type text with cfg, using the mean
// jitter and the mean mistake burst. Keystroke latency is not included.
func Estimate(cfg model.TypingConfig, text string) time.Duration {
	var total float64
	meanJitter := cfg.Jitter / 2
	meanBurst := float64(cfg.MistakeLenMin+cfg.MistakeLenMax) / 2
	for _, r := range text {
		total += cfg.BaseDelay + meanJitter
		if r == ' ' {
			total += cfg.SpaceDelay
		} else {
			total += cfg.CharDelay
		}
	}
	// A burst costs no sleep of its own, but its keystrokes are visible
	// time on slow targets; count each as a plain character delay.
	runes := float64(len([]rune(text)))
	total += runes * cfg.MistakeProb * meanBurst * 2 * cfg.CharDelay
	return Seconds(total)
}
