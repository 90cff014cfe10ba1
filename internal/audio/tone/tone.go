// Package tone plays sine-wave cues through the system speaker.
package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/verte-zerg/autotype/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// Player is an audio.Cue that synthesises a tone.
type Player struct {
	log *zap.Logger
	mu  sync.Mutex
}

var _ audio.Cue = (*Player)(nil)

// New initialises the speaker. Callers fall back to audio.Nop on error.
func New(log *zap.Logger) (*Player, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &Player{log: log}, nil
}

// Beep plays a tone and blocks until it has finished.
func (p *Player) Beep(freqHz float64, durationMs int) {
	if durationMs <= 0 {
		return
	}
	sine, err := generators.SineTone(sampleRate, freqHz)
	if err != nil {
		p.log.Debug("tone unavailable", zap.Float64("freq", freqHz), zap.Error(err))
		return
	}
	d := time.Duration(durationMs) * time.Millisecond
	quiet := &effects.Gain{Streamer: beep.Take(sampleRate.N(d), sine), Gain: -0.6}

	p.mu.Lock()
	defer p.mu.Unlock()
	done := make(chan struct{})
	speaker.Play(beep.Seq(quiet, beep.Callback(func() { close(done) })))
	select {
	case <-done:
	case <-time.After(d + time.Second):
		p.log.Warn("tone playback did not finish in time")
	}
}
