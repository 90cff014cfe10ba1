// Package audio plays short best-effort cues at session start and end.
package audio

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Default cue parameters.
const (
	DefaultFreq       = 800.0
	DefaultDurationMs = 200
)

// Cue kinds accepted by --cue.
const (
	KindTone   = "tone"
	KindSystem = "system"
	KindOff    = "off"
)

// Cue plays a beep. Implementations never fail: a missing audio device
// turns calls into no-ops.
type Cue interface {
	Beep(freqHz float64, durationMs int)
}

// Nop is a Cue that does nothing.
type Nop struct{}

// Beep implements Cue.
func (Nop) Beep(float64, int) {}

// System beeps through the platform beep facility.
type System struct {
	log *zap.Logger
}

// NewSystem returns a System cue.
func NewSystem(log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{log: log}
}

// Beep implements Cue.
func (s *System) Beep(freqHz float64, durationMs int) {
	if err := beeep.Beep(freqHz, durationMs); err != nil {
		s.log.Debug("system beep unavailable", zap.Error(err))
	}
}

// ParseKind validates a --cue value.
func ParseKind(kind string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case KindTone, KindSystem, KindOff:
		return k, nil
	case "", "none":
		return KindOff, nil
	default:
		return "", fmt.Errorf("unknown cue %q (want %s, %s or %s)", kind, KindTone, KindSystem, KindOff)
	}
}
