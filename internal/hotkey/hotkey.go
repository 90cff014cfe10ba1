// Package hotkey parses global hotkey chords and defines the listener
// contract used to toggle typing.
package hotkey

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/autotype/internal/model"
)

// DefaultSpec is the chord used when none is configured.
const DefaultSpec = "ctrl+f9"

// Listener delivers a callback once per hotkey activation, on a goroutine
// of its own choosing.
type Listener interface {
	Register(spec string, fn func()) error
	// Start begins listening. It does not block.
	Start() error
	// UnregisterAll stops future callbacks.
	UnregisterAll()
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"cmd":     "cmd",
	"command": "cmd",
	"super":   "cmd",
	"win":     "cmd",
	"meta":    "cmd",
}

var modifierOrder = []string{"ctrl", "shift", "alt", "cmd"}

// Chord is a parsed hotkey: one key plus zero or more modifiers.
type Chord struct {
	Key       string
	Modifiers []string
}

// Keys returns the chord as a key list, main key first.
func (c Chord) Keys() []string {
	out := make([]string, 0, len(c.Modifiers)+1)
	out = append(out, c.Key)
	return append(out, c.Modifiers...)
}

// String renders the chord for display, e.g. "CTRL+F9".
func (c Chord) String() string {
	parts := append(append([]string{}, c.Modifiers...), c.Key)
	return strings.ToUpper(strings.Join(parts, "+"))
}

// ParseSpec parses a spec such as "ctrl+f9" or "Shift + Alt + k".
func ParseSpec(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, &model.ConfigError{Field: "hotkey", Reason: "must not be empty"}
	}
	var chord Chord
	mods := map[string]bool{}
	for _, raw := range strings.Split(spec, "+") {
		part := strings.ToLower(strings.TrimSpace(raw))
		if part == "" {
			return Chord{}, &model.ConfigError{Field: "hotkey", Reason: fmt.Sprintf("has an empty key in %q", spec)}
		}
		if mod, ok := modifierAliases[part]; ok {
			if mods[mod] {
				return Chord{}, &model.ConfigError{Field: "hotkey", Reason: fmt.Sprintf("repeats modifier %q", mod)}
			}
			mods[mod] = true
			continue
		}
		if chord.Key != "" {
			return Chord{}, &model.ConfigError{Field: "hotkey", Reason: fmt.Sprintf("has more than one non-modifier key (%q, %q)", chord.Key, part)}
		}
		chord.Key = part
	}
	if chord.Key == "" {
		return Chord{}, &model.ConfigError{Field: "hotkey", Reason: "needs a non-modifier key"}
	}
	for _, mod := range modifierOrder {
		if mods[mod] {
			chord.Modifiers = append(chord.Modifiers, mod)
		}
	}
	return chord, nil
}

// Debounce wraps fn so that activations closer than window to the last
// accepted one are dropped. Held keys auto-repeat on most platforms.
func Debounce(fn func(), window time.Duration, now func() time.Time) func() {
	if now == nil {
		now = time.Now
	}
	var mu sync.Mutex
	var last time.Time
	return func() {
		mu.Lock()
		t := now()
		if !last.IsZero() && t.Sub(last) < window {
			mu.Unlock()
			return
		}
		last = t
		mu.Unlock()
		fn()
	}
}
