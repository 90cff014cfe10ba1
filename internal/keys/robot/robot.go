// Package robot injects keystrokes into the OS input stream through robotgo.
// It requires cgo and a desktop session.
package robot

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-vgo/robotgo"

	"github.com/verte-zerg/autotype/internal/keys"
)

var controlKeys = map[rune]string{
	'\n': "enter",
	'\t': "tab",
}

// Injector is a keys.Injector backed by robotgo.
type Injector struct{}

var _ keys.Injector = (*Injector)(nil)

// New returns a robotgo-backed injector.
func New() *Injector {
	return &Injector{}
}

// TypeText implements keys.Injector. Newlines and tabs are sent as key taps
// so editors see Enter and Tab rather than raw control runes.
func (i *Injector) TypeText(s string) error {
	start := 0
	for pos, r := range s {
		key, ok := controlKeys[r]
		if !ok {
			continue
		}
		if start < pos {
			robotgo.TypeStr(s[start:pos])
		}
		if err := i.PressKey(key); err != nil {
			return err
		}
		start = pos + utf8.RuneLen(r)
	}
	if start < len(s) {
		robotgo.TypeStr(s[start:])
	}
	return nil
}

// PressKey implements keys.Injector.
func (*Injector) PressKey(name string) error {
	if err := robotgo.KeyTap(name); err != nil {
		return fmt.Errorf("failed to press %s: %w", name, err)
	}
	return nil
}
