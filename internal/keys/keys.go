// Package keys emits keystrokes into the focused application.
package keys

import (
	"fmt"
	"io"
	"sync"
)

// Backspace is the key name used to erase the previous character.
const Backspace = "backspace"

// Injector emits keystrokes. Errors are platform failures and are not
// retried by callers.
type Injector interface {
	// TypeText emits each character of s as a keystroke.
	TypeText(s string) error
	// PressKey emits a single named key such as "backspace".
	PressKey(name string) error
}

// Writer is an Injector that renders keystrokes to an io.Writer. It backs
// the --dry-run mode.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer injector.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// TypeText implements Injector.
func (k *Writer) TypeText(s string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, err := io.WriteString(k.w, s); err != nil {
		return fmt.Errorf("failed to write keystrokes: %w", err)
	}
	return nil
}

// PressKey implements Injector. Only backspace has a visible rendering.
func (k *Writer) PressKey(name string) error {
	if name != Backspace {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, err := io.WriteString(k.w, "\b \b"); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
