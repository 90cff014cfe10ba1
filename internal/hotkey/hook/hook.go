// Package hook implements hotkey.Listener on top of gohook. It requires cgo
// and a desktop session.
package hook

import (
	"fmt"
	"sync"

	gohook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/verte-zerg/autotype/internal/hotkey"
)

// Listener is a global hotkey listener backed by gohook.
type Listener struct {
	log *zap.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

var _ hotkey.Listener = (*Listener)(nil)

// New returns a gohook listener.
func New(log *zap.Logger) *Listener {
	if log == nil {
		log = zap.NewNop()
	}
	return &Listener{log: log, done: make(chan struct{})}
}

// Register implements hotkey.Listener.
func (l *Listener) Register(spec string, fn func()) error {
	chord, err := hotkey.ParseSpec(spec)
	if err != nil {
		return err
	}
	gohook.Register(gohook.KeyDown, chord.Keys(), func(gohook.Event) {
		l.log.Debug("hotkey pressed", zap.String("chord", chord.String()))
		fn()
	})
	l.log.Info("hotkey registered", zap.String("chord", chord.String()))
	return nil
}

// Start implements hotkey.Listener.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("hotkey listener already started")
	}
	l.started = true
	events := gohook.Start()
	go func() {
		<-gohook.Process(events)
		close(l.done)
	}()
	return nil
}

// UnregisterAll implements hotkey.Listener.
func (l *Listener) UnregisterAll() {
	l.mu.Lock()
	started := l.started
	l.started = false
	l.mu.Unlock()
	if started {
		gohook.End()
		l.log.Debug("hotkey listener stopped")
	}
}

// Done is closed once the event loop has exited.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}
