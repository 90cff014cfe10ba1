// Package typist runs the hotkey-toggled background typing session.
//
// A Controller owns one session. The first toggle starts a worker
// goroutine that types the text rune by rune; the second asks it to stop.
// Stopping is cooperative: the worker checks for a stop request before each
// character and after each mistake burst, and wakes early from its
// inter-character sleep. Once the worker has exited the session is Done and
// never starts again.
package typist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/autotype/internal/audio"
	"github.com/verte-zerg/autotype/internal/generator"
	"github.com/verte-zerg/autotype/internal/keys"
	"github.com/verte-zerg/autotype/internal/model"
)

// State is the lifecycle state of a typing session.
type State int

const (
	StateIdle State = iota
	StateActive
	StateStopRequested
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopRequested:
		return "stopping"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event is a request delivered to the controller's run loop.
type Event int

const (
	// EventToggle starts an idle session or stops an active one.
	EventToggle Event = iota
	// EventStop stops an active session and is ignored otherwise.
	EventStop
)

const eventQueueSize = 16

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCue sets the cue played when typing starts and ends.
func WithCue(cue audio.Cue) Option {
	return func(c *Controller) {
		if cue != nil {
			c.cue = cue
		}
	}
}

// WithGenerator sets the random source for mistakes and jitter.
func WithGenerator(gen *generator.Generator) Option {
	return func(c *Controller) {
		if gen != nil {
			c.gen = gen
		}
	}
}

// Snapshot is a consistent view of the session for display.
type Snapshot struct {
	State     State
	Cursor    int
	Total     int
	Mistakes  int
	StartedAt time.Time
}

// Controller owns the typing session and its worker.
type Controller struct {
	text []rune
	cfg  model.TypingConfig
	keys keys.Injector
	cue  audio.Cue
	gen  *generator.Generator
	log  *zap.Logger

	sleep func(d time.Duration, stop <-chan struct{})
	now   func() time.Time

	events chan Event
	stop   chan struct{}
	done   chan struct{}

	// mu guards the fields below.
	mu        sync.Mutex
	state     State
	cursor    int
	mistakes  int
	startedAt time.Time
	report    model.Report
}

// New creates an idle controller for text. cfg must already be validated.
func New(text string, cfg model.TypingConfig, injector keys.Injector, opts ...Option) *Controller {
	c := &Controller{
		text:   []rune(text),
		cfg:    cfg,
		keys:   injector,
		cue:    audio.Nop{},
		gen:    generator.New(),
		log:    zap.NewNop(),
		sleep:  sleepUntilStopped,
		now:    time.Now,
		events: make(chan Event, eventQueueSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Toggle starts an idle session or requests a stop of an active one, and
// returns the resulting state. It is a no-op once a stop was requested.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle:
		c.startLocked()
	case StateActive:
		c.requestStopLocked()
	}
	return c.state
}

// TryStart starts the worker if the session is idle.
func (c *Controller) TryStart() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return false
	}
	c.startLocked()
	return true
}

// RequestStop asks an active worker to stop. It does not wait.
func (c *Controller) RequestStop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return false
	}
	c.requestStopLocked()
	return true
}

// IsDone reports whether the worker has finished.
func (c *Controller) IsDone() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Done is closed once the worker has finished.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current progress.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Cursor:    c.cursor,
		Total:     len(c.text),
		Mistakes:  c.mistakes,
		StartedAt: c.startedAt,
	}
}

// Report returns the final report once the session is done.
func (c *Controller) Report() (model.Report, bool) {
	if !c.IsDone() {
		return model.Report{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report, true
}

// Wait blocks until the session is done or ctx is cancelled.
func (c *Controller) Wait(ctx context.Context) (model.Report, error) {
	select {
	case <-c.done:
		rep, _ := c.Report()
		return rep, nil
	case <-ctx.Done():
		return model.Report{}, ctx.Err()
	}
}

// Shutdown requests a stop if the worker is running and waits for it to
// finish or for ctx to be cancelled. It reports false when typing never
// started.
func (c *Controller) Shutdown(ctx context.Context) (model.Report, bool, error) {
	if !c.IsDone() {
		if c.State() == StateIdle {
			return model.Report{}, false, nil
		}
		if c.RequestStop() {
			c.log.Info("waiting for worker to stop")
		}
	}
	rep, err := c.Wait(ctx)
	if err != nil {
		return model.Report{}, true, err
	}
	return rep, true, nil
}

// Post enqueues an event for Run without blocking. Events are dropped when
// the queue is full.
func (c *Controller) Post(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		c.log.Warn("event queue full, dropping event", zap.Int("event", int(ev)))
		return false
	}
}

// Run applies posted events until ctx is cancelled or the session is done.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case ev := <-c.events:
			c.apply(ev)
		}
	}
}

func (c *Controller) apply(ev Event) {
	before := c.State()
	var after State
	switch ev {
	case EventToggle:
		after = c.Toggle()
	case EventStop:
		c.RequestStop()
		after = c.State()
	default:
		c.log.Warn("unknown event", zap.Int("event", int(ev)))
		return
	}
	if before != after {
		c.log.Debug("state changed", zap.Stringer("from", before), zap.Stringer("to", after))
	}
}

func (c *Controller) startLocked() {
	c.state = StateActive
	c.startedAt = c.now()
	c.log.Info("typing started",
		zap.Int("chars", len(c.text)),
		zap.Int("cursor", c.cursor),
		zap.Float64("base_delay", c.cfg.BaseDelay),
	)
	go c.work()
}

func (c *Controller) requestStopLocked() {
	c.state = StateStopRequested
	close(c.stop)
	c.log.Info("stop requested", zap.Int("cursor", c.cursor))
}

func sleepUntilStopped(d time.Duration, stop <-chan struct{}) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-stop:
	}
}
