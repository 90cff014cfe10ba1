package typist

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/autotype/internal/audio"
	"github.com/verte-zerg/autotype/internal/keys"
	"github.com/verte-zerg/autotype/internal/model"
	"github.com/verte-zerg/autotype/internal/pacing"
)

func (c *Controller) work() {
	c.cue.Beep(audio.DefaultFreq, audio.DefaultDurationMs)
	outcome, err := c.typeText()
	c.finish(outcome, err)
}

// typeText types from the cursor to the end of the text. Keystroke errors
// end the session; nothing is retried.
func (c *Controller) typeText() (model.Outcome, error) {
	for {
		cursor := c.position()
		if cursor >= len(c.text) {
			return model.OutcomeCompleted, nil
		}
		if c.stopRequested() {
			return model.OutcomeStopped, nil
		}
		ch := c.text[cursor]

		if c.gen.Chance(c.cfg.MistakeProb) {
			n := c.gen.MistakeLen(c.cfg.MistakeLenMin, c.cfg.MistakeLenMax)
			if err := c.mistake(n); err != nil {
				return model.OutcomeFailed, err
			}
			// A burst may outlive a stop request; the correct character
			// must not follow one.
			if c.stopRequested() {
				return model.OutcomeStopped, nil
			}
		}

		if err := c.keys.TypeText(string(ch)); err != nil {
			return model.OutcomeFailed, fmt.Errorf("failed to type %q at %d: %w", ch, cursor, err)
		}
		c.mu.Lock()
		c.cursor++
		c.mu.Unlock()

		c.sleep(pacing.Seconds(pacing.CharDelay(c.cfg, ch, c.gen)), c.stop)
	}
}

func (c *Controller) mistake(n int) error {
	c.mu.Lock()
	c.mistakes++
	c.mu.Unlock()
	if n <= 0 {
		return nil
	}
	if err := c.keys.TypeText(c.gen.Mistake(n)); err != nil {
		return fmt.Errorf("failed to type mistake: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := c.keys.PressKey(keys.Backspace); err != nil {
			return fmt.Errorf("failed to erase mistake: %w", err)
		}
	}
	return nil
}

func (c *Controller) finish(outcome model.Outcome, err error) {
	c.cue.Beep(audio.DefaultFreq, audio.DefaultDurationMs)

	c.mu.Lock()
	rep := model.Report{
		Outcome:   outcome,
		Typed:     c.cursor,
		Mistakes:  c.mistakes,
		StartedAt: c.startedAt,
		EndedAt:   c.now(),
		Err:       err,
	}
	if outcome != model.OutcomeCompleted {
		rep.Leftover = string(c.text[c.cursor:])
	}
	c.report = rep
	c.state = StateDone
	c.mu.Unlock()

	fields := []zap.Field{
		zap.Stringer("outcome", outcome),
		zap.Int("typed", rep.Typed),
		zap.Int("remaining", len(c.text)-rep.Typed),
		zap.Int("mistakes", rep.Mistakes),
		zap.Duration("elapsed", rep.Duration()),
	}
	if err != nil {
		c.log.Error("typing failed", append(fields, zap.Error(err))...)
	} else {
		c.log.Info("typing finished", fields...)
	}
	close(c.done)
}

func (c *Controller) position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Controller) stopRequested() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}
