// Package countdown owns the countdown state machine: the one-second tick,
// pause, reset, mode switching and manual edits. Every transition that
// changes a persisted field mirrors it to a Persister before returning.
package countdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/countdown/internal/model"
	"github.com/verte-zerg/countdown/internal/persist"
)

var (
	// ErrNotManual is returned when a manual edit is attempted in automatic mode.
	ErrNotManual = errors.New("manual edits require manual mode")
	// ErrOutOfRange is returned for manual values outside a field's bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrFontSize is returned for font sizes outside [20,200].
	ErrFontSize = fmt.Errorf("font size must be between %d and %d", model.MinFontSize, model.MaxFontSize)
)

// Persister receives every persisted field change.
type Persister interface {
	Save(key string, value any)
}

type nopPersister struct{}

func (nopPersister) Save(string, any) {}

// Controller holds the countdown state. It is not safe for concurrent use;
// all calls are expected from the UI event loop.
type Controller struct {
	state   model.State
	target  time.Time
	now     func() time.Time
	persist Persister
	gen     uint64
}

// New returns a Controller starting from state. A nil now uses time.Now and
// a nil persister discards writes.
func New(state model.State, target time.Time, p Persister, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	if p == nil {
		p = nopPersister{}
	}
	if !model.ValidFontSize(state.FontSize) {
		state.FontSize = model.DefaultFontSize
	}
	return &Controller{state: state, target: target, now: now, persist: p}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() model.State {
	s := c.state
	if s.ManualTimeSet != nil {
		s.ManualTimeSet = model.BoolPtr(*s.ManualTimeSet)
	}
	return s
}

// Target returns the instant automatic mode counts toward.
func (c *Controller) Target() time.Time {
	return c.target
}

// Finished reports whether the remaining time is all zero.
func (c *Controller) Finished() bool {
	return c.state.Remaining.IsZero()
}

// TickGeneration identifies the current set of tick dependencies. It changes
// whenever mode, pause, the manual-set flag or the remaining time changes, so
// a tick scheduled under an older generation is stale and must be dropped.
func (c *Controller) TickGeneration() uint64 {
	return c.gen
}

// Tick advances the countdown by one step. It reports whether the remaining
// time changed. Paused controllers do nothing.
func (c *Controller) Tick() bool {
	if c.state.Paused {
		return false
	}
	var next model.TimeRemaining
	if c.state.Manual() {
		next = model.FromSeconds(c.state.Remaining.Total() - 1)
	} else {
		next = c.untilTarget()
	}
	if next == c.state.Remaining {
		return false
	}
	c.setRemaining(next)
	return true
}

// TogglePause flips the pause flag.
func (c *Controller) TogglePause() {
	c.state.Paused = !c.state.Paused
	c.gen++
	c.persist.Save(persist.KeyPaused, c.state.Paused)
}

// Reset asks confirm first and applies nothing when it returns false. In
// manual mode the countdown is cleared; in automatic mode it is recomputed
// from the target. Reset always resumes a paused countdown.
func (c *Controller) Reset(confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}
	if c.state.Manual() {
		c.setRemaining(model.TimeRemaining{})
		c.setManualTimeSet(false)
	} else {
		c.setRemaining(c.untilTarget())
	}
	c.state.Paused = false
	c.gen++
	c.persist.Save(persist.KeyPaused, false)
	return true
}

// ToggleMode switches between automatic and manual timekeeping. Entering
// automatic mode discards manual progress; entering manual mode keeps the
// current remaining time as the starting duration.
func (c *Controller) ToggleMode() {
	if c.state.Manual() {
		c.state.Mode = model.ModeAutomatic
		c.setRemaining(c.untilTarget())
		c.setManualTimeSet(false)
	} else {
		c.state.Mode = model.ModeManual
	}
	c.gen++
	c.persist.Save(persist.KeyManualMode, c.state.Manual())
}

// SetField sets one manual field and marks the manual time as established.
func (c *Controller) SetField(f model.Field, v int) error {
	if !c.state.Manual() {
		return ErrNotManual
	}
	if !f.InRange(v) {
		return fmt.Errorf("%s=%d: %w (0-%d)", f, v, ErrOutOfRange, f.Max())
	}
	c.setRemaining(c.state.Remaining.With(f, v))
	c.setManualTimeSet(true)
	return nil
}

// SetFontSize changes the digit size.
func (c *Controller) SetFontSize(v int) error {
	if !model.ValidFontSize(v) {
		return ErrFontSize
	}
	if v == c.state.FontSize {
		return nil
	}
	c.state.FontSize = v
	c.persist.Save(persist.KeyFontSize, v)
	return nil
}

// SetTarget replaces the target instant, recomputing immediately in
// automatic mode.
func (c *Controller) SetTarget(t time.Time) {
	c.target = t
	if !c.state.Manual() {
		c.setRemaining(c.untilTarget())
	}
}

func (c *Controller) untilTarget() model.TimeRemaining {
	return model.FromDuration(c.target.Sub(c.now()))
}

func (c *Controller) setRemaining(t model.TimeRemaining) {
	if t == c.state.Remaining {
		return
	}
	c.state.Remaining = t
	c.gen++
	c.persist.Save(persist.KeyTimeLeft, t)
}

func (c *Controller) setManualTimeSet(v bool) {
	if c.state.ManualTimeSet != nil && *c.state.ManualTimeSet == v {
		return
	}
	c.state.ManualTimeSet = model.BoolPtr(v)
	c.gen++
	c.persist.Save(persist.KeyManualTimeSet, v)
}
