package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verte-zerg/countdown/internal/model"
	"github.com/verte-zerg/countdown/internal/persist"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	saved map[string]any
	count int
}

func (r *recorder) Save(key string, value any) {
	if r.saved == nil {
		r.saved = map[string]any{}
	}
	r.saved[key] = value
	r.count++
}

var target = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func newController(t *testing.T, state model.State, before time.Duration) (*Controller, *fakeClock, *recorder) {
	t.Helper()
	clock := &fakeClock{t: target.Add(-before)}
	rec := &recorder{}
	return New(state, target, rec, clock.Now), clock, rec
}

// tickSecond mirrors the UI loop: one second passes, then the tick fires.
func tickSecond(c *Controller, clock *fakeClock) {
	clock.Advance(time.Second)
	c.Tick()
}

func TestAutomaticReachesZeroAfterTenTicks(t *testing.T) {
	c, clock, _ := newController(t, model.DefaultState(), 10*time.Second)
	c.Tick()
	require.Equal(t, model.TimeRemaining{Seconds: 10}, c.Snapshot().Remaining)

	zeroAt := -1
	for i := 1; i <= 10; i++ {
		tickSecond(c, clock)
		if c.Finished() && zeroAt < 0 {
			zeroAt = i
		}
	}
	assert.Equal(t, 10, zeroAt)
	assert.True(t, c.Snapshot().Remaining.IsZero())
}

func TestAutomaticIdempotentAtZero(t *testing.T) {
	c, clock, rec := newController(t, model.DefaultState(), -time.Hour)
	c.Tick()
	require.True(t, c.Finished())
	saves := rec.count
	gen := c.TickGeneration()

	for i := 0; i < 5; i++ {
		tickSecond(c, clock)
		assert.True(t, c.Finished())
	}
	assert.Equal(t, saves, rec.count, "no writes once settled at zero")
	assert.Equal(t, gen, c.TickGeneration())
}

func TestAutomaticDecomposition(t *testing.T) {
	before := 3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 500*time.Millisecond
	c, _, rec := newController(t, model.DefaultState(), before)
	assert.True(t, c.Tick())
	want := model.TimeRemaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6}
	assert.Equal(t, want, c.Snapshot().Remaining)
	assert.Equal(t, want, rec.saved[persist.KeyTimeLeft])
}

func TestManualCountsDownAndStaysAtZero(t *testing.T) {
	c, clock, _ := newController(t, model.DefaultState(), 48*time.Hour)
	c.ToggleMode()
	require.NoError(t, c.SetField(model.FieldSeconds, 5))
	require.True(t, c.Snapshot().ManualSet())

	for i := 0; i < 5; i++ {
		tickSecond(c, clock)
	}
	assert.True(t, c.Finished())

	assert.False(t, c.Tick(), "sixth tick leaves zero unchanged")
	assert.Equal(t, model.TimeRemaining{}, c.Snapshot().Remaining)
}

func TestManualDecrementBorrows(t *testing.T) {
	state := model.DefaultState()
	state.Mode = model.ModeManual
	state.Remaining = model.TimeRemaining{Days: 1}
	state.ManualTimeSet = model.BoolPtr(true)
	c, _, _ := newController(t, state, time.Hour)

	c.Tick()
	assert.Equal(t, model.TimeRemaining{Hours: 23, Minutes: 59, Seconds: 59}, c.Snapshot().Remaining)
}

func TestManualNeverSetSitsAtZero(t *testing.T) {
	state := model.DefaultState()
	state.Mode = model.ModeManual
	c, _, _ := newController(t, state, time.Hour)

	assert.False(t, c.Tick())
	assert.True(t, c.Finished())
	assert.Nil(t, c.Snapshot().ManualTimeSet)
}

func TestPauseFreezesAndResumes(t *testing.T) {
	state := model.DefaultState()
	state.Mode = model.ModeManual
	state.Remaining = model.TimeRemaining{Minutes: 1}
	state.ManualTimeSet = model.BoolPtr(true)
	c, clock, rec := newController(t, state, time.Hour)

	c.TogglePause()
	assert.Equal(t, true, rec.saved[persist.KeyPaused])
	for i := 0; i < 10; i++ {
		tickSecond(c, clock)
	}
	assert.Equal(t, model.TimeRemaining{Minutes: 1}, c.Snapshot().Remaining)

	c.TogglePause()
	tickSecond(c, clock)
	assert.Equal(t, model.TimeRemaining{Seconds: 59}, c.Snapshot().Remaining)
	assert.Equal(t, false, rec.saved[persist.KeyPaused])
}

func TestPauseInAutomaticMode(t *testing.T) {
	c, clock, _ := newController(t, model.DefaultState(), time.Minute)
	c.Tick()
	c.TogglePause()
	clock.Advance(30 * time.Second)
	c.Tick()
	assert.Equal(t, model.TimeRemaining{Minutes: 1}, c.Snapshot().Remaining)

	c.TogglePause()
	c.Tick()
	assert.Equal(t, model.TimeRemaining{Seconds: 30}, c.Snapshot().Remaining)
}

func TestResetManualDeclinedAndAccepted(t *testing.T) {
	state := model.DefaultState()
	state.Mode = model.ModeManual
	state.Remaining = model.TimeRemaining{Hours: 2}
	state.ManualTimeSet = model.BoolPtr(true)
	state.Paused = true
	c, _, rec := newController(t, state, time.Hour)

	before := c.Snapshot()
	assert.False(t, c.Reset(func() bool { return false }))
	assert.Equal(t, before, c.Snapshot())
	assert.Zero(t, rec.count)

	assert.True(t, c.Reset(func() bool { return true }))
	after := c.Snapshot()
	assert.Equal(t, model.TimeRemaining{}, after.Remaining)
	require.NotNil(t, after.ManualTimeSet)
	assert.False(t, *after.ManualTimeSet)
	assert.False(t, after.Paused)
	assert.Equal(t, false, rec.saved[persist.KeyManualTimeSet])
	assert.Equal(t, false, rec.saved[persist.KeyPaused])
}

func TestResetAutomaticRecomputes(t *testing.T) {
	state := model.DefaultState()
	state.Paused = true
	c, _, _ := newController(t, state, 90*time.Second)

	assert.True(t, c.Reset(nil))
	snap := c.Snapshot()
	assert.Equal(t, model.TimeRemaining{Minutes: 1, Seconds: 30}, snap.Remaining)
	assert.False(t, snap.Paused)
}

func TestModeSwitching(t *testing.T) {
	c, clock, rec := newController(t, model.DefaultState(), 2*time.Hour)
	c.Tick()
	auto := c.Snapshot().Remaining

	c.ToggleMode()
	assert.Equal(t, model.ModeManual, c.Snapshot().Mode)
	assert.Equal(t, auto, c.Snapshot().Remaining, "manual starts from last automatic value")
	assert.Equal(t, true, rec.saved[persist.KeyManualMode])

	require.NoError(t, c.SetField(model.FieldDays, 7))
	tickSecond(c, clock)
	assert.Equal(t, 7, c.Snapshot().Remaining.Days)

	c.ToggleMode()
	snap := c.Snapshot()
	assert.Equal(t, model.ModeAutomatic, snap.Mode)
	assert.Equal(t, model.FromDuration(target.Sub(clock.Now())), snap.Remaining)
	require.NotNil(t, snap.ManualTimeSet)
	assert.False(t, *snap.ManualTimeSet)
}

func TestSetFieldValidation(t *testing.T) {
	c, _, _ := newController(t, model.DefaultState(), time.Hour)
	assert.ErrorIs(t, c.SetField(model.FieldHours, 3), ErrNotManual)

	c.ToggleMode()
	assert.ErrorIs(t, c.SetField(model.FieldHours, 24), ErrOutOfRange)
	assert.ErrorIs(t, c.SetField(model.FieldDays, -1), ErrOutOfRange)
	assert.NoError(t, c.SetField(model.FieldDays, 999))
	assert.Equal(t, 999, c.Snapshot().Remaining.Days)
}

func TestSetFontSize(t *testing.T) {
	c, _, rec := newController(t, model.DefaultState(), time.Hour)
	assert.ErrorIs(t, c.SetFontSize(250), ErrFontSize)
	assert.ErrorIs(t, c.SetFontSize(19), ErrFontSize)
	assert.Equal(t, model.DefaultFontSize, c.Snapshot().FontSize)

	assert.NoError(t, c.SetFontSize(20))
	assert.NoError(t, c.SetFontSize(200))
	assert.Equal(t, 200, c.Snapshot().FontSize)
	assert.Equal(t, 200, rec.saved[persist.KeyFontSize])
}

func TestTickGenerationChangesWithDependencies(t *testing.T) {
	c, _, _ := newController(t, model.DefaultState(), time.Hour)
	g0 := c.TickGeneration()
	c.TogglePause()
	g1 := c.TickGeneration()
	assert.NotEqual(t, g0, g1)
	require.NoError(t, c.SetFontSize(100))
	assert.Equal(t, g1, c.TickGeneration(), "font size is not a tick dependency")
	c.ToggleMode()
	assert.NotEqual(t, g1, c.TickGeneration())
}

func TestSetTarget(t *testing.T) {
	c, clock, _ := newController(t, model.DefaultState(), time.Hour)
	c.SetTarget(clock.Now().Add(2 * time.Minute))
	assert.Equal(t, model.TimeRemaining{Minutes: 2}, c.Snapshot().Remaining)
}

func TestSnapshotIsCopy(t *testing.T) {
	state := model.DefaultState()
	state.ManualTimeSet = model.BoolPtr(true)
	c, _, _ := newController(t, state, time.Hour)
	snap := c.Snapshot()
	*snap.ManualTimeSet = false
	assert.True(t, c.Snapshot().ManualSet())
}

func TestDefaultTarget(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), DefaultTarget(now))
}
