package idle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock schedules timers on a virtual timeline that tests advance
// explicitly.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	when    time.Duration
	fn      func()
	fired   bool
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the virtual clock forward, firing due timers in order.
// Timers scheduled by fired callbacks run too when they fall inside the
// window.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.when > target {
				continue
			}
			if next == nil || t.when < next.when {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.when
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

type recorder struct {
	mu       sync.Mutex
	warnings int
	ticks    []int
	expires  int
}

func (r *recorder) config(clock Clock) Config {
	return Config{
		IdleWindow:    15 * time.Minute,
		WarningWindow: 60 * time.Second,
		Debounce:      time.Second,
		Clock:         clock,
		OnWarning: func() {
			r.mu.Lock()
			r.warnings++
			r.mu.Unlock()
		},
		OnTick: func(remaining int) {
			r.mu.Lock()
			r.ticks = append(r.ticks, remaining)
			r.mu.Unlock()
		},
		OnExpire: func() {
			r.mu.Lock()
			r.expires++
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshot() (int, []int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticks := make([]int, len(r.ticks))
	copy(ticks, r.ticks)
	return r.warnings, ticks, r.expires
}

func TestFullIdleWindowExpires(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	m := New(rec.config(clock))
	m.Start()

	clock.Advance(15*time.Minute - time.Second)
	assert.Equal(t, StateIdle, m.State())

	clock.Advance(time.Second)
	assert.Equal(t, StateWarning, m.State())
	warnings, _, expires := rec.snapshot()
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 0, expires)

	clock.Advance(60 * time.Second)
	assert.Equal(t, StateExpired, m.State())

	warnings, ticks, expires := rec.snapshot()
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 1, expires, "forced logout exactly once")
	require.Len(t, ticks, 60)
	assert.Equal(t, 59, ticks[0])
	assert.Equal(t, 0, ticks[len(ticks)-1], "countdown reaches exactly 0")
}

func TestTouchResetsIdleWindow(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	m := New(rec.config(clock))
	m.Start()

	clock.Advance(10 * time.Minute)
	m.Touch()
	// Debounce lands the reset one second after the touch.
	clock.Advance(time.Second)

	clock.Advance(15*time.Minute - time.Second)
	assert.Equal(t, StateIdle, m.State(), "window restarts from the reset")

	clock.Advance(time.Second)
	assert.Equal(t, StateWarning, m.State())
}

func TestTouchBurstDebounces(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	m := New(rec.config(clock))
	m.Start()

	for i := 0; i < 10; i++ {
		m.Touch()
		clock.Advance(100 * time.Millisecond)
	}
	// Only the trailing touch schedules a live reset.
	live := 0
	clock.mu.Lock()
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			live++
		}
	}
	clock.mu.Unlock()
	assert.Equal(t, 2, live, "one idle timer and one pending debounce")
}

func TestExtendDuringWarningRestartsIdle(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	m := New(rec.config(clock))
	m.Start()

	clock.Advance(15 * time.Minute)
	require.Equal(t, StateWarning, m.State())
	clock.Advance(30 * time.Second)
	assert.Equal(t, 30, m.Countdown())

	m.Extend()
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 60, m.Countdown())

	// The cancelled countdown must not fire.
	clock.Advance(60 * time.Second)
	_, _, expires := rec.snapshot()
	assert.Equal(t, 0, expires)

	// Full fresh window before the next warning.
	clock.Advance(15*time.Minute - 61*time.Second)
	assert.Equal(t, StateIdle, m.State())
	clock.Advance(time.Second)
	assert.Equal(t, StateWarning, m.State())
}

func TestStopClearsAllTimers(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	m := New(rec.config(clock))
	m.Start()

	clock.Advance(15 * time.Minute)
	require.Equal(t, StateWarning, m.State())

	m.Stop()
	clock.Advance(time.Hour)

	warnings, ticks, expires := rec.snapshot()
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 0, expires, "no callbacks after Stop")
	assert.LessOrEqual(t, len(ticks), 0)
	assert.Equal(t, StateStopped, m.State())
}

func TestDefaults(t *testing.T) {
	m := New(Config{})
	assert.Equal(t, StateStopped, m.State())
	assert.Equal(t, 60, m.Countdown())
	m.Stop()
}
