// Package idle implements the inactivity monitor: a timer-driven state
// machine that warns the user after a fixed window without input and forces a
// logout when the warning countdown runs out. The clock is injectable so
// tests can drive time deterministically.
package idle

import (
	"sync"
	"time"
)

// Defaults matching the application's session policy.
const (
	DefaultIdleWindow    = 15 * time.Minute
	DefaultWarningWindow = 60 * time.Second
	DefaultDebounce      = time.Second
)

// State is the monitor's lifecycle state.
type State int

const (
	// StateIdle means the user is considered active and no warning shows.
	StateIdle State = iota
	// StateWarning means the countdown to forced logout is running.
	StateWarning
	// StateExpired means the countdown reached zero and OnExpire fired.
	StateExpired
	// StateStopped means the monitor was stopped and all timers cleared.
	StateStopped
)

// Clock abstracts timer scheduling.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled call.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Config configures a Monitor. Zero durations take the defaults; a nil Clock
// uses the wall clock. Callbacks are optional and are invoked without
// internal locks held, so they may call back into the monitor.
type Config struct {
	IdleWindow    time.Duration
	WarningWindow time.Duration
	Debounce      time.Duration
	Clock         Clock

	// OnWarning fires on the Idle to Warning transition.
	OnWarning func()
	// OnTick fires each second while warning, with the seconds remaining.
	OnTick func(remaining int)
	// OnExpire fires once when the countdown reaches zero.
	OnExpire func()
}

// Monitor tracks user activity and drives the Idle/Warning/Expired states.
// Safe for concurrent use.
type Monitor struct {
	cfg Config

	mu            sync.Mutex
	state         State
	countdown     int
	idleTimer     Timer
	tickTimer     Timer
	debounceTimer Timer
}

// New creates a monitor. Call Start to arm it.
func New(cfg Config) *Monitor {
	if cfg.IdleWindow <= 0 {
		cfg.IdleWindow = DefaultIdleWindow
	}
	if cfg.WarningWindow <= 0 {
		cfg.WarningWindow = DefaultWarningWindow
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	return &Monitor{
		cfg:       cfg,
		state:     StateStopped,
		countdown: int(cfg.WarningWindow / time.Second),
	}
}

// Start arms the idle window. Starting an already running monitor resets it.
func (m *Monitor) Start() {
	m.reset()
}

// Touch records qualifying user input. Resets are debounced so rapid event
// bursts do not thrash the timers: the reset lands one debounce interval
// after the last touch.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.debounceTimer = m.cfg.Clock.AfterFunc(m.cfg.Debounce, m.reset)
}

// Extend is the explicit "stay signed in" action: it cancels any running
// countdown immediately and restarts the idle window from zero.
func (m *Monitor) Extend() {
	m.reset()
}

// Stop clears every timer. No callback fires after Stop returns.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimersLocked()
	m.state = StateStopped
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Countdown returns the seconds remaining in the warning countdown. Outside
// StateWarning it reports the full warning window.
func (m *Monitor) Countdown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countdown
}

func (m *Monitor) stopTimersLocked() {
	if m.idleTimer != nil {
		m.idleTimer.Stop()
		m.idleTimer = nil
	}
	if m.tickTimer != nil {
		m.tickTimer.Stop()
		m.tickTimer = nil
	}
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
		m.debounceTimer = nil
	}
}

func (m *Monitor) reset() {
	m.mu.Lock()
	m.stopTimersLocked()
	m.state = StateIdle
	m.countdown = int(m.cfg.WarningWindow / time.Second)
	m.idleTimer = m.cfg.Clock.AfterFunc(m.cfg.IdleWindow, m.idleElapsed)
	m.mu.Unlock()
}

func (m *Monitor) idleElapsed() {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateWarning
	m.countdown = int(m.cfg.WarningWindow / time.Second)
	m.tickTimer = m.cfg.Clock.AfterFunc(time.Second, m.tick)
	onWarning := m.cfg.OnWarning
	m.mu.Unlock()

	if onWarning != nil {
		onWarning()
	}
}

func (m *Monitor) tick() {
	m.mu.Lock()
	if m.state != StateWarning {
		m.mu.Unlock()
		return
	}
	m.countdown--
	remaining := m.countdown
	expired := remaining <= 0
	if expired {
		m.stopTimersLocked()
		m.state = StateExpired
	} else {
		m.tickTimer = m.cfg.Clock.AfterFunc(time.Second, m.tick)
	}
	onTick := m.cfg.OnTick
	onExpire := m.cfg.OnExpire
	m.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired && onExpire != nil {
		onExpire()
	}
}
