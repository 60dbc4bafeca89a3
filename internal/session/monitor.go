// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoRefresher indicates the store was built without an auth gateway.
var ErrNoRefresher = errors.New("session: no refresher configured")

// =============================================================================
// INACTIVITY MONITOR
// =============================================================================

// Phase is the monitor's position in the warning/forced-logout sequence.
type Phase int

const (
	// PhaseWatching: timers armed, no warning shown.
	PhaseWatching Phase = iota
	// PhaseWarning: the warning dialog is up, countdown running.
	PhaseWarning
	// PhaseExpired: the session timed out; logout has been requested.
	PhaseExpired
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case PhaseWatching:
		return "watching"
	case PhaseWarning:
		return "warning"
	case PhaseExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Transition is the outcome of a single Tick evaluation.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionWarn
	TransitionExpire
)

// MonitorConfig holds the inactivity schedule.
type MonitorConfig struct {
	// WarningAfter is how long with no activity before the warning shows.
	WarningAfter time.Duration

	// ExpireAfter is the total inactivity before forced logout. The visible
	// countdown therefore runs for ExpireAfter - WarningAfter.
	ExpireAfter time.Duration

	// Now is the clock; defaults to time.Now. Injectable so tests can
	// simulate elapsed time instead of sleeping.
	Now func() time.Time
}

// DefaultMonitorConfig returns the stock schedule: warn at 15 minutes,
// force logout at 30 minutes of total inactivity.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		WarningAfter: 15 * time.Minute,
		ExpireAfter:  30 * time.Minute,
	}
}

// Monitor watches for prolonged operator inactivity and drives the
// two-stage warning -> logout sequence. It holds no timers of its own;
// the owning view ticks it once per second and reacts to the returned
// transitions, so unmounting the view tears the whole thing down.
type Monitor struct {
	mu sync.Mutex

	phase        Phase
	warningAfter time.Duration
	expireAfter  time.Duration

	now      func() time.Time
	warnAt   time.Time
	expireAt time.Time
}

// NewMonitor creates a monitor in the watching phase with timers armed
// from the current moment. A schedule where the warning would not precede
// expiry is replaced by the default schedule.
func NewMonitor(cfg MonitorConfig) *Monitor {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.WarningAfter <= 0 || cfg.ExpireAfter <= cfg.WarningAfter {
		def := DefaultMonitorConfig()
		cfg.WarningAfter = def.WarningAfter
		cfg.ExpireAfter = def.ExpireAfter
	}

	m := &Monitor{
		warningAfter: cfg.WarningAfter,
		expireAfter:  cfg.ExpireAfter,
		now:          cfg.Now,
	}
	m.rearmLocked()
	return m
}

// rearmLocked restarts the full cycle from the current moment.
func (m *Monitor) rearmLocked() {
	now := m.now()
	m.phase = PhaseWatching
	m.warnAt = now.Add(m.warningAfter)
	m.expireAt = now.Add(m.expireAfter)
}

// Activity records operator interaction. In the watching and warning
// phases this cancels the pending cycle and re-arms fresh timers from this
// moment -- activity while the warning shows is equivalent to dismissing
// it, so continuous activity can never let expiry fire. Once expired,
// activity is ignored until Reset.
func (m *Monitor) Activity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseExpired {
		return
	}
	m.rearmLocked()
}

// Dismiss is the explicit "stay logged in" choice while the warning is
// showing. The next cycle is measured from the dismissal moment.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhaseWarning {
		return
	}
	m.rearmLocked()
}

// SetSchedule replaces the inactivity schedule and re-arms the cycle from
// now, so a config reload takes effect without a re-login. Invalid
// schedules fall back to the default, matching NewMonitor. No effect once
// expired.
func (m *Monitor) SetSchedule(warningAfter, expireAfter time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if warningAfter <= 0 || expireAfter <= warningAfter {
		def := DefaultMonitorConfig()
		warningAfter = def.WarningAfter
		expireAfter = def.ExpireAfter
	}
	m.warningAfter = warningAfter
	m.expireAfter = expireAfter
	if m.phase == PhaseExpired {
		return
	}
	m.rearmLocked()
}

// Reset re-arms the monitor after a fresh login.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rearmLocked()
}

// Tick evaluates the schedule against the current clock and advances the
// phase at most one step. Pure timer arithmetic; it cannot fail.
func (m *Monitor) Tick() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	switch m.phase {
	case PhaseWatching:
		if !now.Before(m.expireAt) {
			// The clock jumped past the whole cycle (suspend/resume).
			m.phase = PhaseExpired
			return TransitionExpire
		}
		if !now.Before(m.warnAt) {
			m.phase = PhaseWarning
			return TransitionWarn
		}
	case PhaseWarning:
		if !now.Before(m.expireAt) {
			m.phase = PhaseExpired
			return TransitionExpire
		}
	}
	return TransitionNone
}

// Phase returns the current phase.
func (m *Monitor) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Remaining returns the time left until forced logout, clamped at zero.
// While the warning shows this is the value the countdown displays.
func (m *Monitor) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining := m.expireAt.Sub(m.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent once per second to drive the monitor.
type TickMsg struct {
	Time time.Time
}

// WarningMsg signals the warning dialog should open.
type WarningMsg struct {
	Remaining time.Duration
}

// ExpiredMsg signals the session timed out and logout must run.
type ExpiredMsg struct{}

// ExtendedMsg signals the operator chose to stay logged in.
type ExtendedMsg struct{}

// TickCmd schedules the next monitor tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes one tick and returns the follow-up commands:
// a warning or expiry message when a transition fired, plus the next tick
// (unless expired, at which point the loop stops).
func (m *Monitor) HandleTick() tea.Cmd {
	switch m.Tick() {
	case TransitionWarn:
		remaining := m.Remaining()
		return tea.Batch(
			func() tea.Msg { return WarningMsg{Remaining: remaining} },
			TickCmd(),
		)
	case TransitionExpire:
		return func() tea.Msg { return ExpiredMsg{} }
	default:
		return TickCmd()
	}
}

// FormatRemaining formats a countdown as M:SS for display.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSecs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", totalSecs/60, totalSecs%60)
}
