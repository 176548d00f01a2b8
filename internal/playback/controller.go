// Package playback drives the countdown through a generated session's
// pose list. The controller is a synchronous state machine: callers (the
// playback manager's ticker, or tests) advance it one second at a time
// via Tick.
package playback

import (
	"errors"
	"sync"

	"asanaflow/yoga-app/internal/domain"
)

// State is the playback lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateComplete State = "complete"
)

var (
	ErrNoPoses    = errors.New("session has no poses to play")
	ErrNotIdle    = errors.New("playback already started")
	ErrNotRunning = errors.New("playback is not running")
	ErrNotPaused  = errors.New("playback is not paused")
	ErrComplete   = errors.New("playback is complete")
)

// Status is a point-in-time snapshot of playback state.
type Status struct {
	State            State   `json:"state"`
	PoseIndex        int     `json:"poseIndex"`
	TotalPoses       int     `json:"totalPoses"`
	RemainingSeconds int     `json:"remainingSeconds"`
	Progress         float64 `json:"progress"`
}

// Controller steps through one session's poses. All methods are safe for
// concurrent use.
type Controller struct {
	mu        sync.Mutex
	poses     []domain.SessionPoseEntry
	state     State
	index     int
	remaining int
	progress  float64
}

// NewController creates an idle controller over the session's pose list.
func NewController(session *domain.YogaSession) (*Controller, error) {
	if session == nil || len(session.Poses) == 0 {
		return nil, ErrNoPoses
	}
	return &Controller{
		poses: session.Poses,
		state: StateIdle,
	}, nil
}

// Start transitions Idle -> Running and initializes the countdown for the
// first pose if it is not already set.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrNotIdle
	}
	c.state = StateRunning
	if c.remaining == 0 {
		c.remaining = c.poses[c.index].DurationSeconds
	}
	return nil
}

// Pause halts the countdown without resetting the remaining time.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.state = StatePaused
	return nil
}

// Resume continues a paused countdown from the stored remaining time.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused {
		return ErrNotPaused
	}
	c.state = StateRunning
	return nil
}

// Tick advances the countdown by one second. It is a no-op unless the
// controller is running. A tick that finds a zeroed countdown (after Next
// or Previous) re-initializes it to the current pose's duration instead of
// decrementing. When the countdown reaches zero the controller advances to
// the next pose, or to Complete on the last one.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}

	if c.remaining == 0 {
		c.remaining = c.poses[c.index].DurationSeconds
		return
	}

	c.remaining--
	c.updateProgress()

	if c.remaining == 0 {
		c.advance()
	}
}

// advance moves to the next pose or completes the session.
// Caller holds the lock.
func (c *Controller) advance() {
	if c.index >= len(c.poses)-1 {
		c.state = StateComplete
		return
	}
	c.index++
	c.remaining = c.poses[c.index].DurationSeconds
}

// Next moves forward one pose, clamped to the last index. The countdown is
// zeroed so the next tick re-initializes it; Running/Paused status is not
// changed. No-op at the last pose.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateComplete {
		return ErrComplete
	}
	if c.index >= len(c.poses)-1 {
		return nil
	}
	c.index++
	c.remaining = 0
	c.progress = float64(c.index) / float64(len(c.poses)) * 100
	return nil
}

// Previous moves back one pose, clamped to index 0. No-op at the first pose.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateComplete {
		return ErrComplete
	}
	if c.index <= 0 {
		return nil
	}
	c.index--
	c.remaining = 0
	c.progress = float64(c.index) / float64(len(c.poses)) * 100
	return nil
}

// Reset returns to Idle with all progress and timers cleared. Valid from
// any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	c.index = 0
	c.remaining = 0
	c.progress = 0
}

// Snapshot returns the current playback status.
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Status{
		State:            c.state,
		PoseIndex:        c.index,
		TotalPoses:       len(c.poses),
		RemainingSeconds: c.remaining,
		Progress:         c.progress,
	}
}

// updateProgress recomputes overall progress as completed poses plus the
// fractional progress of the current one, scaled to [0,100].
// Caller holds the lock.
func (c *Controller) updateProgress() {
	dur := c.poses[c.index].DurationSeconds
	fraction := float64(dur-c.remaining) / float64(dur)
	c.progress = (float64(c.index) + fraction) / float64(len(c.poses)) * 100
}
