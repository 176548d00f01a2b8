package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"asanaflow/yoga-app/internal/playback"
	"asanaflow/yoga-app/internal/repository"
)

// PlaybackManager owns at most one playback controller per session and the
// wall-clock ticker that drives it. A controller's ticker is the only
// cancellable resource in the system: it is always stopped before a new
// one starts for the same session, and on pause, reset, and shutdown.
type PlaybackManager struct {
	mu          sync.Mutex
	sessionRepo repository.SessionRepository
	players     map[string]*player
}

type player struct {
	ctrl *playback.Controller
	stop chan struct{}
}

// NewPlaybackManager creates a playback manager over the session store.
func NewPlaybackManager(sessionRepo repository.SessionRepository) *PlaybackManager {
	return &PlaybackManager{
		sessionRepo: sessionRepo,
		players:     make(map[string]*player),
	}
}

// Start begins playback for a stored session, creating the controller on
// first use.
func (m *PlaybackManager) Start(ctx context.Context, sessionID string) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[sessionID]
	if !ok {
		session, err := m.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return playback.Status{}, ErrSessionNotFound
			}
			return playback.Status{}, err
		}
		ctrl, err := playback.NewController(session)
		if err != nil {
			return playback.Status{}, err
		}
		p = &player{ctrl: ctrl}
		m.players[sessionID] = p
	}

	if err := p.ctrl.Start(); err != nil {
		return playback.Status{}, err
	}
	m.startTicker(p)
	return p.ctrl.Snapshot(), nil
}

// Pause halts the countdown and stops the ticker.
func (m *PlaybackManager) Pause(sessionID string) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerFor(sessionID)
	if err != nil {
		return playback.Status{}, err
	}
	if err := p.ctrl.Pause(); err != nil {
		return playback.Status{}, err
	}
	stopTicker(p)
	return p.ctrl.Snapshot(), nil
}

// Resume continues a paused countdown.
func (m *PlaybackManager) Resume(sessionID string) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerFor(sessionID)
	if err != nil {
		return playback.Status{}, err
	}
	if err := p.ctrl.Resume(); err != nil {
		return playback.Status{}, err
	}
	m.startTicker(p)
	return p.ctrl.Snapshot(), nil
}

// Next skips forward one pose.
func (m *PlaybackManager) Next(sessionID string) (playback.Status, error) {
	return m.navigate(sessionID, (*playback.Controller).Next)
}

// Previous skips back one pose.
func (m *PlaybackManager) Previous(sessionID string) (playback.Status, error) {
	return m.navigate(sessionID, (*playback.Controller).Previous)
}

func (m *PlaybackManager) navigate(sessionID string, move func(*playback.Controller) error) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerFor(sessionID)
	if err != nil {
		return playback.Status{}, err
	}
	if err := move(p.ctrl); err != nil {
		return playback.Status{}, err
	}
	return p.ctrl.Snapshot(), nil
}

// Reset returns the session's playback to idle and stops its ticker.
func (m *PlaybackManager) Reset(sessionID string) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerFor(sessionID)
	if err != nil {
		return playback.Status{}, err
	}
	stopTicker(p)
	p.ctrl.Reset()
	return p.ctrl.Snapshot(), nil
}

// Status reports the current playback status for the session.
func (m *PlaybackManager) Status(sessionID string) (playback.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerFor(sessionID)
	if err != nil {
		return playback.Status{}, err
	}
	return p.ctrl.Snapshot(), nil
}

// Shutdown stops every ticker. Controllers keep their state; playback can
// only continue within the same process, so this is teardown-only.
func (m *PlaybackManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		stopTicker(p)
	}
}

// playerFor returns the existing player for the session. Caller holds the lock.
func (m *PlaybackManager) playerFor(sessionID string) (*player, error) {
	p, ok := m.players[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return p, nil
}

// startTicker launches the once-per-second tick loop, cancelling any prior
// loop for the same player first. Caller holds the lock.
func (m *PlaybackManager) startTicker(p *player) {
	stopTicker(p)
	stop := make(chan struct{})
	p.stop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.ctrl.Tick()
				if p.ctrl.Snapshot().State == playback.StateComplete {
					return
				}
			}
		}
	}()
}

// stopTicker cancels the player's tick loop if one is active.
func stopTicker(p *player) {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}
