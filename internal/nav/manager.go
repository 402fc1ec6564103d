package nav

import (
	"context"
	"errors"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/source"
)

// Action selects what a RenderPage call should do with the session.
type Action int

const (
	// ActionStart begins a listing at the first page.
	ActionStart Action = iota
	// ActionNext advances one page.
	ActionNext
	// ActionPrev replays the previous page.
	ActionPrev
	// ActionChangeFilter restarts the listing under the supplied filter.
	ActionChangeFilter
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionChangeFilter:
		return "change_filter"
	default:
		return "unknown"
	}
}

// Manager errors.
var (
	// ErrSessionNotFound indicates an unknown or already-ended session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownAction indicates an action value outside the enum.
	ErrUnknownAction = errors.New("unknown action")
)

// session pairs a coordinator with its serialization guard.
type session struct {
	// mu serializes actions for this session. The hosting chat layer is
	// expected to deliver one update at a time per user; the mutex is the
	// in-process backstop that makes a double-tapped button observe the
	// already-updated state instead of racing it.
	mu sync.Mutex

	coord *Coordinator
}

// Manager owns the browsing sessions of a bot process, keyed by ULID.
// Unrelated sessions share nothing mutable and proceed concurrently.
type Manager struct {
	src    source.Source
	fmtr   pager.Formatter
	env    pager.Envelope
	limits Limits
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewManager creates an empty session manager.
func NewManager(src source.Source, f pager.Formatter, env pager.Envelope, limits Limits, logger zerolog.Logger) *Manager {
	return &Manager{
		src:      src,
		fmtr:     f,
		env:      env,
		limits:   limits,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// NewSession registers a fresh idle session and returns its ID.
func (m *Manager) NewSession() string {
	id := ulid.Make().String()
	m.mu.Lock()
	m.sessions[id] = &session{
		coord: NewCoordinator(m.src, m.fmtr, m.env, m.limits, m.logger),
	}
	m.mu.Unlock()

	m.logger.Debug().Str("session_id", id).Msg("session created")
	return id
}

// RenderPage executes one navigation action for the session and returns the
// page to present. Start and ChangeFilter use the supplied filter; Next and
// Prev ignore it.
func (m *Manager) RenderPage(ctx context.Context, sessionID string, filter pager.Filter, action Action) (Page, error) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return Page{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch action {
	case ActionStart:
		return sess.coord.Start(ctx, filter)
	case ActionNext:
		return sess.coord.Next(ctx)
	case ActionPrev:
		return sess.coord.Prev(ctx)
	case ActionChangeFilter:
		return sess.coord.ChangeFilter(ctx, filter)
	default:
		return Page{}, ErrUnknownAction
	}
}

// EndSession tears down the session. Ending an unknown session is a no-op;
// an in-flight fetch for it simply has its result discarded on arrival.
func (m *Manager) EndSession(sessionID string) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		sess.mu.Lock()
		sess.coord.End()
		sess.mu.Unlock()
		m.logger.Debug().Str("session_id", sessionID).Msg("session ended")
	}
}
