package order

import (
	"sync"
	"time"

	"github.com/skeemans/cafebot/internal/logger"
	"github.com/skeemans/cafebot/internal/telegram/tgctx"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Store keeps purchase sessions in memory, keyed by user id. Each session is
// only touched by the single in-flight handler for that user's update, so a
// plain RWMutex around the map is enough.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	handlers map[State]tele.HandlerFunc
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		handlers: make(map[State]tele.HandlerFunc),
	}
}

// Begin opens a fresh session in the given state, replacing any previous one.
func (s *Store) Begin(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &Session{State: st, StartedAt: time.Now()}
}

// State returns the current conversation state of a user, or StateIdle.
func (s *Store) State(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// Update runs fn against the user's session under the store lock.
// It reports whether a session existed.
func (s *Store) Update(userID int64, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// Snapshot returns a copy of the user's session.
func (s *Store) Snapshot(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Clear discards the user's session entirely.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// InProgress reports whether the user has an active conversation.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return ok && sess.State != StateIdle
}

// RegisterHandler associates a state with the handler that consumes its input.
func (s *Store) RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	s.handlers[st] = h
}

// Handle executes the handler registered for the user's current state, if any.
func (s *Store) Handle(c tele.Context) error {
	userID := c.Sender().ID
	current := s.State(userID)
	ctx := tgctx.BuildContext(c)
	logger.Debug(ctx, "orders", "fsm.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := s.handlers[current]; ok {
		return handler(c)
	}
	return nil
}
