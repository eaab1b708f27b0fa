package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps the sessions of every open browser in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A ttl of zero disables expiry.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with a fresh game.
func (s *Store) Create() *Session {
	sess := newSession(uuid.New().String(), s.now)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get looks up a session by id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// The second return value is true when a session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Attach is GetOrCreate for a live connection. The session is attached
// before the store lock is released so a concurrent Sweep cannot evict it.
// The caller must Detach it when the connection ends.
func (s *Store) Attach(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	created := false
	if id == "" || !ok {
		sess = newSession(uuid.New().String(), s.now)
		s.sessions[sess.ID] = sess
		created = true
	}
	sess.Attach()
	return sess, created
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the ttl and returns how many
// were removed. Sessions attached to a live connection are kept.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled. It
// returns immediately when expiry is disabled or interval is not positive.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		slog.InfoContext(ctx, "Session sweeper disabled", "interval", interval, "ttl", s.ttl)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Session sweeper started", "interval", interval, "ttl", s.ttl)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Session sweeper stopping")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.InfoContext(ctx, "Evicted idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
