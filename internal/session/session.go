package session

import (
	"context"
	"sync"
	"time"

	"ctchen222/Tic-Tac-Toe-Page/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("session")

var (
	movesCounter, _ = meter.Int64Counter("ttt.moves",
		metric.WithDescription("Moves applied to a board"))
	gamesCounter, _ = meter.Int64Counter("ttt.games.completed",
		metric.WithDescription("Games that reached a win or a draw"))
)

// Snapshot is an immutable copy of a session's game.
type Snapshot struct {
	Board  game.Board
	Turn   game.PlayerMark
	Result game.Result
}

// Session owns one game. All access goes through its lock so that the game
// only ever has a single writer.
type Session struct {
	ID string

	mu       sync.Mutex
	game     *game.Game
	lastSeen time.Time
	conns    int
	now      func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	return &Session{
		ID:       id,
		game:     game.NewGame(),
		lastSeen: now(),
		now:      now,
	}
}

// Move applies a move for the player whose turn it is. The second return
// value reports whether the move was applied.
func (s *Session) Move(ctx context.Context, index int) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.now()
	mark := s.game.CurrentTurn()
	applied := s.game.Move(index)
	snap := s.snapshotLocked()

	if applied {
		movesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", string(mark))))
		if snap.Result.Concluded() {
			gamesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", string(snap.Result.State))))
		}
	}
	return snap, applied
}

// Reset starts a new game.
func (s *Session) Reset(_ context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.now()
	s.game.Reset()
	return s.snapshotLocked()
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = s.now()
	return s.snapshotLocked()
}

// Attach marks the session as held by a live connection. A held session is
// never evicted. Every Attach must be paired with a Detach.
func (s *Session) Attach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns++
	s.lastSeen = s.now()
}

// Detach releases a connection taken with Attach.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conns > 0 {
		s.conns--
	}
	s.lastSeen = s.now()
}

// expired reports whether the session is unheld and idle since before cutoff.
func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns == 0 && s.lastSeen.Before(cutoff)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Board:  s.game.Board(),
		Turn:   s.game.CurrentTurn(),
		Result: s.game.Result(),
	}
}
