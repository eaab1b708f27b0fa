package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"ctchen222/Tic-Tac-Toe-Page/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestStore_GetOrCreate(t *testing.T) {
	s := NewStore(time.Minute)

	sess, created := s.GetOrCreate("")
	require.True(t, created)
	require.NotEmpty(t, sess.ID)

	again, created := s.GetOrCreate(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)

	other, created := s.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.NotEqual(t, sess.ID, other.ID)
	assert.Equal(t, 2, s.Len())
}

func TestSession_MoveAndReset(t *testing.T) {
	ctx := context.Background()
	sess := NewStore(0).Create()

	snap, applied := sess.Move(ctx, 4)
	require.True(t, applied)
	assert.Equal(t, game.PlayerX, snap.Board[4])
	assert.Equal(t, game.PlayerO, snap.Turn)

	snap, applied = sess.Move(ctx, 4)
	assert.False(t, applied)
	assert.Equal(t, game.PlayerO, snap.Turn)

	snap = sess.Reset(ctx)
	assert.Equal(t, game.Board{}, snap.Board)
	assert.Equal(t, game.PlayerX, snap.Turn)
	assert.Equal(t, game.InProgress, snap.Result.State)
}

func TestSession_ConcurrentMovesKeepInvariant(t *testing.T) {
	ctx := context.Background()
	sess := NewStore(0).Create()

	var wg sync.WaitGroup
	for i := 0; i < game.BoardSize; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sess.Move(ctx, idx)
		}(i)
	}
	wg.Wait()

	snap := sess.Snapshot()
	diff := snap.Board.Count(game.PlayerX) - snap.Board.Count(game.PlayerO)
	assert.Contains(t, []int{0, 1}, diff)
	assert.True(t, snap.Result.Concluded())
}

func TestStore_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(10*time.Minute, WithClock(clock.Now))

	stale := s.Create()
	clock.Advance(8 * time.Minute)
	fresh := s.Create()
	clock.Advance(5 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	_, ok := s.Get(stale.ID)
	assert.False(t, ok)
	_, ok = s.Get(fresh.ID)
	assert.True(t, ok)

	// Activity refreshes the idle timer.
	clock.Advance(4 * time.Minute)
	fresh.Snapshot()
	clock.Advance(9 * time.Minute)
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestStore_SweepDisabled(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := NewStore(0, WithClock(clock.Now))
	s.Create()
	clock.Advance(24 * time.Hour)

	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	s.Create()
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStore_RunDisabled(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		interval time.Duration
	}{
		{name: "Zero interval", ttl: time.Minute, interval: 0},
		{name: "Negative interval", ttl: time.Minute, interval: -time.Second},
		{name: "Expiry disabled", ttl: 0, interval: time.Millisecond},
		{name: "Both zero", ttl: 0, interval: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.ttl)
			s.Create()

			done := make(chan struct{})
			go func() {
				s.Run(context.Background(), tt.interval)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("Run should return right away when sweeping is disabled")
			}
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestStore_SweepKeepsAttachedSessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(10*time.Minute, WithClock(clock.Now))

	sess := s.Create()
	sess.Attach()
	clock.Advance(time.Hour)

	assert.Equal(t, 0, s.Sweep())
	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	// Detaching refreshes the idle timer; eviction waits a full ttl after it.
	sess.Detach()
	clock.Advance(5 * time.Minute)
	assert.Equal(t, 0, s.Sweep())
	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	_, ok = s.Get(sess.ID)
	assert.False(t, ok)
}

func TestStore_Attach(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(time.Minute, WithClock(clock.Now))

	sess, created := s.Attach("")
	require.True(t, created)

	again, created := s.Attach(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)

	clock.Advance(time.Hour)
	assert.Equal(t, 0, s.Sweep())

	// One detach still leaves the second connection holding the session.
	sess.Detach()
	clock.Advance(time.Hour)
	assert.Equal(t, 0, s.Sweep())

	sess.Detach()
	clock.Advance(time.Hour)
	assert.Equal(t, 1, s.Sweep())
}
