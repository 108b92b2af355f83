package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Name  string
	Seats []int
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[page](time.Minute)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.Save(ctx, "a", page{Name: "checkout", Seats: []int{1, 2}}))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, page{Name: "checkout", Seats: []int{1, 2}}, got)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_ExpiryAndSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore[page](time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "old", page{}))
	now = now.Add(30 * time.Second)
	require.NoError(t, s.Save(ctx, "new", page{}))

	now = now.Add(45 * time.Second)
	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(ctx, "new")
	assert.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_SaveRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore[page](time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "a", page{}))
	now = now.Add(50 * time.Second)
	require.NoError(t, s.Save(ctx, "a", page{Name: "again"}))
	now = now.Add(50 * time.Second)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "again", got.Name)
}

func TestIDs(t *testing.T) {
	id := NewID()
	assert.True(t, ValidID(id))
	assert.NotEqual(t, id, NewID())
	assert.False(t, ValidID("../../etc"))
}

type countingSweeper struct{ calls chan struct{} }

func (c countingSweeper) Sweep() int {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 0
}

func TestScheduleSweep(t *testing.T) {
	s, err := gocron.NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	sw := countingSweeper{calls: make(chan struct{}, 1)}
	require.NoError(t, ScheduleSweep(s, 10*time.Millisecond, sw))
	assert.Len(t, s.Jobs(), 1)
	s.Start()

	select {
	case <-sw.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep job did not run")
	}

	empty, err := gocron.NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = empty.Shutdown() })
	require.NoError(t, ScheduleSweep(empty, time.Second))
	assert.Empty(t, empty.Jobs())
}
