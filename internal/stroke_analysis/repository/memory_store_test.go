package repository

import (
	"context"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestMemoryStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl, time.Minute)
	s.now = clock.now
	return s, clock
}

func sampleHandoff() *domain.Handoff {
	return &domain.Handoff{
		SessionID: "sess-1",
		Result: domain.AnalysisResult{
			Student: "Ana",
			Stroke:  "serve",
			Suggestions: domain.Suggestions{
				DoingWell: []string{"Good toss height"},
				WorkOn:    []string{"Bend knees more", "Finish across body"},
			},
		},
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(5 * time.Minute)

	h := sampleHandoff()
	require.NoError(t, s.Put(ctx, h))
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, clock.t, h.CreatedAt)

	got, err := s.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.Result, got.Result)
	assert.Equal(t, []string{"Bend knees more", "Finish across body"}, got.Result.Suggestions.WorkOn)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	s, _ := newTestMemoryStore(time.Minute)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(time.Minute)

	h := sampleHandoff()
	require.NoError(t, s.Put(ctx, h))

	clock.advance(59 * time.Second)
	_, err := s.Get(ctx, h.ID)
	require.NoError(t, err)

	clock.advance(time.Second)
	_, err = s.Get(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(time.Minute)

	h := sampleHandoff()
	require.NoError(t, s.Put(ctx, h))
	require.NoError(t, s.Delete(ctx, h.ID))

	_, err := s.Get(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestMemoryStore_SessionLock(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(time.Minute)

	token, ok, err := s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	_, ok, err = s.Acquire(ctx, "sess-2")
	require.NoError(t, err)
	assert.True(t, ok, "other sessions are independent")

	require.NoError(t, s.Release(ctx, "sess-1", "not-the-owner"))
	_, ok, err = s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok, "release with a foreign token keeps the lock")

	require.NoError(t, s.Release(ctx, "sess-1", token))
	_, ok, err = s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("stale lock is reclaimed", func(t *testing.T) {
		clock.advance(2 * time.Minute)
		_, ok, err := s.Acquire(ctx, "sess-2")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMemoryStore_ExpiredHolderCannotReleaseNewerLock(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(time.Minute)

	first, ok, err := s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)

	clock.advance(61 * time.Second)
	second, ok, err := s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok, "expired lock is taken over")
	assert.NotEqual(t, first, second)

	require.NoError(t, s.Release(ctx, "sess-1", first))
	_, ok, err = s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok, "late release from the expired holder leaves the newer lock held")

	require.NoError(t, s.Release(ctx, "sess-1", second))
	_, ok, err = s.Acquire(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(time.Minute)

	old := sampleHandoff()
	require.NoError(t, s.Put(ctx, old))
	clock.advance(30 * time.Second)
	fresh := sampleHandoff()
	require.NoError(t, s.Put(ctx, fresh))

	assert.Equal(t, 0, s.Sweep(clock.t))
	assert.Equal(t, 1, s.Sweep(clock.t.Add(45*time.Second)))
	assert.Equal(t, 1, s.Len())

	_, err := s.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestStartSweeper(t *testing.T) {
	s, _ := newTestMemoryStore(time.Minute)

	c, err := StartSweeper(s, "")
	require.NoError(t, err)
	require.NotNil(t, c)
	<-c.Stop().Done()

	_, err = StartSweeper(s, "not a schedule")
	assert.Error(t, err)
}
