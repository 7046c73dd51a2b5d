package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "modal-form-mandate"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func filled() domain.FormState {
	f := domain.DefaultForm()
	f.FullName = "Ada Obi"
	f.Products = []string{"Jet Fuel A-1"}
	return f
}

func TestAdapter_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store)
	defer a.Close()

	a.SaveNow(ctx, key, filled())

	b := persistence.NewAdapter(store)
	form, ok := b.Load(ctx, key)
	require.True(t, ok)
	assert.Equal(t, filled(), form)
	assert.True(t, b.Loaded(key))
}

func TestAdapter_LoadMissing(t *testing.T) {
	a := persistence.NewAdapter(memory.NewStore())
	form, ok := a.Load(context.Background(), key)
	assert.False(t, ok)
	assert.Equal(t, domain.DefaultForm(), form)
	assert.True(t, a.Loaded(key))
}

func TestAdapter_ExpiredSnapshotIsPurged(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	clk := newClock()
	a := persistence.NewAdapter(store, persistence.WithClock(clk.Now))

	a.SaveNow(ctx, key, filled())
	clk.Advance(24*time.Hour + time.Millisecond)

	_, ok := a.Load(ctx, key)
	assert.False(t, ok)

	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestAdapter_FreshSnapshotJustUnderMaxAge(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	clk := newClock()
	a := persistence.NewAdapter(store, persistence.WithClock(clk.Now))

	a.SaveNow(ctx, key, filled())
	clk.Advance(23 * time.Hour)

	_, ok := a.Load(ctx, key)
	assert.True(t, ok)
}

func TestAdapter_CorruptSnapshotIsPurgedAndReported(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, key, []byte("{broken")))

	var ops []string
	a := persistence.NewAdapter(store, persistence.WithErrorHook(func(op, k string, err error) {
		ops = append(ops, op)
		assert.ErrorIs(t, err, persistence.ErrCorrupt)
	}))

	_, ok := a.Load(ctx, key)
	assert.False(t, ok)
	assert.Equal(t, []string{persistence.OpLoad}, ops)

	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestAdapter_DebouncedWriteRequiresLoad(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(5*time.Millisecond))
	defer a.Close()

	a.SaveDebounced(key, filled())
	time.Sleep(30 * time.Millisecond)
	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "no write before the initial load")

	a.Load(ctx, key)
	a.SaveDebounced(key, filled())
	assert.Eventually(t, func() bool {
		_, err := store.Load(ctx, key)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestAdapter_DebounceKeepsLastValue(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(20*time.Millisecond))
	defer a.Close()
	a.Load(ctx, key)

	for _, name := range []string{"A", "Ad", "Ada"} {
		f := domain.DefaultForm()
		f.FullName = name
		a.SaveDebounced(key, f)
	}

	assert.Eventually(t, func() bool {
		snap, err := persistence.Inspect(ctx, store, key)
		return err == nil && snap.Fields.FullName == "Ada"
	}, time.Second, 5*time.Millisecond)
}

func TestAdapter_SaveNowCancelsPendingWrite(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(20*time.Millisecond))
	defer a.Close()
	a.Load(ctx, key)

	stale := domain.DefaultForm()
	stale.FullName = "stale"
	a.SaveDebounced(key, stale)
	a.SaveNow(ctx, key, filled())

	time.Sleep(60 * time.Millisecond)
	snap, err := persistence.Inspect(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", snap.Fields.FullName)
}

func TestAdapter_ClearCancelsAndResetsLoaded(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(20*time.Millisecond))
	defer a.Close()
	a.Load(ctx, key)

	a.SaveNow(ctx, key, filled())
	a.SaveDebounced(key, filled())
	a.Clear(ctx, key)

	assert.False(t, a.Loaded(key))
	time.Sleep(60 * time.Millisecond)
	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestAdapter_CloseStopsTimers(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(20*time.Millisecond))
	a.Load(ctx, key)

	a.SaveDebounced(key, filled())
	a.Close()

	time.Sleep(60 * time.Millisecond)
	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

type failingStore struct {
	*memory.Store
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestAdapter_SaveFailureIsSwallowed(t *testing.T) {
	var reported error
	a := persistence.NewAdapter(failingStore{memory.NewStore()},
		persistence.WithErrorHook(func(op, _ string, err error) {
			assert.Equal(t, persistence.OpSave, op)
			reported = err
		}))

	assert.NotPanics(t, func() { a.SaveNow(context.Background(), key, filled()) })
	assert.EqualError(t, reported, "quota exceeded")
}

func TestInspect(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := persistence.Inspect(ctx, store, key)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, key, []byte("nope")))
	_, err = persistence.Inspect(ctx, store, key)
	assert.ErrorIs(t, err, persistence.ErrCorrupt)
}

func TestAdapter_CancelKeepsSlot(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	a := persistence.NewAdapter(store, persistence.WithDebounce(20*time.Millisecond))
	defer a.Close()
	a.Load(ctx, key)

	a.SaveNow(ctx, key, filled())
	changed := filled()
	changed.FullName = "pending"
	a.SaveDebounced(key, changed)
	a.Cancel(key)

	time.Sleep(60 * time.Millisecond)
	snap, err := persistence.Inspect(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", snap.Fields.FullName)
	assert.False(t, a.Loaded(key))

	form, ok := a.Load(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "Ada Obi", form.FullName)
}
