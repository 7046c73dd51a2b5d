package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/adapters/sqlite"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...sqlite.Option) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "intake.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, newStore(t))
}

func TestSQLiteStore_ReopenKeepsSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "intake.db")
	ctx := context.Background()

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, domain.KindSpeak.StorageKey(), []byte("{}")))
	require.NoError(t, store.Close())

	store, err = sqlite.New(path)
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Load(ctx, domain.KindSpeak.StorageKey())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestSQLiteStore_Prune(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newStore(t, sqlite.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "old", []byte("1")))
	now = now.Add(25 * time.Hour)
	require.NoError(t, store.Save(ctx, "fresh", []byte("2")))

	n, err := store.Prune(ctx, now.Add(-domain.MaxSnapshotAge))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, keys)
}
