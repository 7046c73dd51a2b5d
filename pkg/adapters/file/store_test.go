package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/intake/pkg/adapters/file"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSnapshotStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "modal-form-mandate", []byte(`{"fields":{}}`)))

	data, err := os.ReadFile(filepath.Join(dir, "modal-form-mandate.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{}}`, string(data))

	// Leftover temp files from an interrupted write are not slots.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-modal-form-speak-123.json"), []byte("x"), 0644))
	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"modal-form-mandate"}, keys)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "../escape", []byte("x")))
	assert.Error(t, store.Save(ctx, "", []byte("x")))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
