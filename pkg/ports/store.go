package ports

import (
	"context"
)

// SnapshotStore keeps the serialized form of each persistence slot.
// Implementations store bytes as given; encoding and expiry belong to the caller.
type SnapshotStore interface {
	// Save writes data to key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the bytes stored under key.
	// Returns domain.ErrSnapshotNotFound if the slot does not exist.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of every stored slot.
	List(ctx context.Context) ([]string, error)
}
