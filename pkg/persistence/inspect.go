package persistence

import (
	"context"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

// Inspect reads and decodes a slot without purging or stamping anything.
func Inspect(ctx context.Context, store ports.SnapshotStore, key string) (domain.Snapshot, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := Decode(data)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("slot %q: %w", key, err)
	}
	return snap, nil
}
