package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/ports"
)

// ListSnapshots prints every slot of store with its age and freshness.
func ListSnapshots(ctx context.Context, w io.Writer, store ports.SnapshotStore, maxAge time.Duration, now time.Time) error {
	keys, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "No snapshots found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSAVED\tSTATUS")
	for _, key := range keys {
		snap, err := persistence.Inspect(ctx, store, key)
		switch {
		case err != nil:
			fmt.Fprintf(tw, "%s\t-\tunreadable\n", key)
		case snap.Expired(now, maxAge):
			fmt.Fprintf(tw, "%s\t%s\texpired\n", key, snap.SavedAt().UTC().Format(time.RFC3339))
		default:
			fmt.Fprintf(tw, "%s\t%s\tfresh\n", key, snap.SavedAt().UTC().Format(time.RFC3339))
		}
	}
	return tw.Flush()
}

// InspectSnapshot prints the decoded slot of kind as indented JSON.
func InspectSnapshot(ctx context.Context, w io.Writer, store ports.SnapshotStore, kind domain.Kind) error {
	snap, err := persistence.Inspect(ctx, store, kind.StorageKey())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// RemoveSnapshot deletes the slot of kind.
func RemoveSnapshot(ctx context.Context, store ports.SnapshotStore, kind domain.Kind) error {
	if err := store.Delete(ctx, kind.StorageKey()); err != nil {
		return fmt.Errorf("removing %s snapshot: %w", kind, err)
	}
	return nil
}
