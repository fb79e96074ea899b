package services

import (
	"context"

	apperrors "github.com/acework2u/ai-smart-plants/internal/errors"
	"github.com/acework2u/ai-smart-plants/internal/logger"
	"github.com/acework2u/ai-smart-plants/internal/persistence"
)

// SnapshotSource is the store-side half of the persistence boundary.
type SnapshotSource interface {
	Serialize() ([]byte, error)
	Hydrate(blob []byte) error
}

// Persister writes store snapshots through to the durable backend after
// every mutation. Write-through with respect to correctness: the in-memory
// store has already committed by the time a snapshot is attempted, so a
// failed save never rolls anything back. Callers retry persistence, not
// the mutation.
type Persister struct {
	snapshots persistence.SnapshotStore
}

// NewPersister creates a persister over the given backend
func NewPersister(snapshots persistence.SnapshotStore) *Persister {
	return &Persister{snapshots: snapshots}
}

// Persist serializes the source and saves it under name.
func (p *Persister) Persist(ctx context.Context, name string, source SnapshotSource) error {
	blob, err := source.Serialize()
	if err != nil {
		return err
	}
	if err := p.snapshots.SaveSnapshot(ctx, name, blob); err != nil {
		logger.Error("Snapshot save failed", "snapshot", name, "error", err.Error())
		return apperrors.NewSnapshotError(err, name)
	}
	return nil
}

// Restore hydrates the source from its saved snapshot. A missing snapshot
// is not an error; the store simply starts empty.
func (p *Persister) Restore(ctx context.Context, name string, source SnapshotSource) error {
	blob, found, err := p.snapshots.LoadSnapshot(ctx, name)
	if err != nil {
		return apperrors.NewSnapshotError(err, name)
	}
	if !found {
		logger.Debug("No snapshot to restore", "snapshot", name)
		return nil
	}
	return source.Hydrate(blob)
}
