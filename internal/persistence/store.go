package persistence

import (
	"context"
	"sync"
)

// SnapshotStore is the durable side of the write-through persistence
// boundary. The in-memory stores stay authoritative: a failed save is
// surfaced to the caller but never rolls back store state.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, name string, blob []byte) error
	LoadSnapshot(ctx context.Context, name string) ([]byte, bool, error)
}

// MemoryStore keeps snapshots in process memory. Used in tests and when no
// durable backend is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory snapshot store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// SaveSnapshot stores a copy of the blob under name.
func (s *MemoryStore) SaveSnapshot(ctx context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), blob...)
	return nil
}

// LoadSnapshot returns the blob stored under name, if any.
func (s *MemoryStore) LoadSnapshot(ctx context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}
