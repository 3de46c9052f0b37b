package persist

import (
	"context"
	"sync"
)

// MemoryStore is an in-process SnapshotStore used by tests and the CLI
// demo, mirroring the reference service's pattern of keeping a trivial non-durable
// implementation alongside the Postgres-backed one.
type MemoryStore struct {
	mu    sync.Mutex
	byTwn map[int]TownSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byTwn: make(map[int]TownSnapshot)}
}

func (m *MemoryStore) Save(_ context.Context, snap TownSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byTwn[snap.TownID] = snap
	return nil
}

func (m *MemoryStore) Load(_ context.Context, townID int) (TownSnapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.byTwn[townID]
	return snap, ok, nil
}
