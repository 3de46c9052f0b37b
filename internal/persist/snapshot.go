// Package persist implements the round-trip snapshot store for townsim's
// persisted state: actors with all plan/state fields, home/work references
// by building index, and outstanding corpses. The path cache may be
// discarded on save and rebuilt from scratch on load. Grounded on the
// reference service's internal/persist pgx+goose wiring.
package persist

import (
	"context"

	"github.com/l1jgo/townsim/internal/npc"
)

// TownSnapshot is the unit of persistence: one town's full actor roster and
// outstanding corpses at a given turn. The path cache and per-tick
// occupancy/queue state are deliberately excluded — they are cheap to
// rebuild and explicitly allowed to be discarded on save.
type TownSnapshot struct {
	TownID  int
	Turn    int
	Actors  []npc.Actor
	Corpses []npc.Corpse
}

// SnapshotStore is the persistence collaborator a host may supply. A nil
// store is a legitimate configuration — townsim runs perfectly well
// memory-only; the store exists for hosts that want a town's state to
// survive a process restart.
type SnapshotStore interface {
	Save(ctx context.Context, snap TownSnapshot) error
	Load(ctx context.Context, townID int) (TownSnapshot, bool, error)
}
