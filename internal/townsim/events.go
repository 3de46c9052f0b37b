package townsim

import "github.com/l1jgo/townsim/internal/npc"

// Domain events emitted onto the Scheduler's event.Bus. They are readable
// the tick after they're emitted (the bus's double-buffered semantics),
// which suits narration/telemetry consumers — nothing in the scheduler
// itself depends on same-tick delivery.

// ActorDied is emitted once per actor removed by cleanupSystem.
type ActorDied struct {
	ActorID int
	Role    npc.Role
	X, Y    int
}

// CorpseSpawned is emitted when a bandit or guard death leaves a corpse.
type CorpseSpawned struct {
	X, Y int
	Kind string
}

// BanditEventStarted/Ended mark the rising and falling edge of the
// town-wide bandit event flag.
type BanditEventStarted struct{}
type BanditEventEnded struct{}
