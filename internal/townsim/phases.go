// Package townsim wires the tile/occupancy, pathfinding, path-budget, and
// movement packages into the per-tick actor scheduler, built as an
// internal/core/system.Runner the way the reference service's network loop
// wires its own ECS systems.
package townsim

import "github.com/l1jgo/townsim/internal/core/system"

// PhaseT is system.Phase's type, aliased locally so this package's System
// implementations don't need to spell out the import everywhere.
type PhaseT = system.Phase

// Phases for one town tick. These reuse system.Phase's ordering mechanism
// with a scheduler-specific sequence instead of the reference service's network
// phases (input/update/output/persist).
const (
	PhaseOccupancy PhaseT = iota
	PhaseThrottle
	PhaseBehavior
	PhaseCleanup
)
