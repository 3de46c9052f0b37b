// Package behavior implements the per-role state machines for residents,
// shopkeepers, guards, bandits, pets, corpse cleaners, and generic
// roamers.
package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/movement"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathbudget"
	"github.com/l1jgo/townsim/internal/simtime"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// Tick bundles the shared per-tick collaborators every role handler needs —
// the scheduler builds one of these once per town tick.
type Tick struct {
	Town     *worldmap.Town
	Occ      *worldmap.Occupancy
	OccUp    *worldmap.Occupancy
	Planner  *pathbudget.Planner
	Reserved *movement.ReservedDoors

	Clock   simtime.Clock
	Weather simtime.Weather
	Phase   simtime.Behavior

	InLateWindow bool

	RNG     adapters.RNG
	Combat  adapters.CombatAdapter
	Loot    adapters.LootAdapter
	Camera  adapters.CameraAdapter
	Log     adapters.Logger

	HasPlayer bool
	PlayerX   int
	PlayerY   int

	Roster *npc.Roster

	SeatCap      int
	InnSeatCount int

	BanditEventActive bool

	Corpses *[]npc.Corpse
}

// MoveCtx adapts a Tick into the movement.Context the executor needs.
func (t *Tick) MoveCtx() *movement.Context {
	return &movement.Context{
		Town:      t.Town,
		Occ:       t.Occ,
		Planner:   t.Planner,
		Reserved:  t.Reserved,
		HasPlayer: t.HasPlayer,
		PlayerX:   t.PlayerX,
		PlayerY:   t.PlayerY,
	}
}

// Handle dispatches to the role-specific handler.
func Handle(t *Tick, a *npc.Actor) {
	if a.Combat.Dead {
		return
	}
	switch a.Role {
	case npc.RolePet:
		handlePet(t, a)
	case npc.RoleGuard:
		handleGuard(t, a)
	case npc.RoleBandit:
		handleBandit(t, a)
	case npc.RoleShopkeeper:
		handleShopkeeper(t, a)
	case npc.RoleCorpseCleaner:
		handleCorpseCleaner(t, a)
	case npc.RoleResident:
		handleResident(t, a)
	default:
		handleRoamer(t, a)
	}
}

func stepTowards(t *Tick, a *npc.Actor, tx, ty int, urgent bool) bool {
	return movement.StepTowards(t.MoveCtx(), a, tx, ty, movement.Opts{Urgent: urgent})
}

func manhattan(ax, ay, bx, by int) int {
	return worldmap.Point{X: ax, Y: ay}.Manhattan(worldmap.Point{X: bx, Y: by})
}
