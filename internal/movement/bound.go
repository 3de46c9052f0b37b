package movement

import (
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// SnapBoundActor handles an actor that is somehow stranded outside the
// building it's bound to: it snaps them to a free interior tile —
// preferring WorkInside, else adjacent to the door, else the first free
// interior tile found by a row-major scan. Returns true if a snap occurred.
func SnapBoundActor(t *worldmap.Town, occ *worldmap.Occupancy, a *npc.Actor, hasPlayer bool, px, py int) bool {
	if a.BoundToBuilding < 0 {
		return false
	}
	b := t.Buildings[a.BoundToBuilding]
	if b.Contains(a.X, a.Y) {
		return false
	}

	if a.HasWork && a.WorkInside && b.Interior(a.Work.X, a.Work.Y) &&
		worldmap.IsFreeTile(t, occ, px, py, hasPlayer, a.Work.X, a.Work.Y) {
		teleport(occ, a, a.Work.X, a.Work.Y)
		return true
	}

	if p, ok := worldmap.NearestFreeAdjacent(t, occ, px, py, hasPlayer, b.Door.X, b.Door.Y, &b); ok {
		teleport(occ, a, p.X, p.Y)
		return true
	}

	for y := b.Y + 1; y < b.Y+b.H-1; y++ {
		for x := b.X + 1; x < b.X+b.W-1; x++ {
			if worldmap.IsFreeTile(t, occ, px, py, hasPlayer, x, y) {
				teleport(occ, a, x, y)
				return true
			}
		}
	}
	return false
}

func teleport(occ *worldmap.Occupancy, a *npc.Actor, x, y int) {
	occ.Remove(a.X, a.Y)
	a.LastX, a.LastY = a.X, a.Y
	a.X, a.Y = x, y
	occ.Add(x, y)
	a.InvalidatePlan()
}
