package pathfind

import "github.com/l1jgo/townsim/internal/worldmap"

// UpstairsOccupancy is a separate occupancy set scoped to the inn's overlay
// grid, rebuilt once per tick by the scheduler from upstairs props and
// actors currently on that floor.
type UpstairsOccupancy = worldmap.Occupancy

// Upstairs computes a path restricted to the inn upstairs overlay rectangle.
// Walkability uses overlay tiles (FLOOR or STAIRS); occupancy is the
// separate upstairs set. Visit cap 4000.
func Upstairs(u *worldmap.InnUpstairs, occ *UpstairsOccupancy, sx, sy, tx, ty int) ([]worldmap.Point, bool) {
	canEnter := func(x, y int, isGoal bool) bool {
		if !u.IsWalkUpstairs(x, y) {
			return false
		}
		if p, ok := u.PropAt(x, y); ok && worldmap.PropBlocks(p.Type) {
			return false
		}
		if isGoal {
			return true
		}
		if occ != nil && occ.Has(x, y) {
			return false
		}
		return true
	}
	return search(sx, sy, tx, ty, upstairsVisitCap, upstairsSortThresh, canEnter)
}
