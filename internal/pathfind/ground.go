package pathfind

import "github.com/l1jgo/townsim/internal/worldmap"

// Ground computes a ground-level path from (sx,sy) to (tx,ty). A neighbour
// is rejected if out of bounds, not walkable in town, or occupied — unless
// it is the goal tile, which may be entered even while currently occupied.
// Visit cap 3500.
func Ground(t *worldmap.Town, occ *worldmap.Occupancy, hasPlayer bool, playerX, playerY, sx, sy, tx, ty int) ([]worldmap.Point, bool) {
	canEnter := func(x, y int, isGoal bool) bool {
		if !t.Map.IsWalkTown(x, y) {
			return false
		}
		if isGoal {
			return true
		}
		if hasPlayer && playerX == x && playerY == y {
			return false
		}
		if occ != nil && occ.Has(x, y) {
			return false
		}
		return true
	}
	return search(sx, sy, tx, ty, groundVisitCap, groundSortThresh, canEnter)
}
