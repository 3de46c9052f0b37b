package worldmap

import "fmt"

// Occupancy is the per-tick mutable occupancy handle: a string-keyed set of
// "x,y" ground positions. It is rebuilt fresh each tick by the scheduler
// and discarded once the tick finishes — nothing holds a reference to it
// across ticks.
type Occupancy struct {
	set map[string]struct{}
}

func NewOccupancy() *Occupancy {
	return &Occupancy{set: make(map[string]struct{}, 256)}
}

func key(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

func (o *Occupancy) Add(x, y int) {
	o.set[key(x, y)] = struct{}{}
}

func (o *Occupancy) Remove(x, y int) {
	delete(o.set, key(x, y))
}

func (o *Occupancy) Has(x, y int) bool {
	_, ok := o.set[key(x, y)]
	return ok
}

// Move atomically removes the old key and inserts the new one, so the next
// actor processed this tick sees the vacated tile as free.
func (o *Occupancy) Move(oldX, oldY, newX, newY int) {
	o.Remove(oldX, oldY)
	o.Add(newX, newY)
}

// InsideBuilding tests strict interior containment.
func InsideBuilding(b Building, x, y int) bool {
	return b.Interior(x, y)
}

// IsFreeTile combines walkability, player exclusion, occupancy-set
// membership, and blocking-prop absence.
func IsFreeTile(t *Town, occ *Occupancy, playerX, playerY int, hasPlayer bool, x, y int) bool {
	if !t.Map.IsWalkTown(x, y) {
		return false
	}
	if hasPlayer && playerX == x && playerY == y {
		return false
	}
	if occ != nil && occ.Has(x, y) {
		return false
	}
	for _, p := range t.Props {
		if p.X == x && p.Y == y && PropBlocks(p.Type) {
			return false
		}
	}
	return true
}

// neighborOrder is the fixed scan order for NearestFreeAdjacent: center,
// 4-axial, 4-diagonal.
var neighborOrder = []Point{
	{0, 0},
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// NearestFreeAdjacent scans the 3x3 neighbourhood around (x,y) in the fixed
// order above and returns the first free cell. If buildingConstraint is
// non-nil, candidates must also satisfy InsideBuilding.
func NearestFreeAdjacent(t *Town, occ *Occupancy, playerX, playerY int, hasPlayer bool, x, y int, buildingConstraint *Building) (Point, bool) {
	for _, d := range neighborOrder {
		cx, cy := x+d.X, y+d.Y
		if buildingConstraint != nil && !InsideBuilding(*buildingConstraint, cx, cy) {
			continue
		}
		if IsFreeTile(t, occ, playerX, playerY, hasPlayer, cx, cy) {
			return Point{cx, cy}, true
		}
	}
	return Point{}, false
}

// AdjustInteriorTarget replaces an unreachable interior target (e.g. a bed
// blocked by a prop) with the nearest free interior neighbour, falling back
// to the original target when nothing nearby is free.
func AdjustInteriorTarget(t *Town, occ *Occupancy, playerX, playerY int, hasPlayer bool, b Building, target Point) Point {
	if IsFreeTile(t, occ, playerX, playerY, hasPlayer, target.X, target.Y) {
		return target
	}
	if p, ok := NearestFreeAdjacent(t, occ, playerX, playerY, hasPlayer, target.X, target.Y, &b); ok {
		return p
	}
	return target
}
