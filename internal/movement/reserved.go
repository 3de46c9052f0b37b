// Package movement implements the movement executor: plan storage,
// one-step advance with occupancy update, greedy fallback,
// door/reservation/bound-building rules, and the inn upstairs transition.
package movement

import (
	"fmt"

	"github.com/l1jgo/townsim/internal/worldmap"
)

func key(x, y int) string {
	return worldmap.Point{X: x, Y: y}.String()
}

// ReservedDoors is built once per tick: every shop door coordinate is
// reserved for its shopkeeper, and inn shops additionally reserve one
// adjacent perimeter DOOR tile to model a double door.
type ReservedDoors struct {
	shopDoor     map[string]int // door key -> shop index
	innPerimeter map[string]bool
	innBuilding  int
}

// BuildReservedDoors scans t.Shops and, for the inn, t.Buildings[InnBuildingID]'s
// perimeter for an adjacent DOOR tile.
func BuildReservedDoors(t *worldmap.Town) *ReservedDoors {
	rd := &ReservedDoors{
		shopDoor:     make(map[string]int, len(t.Shops)),
		innPerimeter: make(map[string]bool),
		innBuilding:  t.InnBuildingID,
	}
	for i, s := range t.Shops {
		b := t.Buildings[s.BuildingID]
		rd.shopDoor[key(b.Door.X, b.Door.Y)] = i
		if s.Type == worldmap.ShopInn {
			rd.reserveInnDouble(t, b)
		}
	}
	return rd
}

// reserveInnDouble finds a second DOOR tile on the inn's perimeter adjacent
// to the main door and reserves it too.
func (rd *ReservedDoors) reserveInnDouble(t *worldmap.Town, b worldmap.Building) {
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		x, y := b.Door.X+d[0], b.Door.Y+d[1]
		if x == b.Door.X && y == b.Door.Y {
			continue
		}
		if !b.OnPerimeter(x, y) {
			continue
		}
		if !t.Map.InBounds(x, y) || t.Map.At(x, y) != worldmap.TileDoor {
			continue
		}
		rd.innPerimeter[key(x, y)] = true
		return
	}
}

// AllDoorKeys returns every reserved coordinate, used by the scheduler to
// add them to the shared Occupancy so other actors cannot walk through a
// door that isn't theirs.
func (rd *ReservedDoors) AllDoorKeys() []worldmap.Point {
	out := make([]worldmap.Point, 0, len(rd.shopDoor)+len(rd.innPerimeter))
	for k := range rd.shopDoor {
		out = append(out, parseKey(k))
	}
	for k := range rd.innPerimeter {
		out = append(out, parseKey(k))
	}
	return out
}

func parseKey(k string) worldmap.Point {
	var x, y int
	fmt.Sscanf(k, "%d,%d", &x, &y)
	return worldmap.Point{X: x, Y: y}
}

// IsReserved reports whether (x,y) is a reserved door tile.
func (rd *ReservedDoors) IsReserved(x, y int) bool {
	k := key(x, y)
	if _, ok := rd.shopDoor[k]; ok {
		return true
	}
	return rd.innPerimeter[k]
}

// Owner reports whether actor (described by the three predicates below) may
// step through the reserved door at (x,y).
func (rd *ReservedDoors) Owner(x, y int, isShopkeeper bool, shopRef int, boundToBuilding int) bool {
	k := key(x, y)
	if shopIdx, ok := rd.shopDoor[k]; ok {
		return isShopkeeper && shopRef == shopIdx
	}
	if rd.innPerimeter[k] {
		return isShopkeeper && boundToBuilding == rd.innBuilding
	}
	return false
}
