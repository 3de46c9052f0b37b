package movement

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathfind"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// nearestStairs returns the ground stairs tile closest to (x,y) by
// Manhattan distance.
func nearestStairs(t *worldmap.Town, x, y int) (worldmap.Point, bool) {
	if len(t.InnStairsGround) == 0 {
		return worldmap.Point{}, false
	}
	best := t.InnStairsGround[0]
	bestDist := worldmap.Point{X: x, Y: y}.Manhattan(best)
	for _, p := range t.InnStairsGround[1:] {
		d := worldmap.Point{X: x, Y: y}.Manhattan(p)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

func withinAnyStairsMinus1(t *worldmap.Town, x, y int) bool {
	for _, p := range t.InnStairsGround {
		if worldmap.Point{X: x, Y: y}.Manhattan(p) <= 1 {
			return true
		}
	}
	return false
}

// RouteIntoInnUpstairs routes an actor from the ground floor, through the
// stairs, onto the inn's upstairs overlay. occUp is the separate upstairs
// occupancy set, rebuilt by the scheduler once per tick from upstairs props
// and every actor whose Floor is FloorUpstairs.
func RouteIntoInnUpstairs(c *Context, occUp *worldmap.Occupancy, a *npc.Actor, targetUp worldmap.Point, rng adapters.RNG) bool {
	inn := c.Town.InnBuilding()

	if a.Floor == npc.FloorGround {
		stairs, ok := nearestStairs(c.Town, a.X, a.Y)
		if !ok {
			return false
		}
		insideInn := inn.Contains(a.X, a.Y)
		if a.X == stairs.X && a.Y == stairs.Y && insideInn {
			a.Floor = npc.FloorUpstairs
			a.NearStairsCount = 0
			return true
		}
		if insideInn && withinAnyStairsMinus1(c.Town, a.X, a.Y) {
			a.NearStairsCount++
			if a.NearStairsCount >= 2 {
				a.Floor = npc.FloorUpstairs
				a.NearStairsCount = 0
				return true
			}
		} else {
			a.NearStairsCount = 0
		}
		return StepTowards(c, a, stairs.X, stairs.Y, Opts{Urgent: true})
	}

	// Upstairs.
	u := c.Town.InnUpstairs
	path, ok := pathfind.Upstairs(u, occUp, a.X, a.Y, targetUp.X, targetUp.Y)
	if ok && len(path) >= 2 {
		next := path[1]
		if u.IsWalkUpstairs(next.X, next.Y) && !occUp.Has(next.X, next.Y) {
			occUp.Move(a.X, a.Y, next.X, next.Y)
			a.LastX, a.LastY = a.X, a.Y
			a.X, a.Y = next.X, next.Y
			return true
		}
	}
	if adapters.Chance(rng, 0.15) {
		for _, d := range axial {
			nx, ny := a.X+d.X, a.Y+d.Y
			if u.IsWalkUpstairs(nx, ny) && !occUp.Has(nx, ny) {
				occUp.Move(a.X, a.Y, nx, ny)
				a.LastX, a.LastY = a.X, a.Y
				a.X, a.Y = nx, ny
				return true
			}
		}
	}
	return false
}
