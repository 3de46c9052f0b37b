package movement

import (
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/pathbudget"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// Opts carries per-request priority hints, threaded through from role
// handlers down to the pathfinder.
type Opts struct {
	Urgent    bool
	PrioBoost int
}

// Context bundles everything StepTowards needs beyond the actor itself —
// the per-tick collaborators a role handler already has in hand.
type Context struct {
	Town      *worldmap.Town
	Occ       *worldmap.Occupancy
	Planner   *pathbudget.Planner
	Reserved  *ReservedDoors
	HasPlayer bool
	PlayerX   int
	PlayerY   int
}

// blocked reports whether actor a may NOT step onto (nx,ny), applying the
// door-reservation, inn-perimeter, and bound-building rules.
func blocked(c *Context, a *npc.Actor, nx, ny int) bool {
	if c.Occ.Has(nx, ny) {
		owner := c.Reserved.Owner(nx, ny, a.IsShopkeeper, a.ShopRef, a.BoundToBuilding)
		if !owner {
			return true
		}
	}
	if a.IsShopkeeper && a.BoundToBuilding == c.Reserved.innBuilding && c.Reserved.innBuilding >= 0 {
		b := c.Town.Buildings[c.Reserved.innBuilding]
		if b.Contains(a.X, a.Y) && c.Reserved.innPerimeter[key(nx, ny)] {
			return true
		}
	}
	if a.BoundToBuilding >= 0 {
		b := c.Town.Buildings[a.BoundToBuilding]
		if b.Contains(a.X, a.Y) && !b.Contains(nx, ny) {
			return true
		}
	}
	return false
}

// StepTowards advances actor a by at most one tile toward (tx,ty). Returns
// true if a step was taken (or the actor is already at the goal and does
// nothing).
func StepTowards(c *Context, a *npc.Actor, tx, ty int, opts Opts) bool {
	if a.X == tx && a.Y == ty {
		return true
	}

	if resumePlan(c, a, tx, ty) {
		return true
	}

	if budgetedSolve(c, a, tx, ty, opts) {
		return true
	}

	return greedyFallback(c, a, tx, ty)
}

// resumePlan re-syncs the actor into its existing plan (searching for its
// current position in case of drift) and attempts the next step.
func resumePlan(c *Context, a *npc.Actor, tx, ty int) bool {
	if !a.HasPlan || a.PlanGoal.X != tx || a.PlanGoal.Y != ty {
		return false
	}
	idx := -1
	for i, p := range a.Plan {
		if p.X == a.X && p.Y == a.Y {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(a.Plan) {
		a.InvalidatePlan()
		return false
	}
	next := a.Plan[idx+1]
	if blocked(c, a, next.X, next.Y) {
		a.InvalidatePlan()
		return false
	}
	a.Plan = a.Plan[idx+1:]
	commitStep(c, a, next.X, next.Y)
	return true
}

// budgetedSolve requests a full path via the budgeted cache/queue and, if
// received, installs it as the new plan and attempts the first step.
func budgetedSolve(c *Context, a *npc.Actor, tx, ty int, opts Opts) bool {
	req := pathbudget.Request{
		Key:       pathbudget.EndpointKey(a.X, a.Y, tx, ty),
		SX:        a.X, SY: a.Y, TX: tx, TY: ty,
		Occ:       c.Occ,
		HasPlayer: c.HasPlayer, PlayerX: c.PlayerX, PlayerY: c.PlayerY,
		Opts: pathbudget.Opts{Urgent: opts.Urgent, PrioBoost: opts.PrioBoost},
	}
	req.Prio = pathbudget.Priority(a.X, a.Y, req.Opts, nil, 0, c.HasPlayer, c.PlayerX, c.PlayerY)

	path, ok := c.Planner.ComputePathBudgeted(c.Town, req)
	if !ok || len(path) < 2 {
		return false
	}
	a.SetPlan(path, worldmap.Point{X: tx, Y: ty})
	next := path[1]
	if blocked(c, a, next.X, next.Y) {
		a.InvalidatePlan()
		return false
	}
	a.Plan = a.Plan[1:]
	commitStep(c, a, next.X, next.Y)
	return true
}

var axial = [4]worldmap.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// greedyFallback picks the nearest-by-Manhattan free axial neighbour,
// avoiding an immediate back-and-forth onto the previous tile unless no
// other option exists.
func greedyFallback(c *Context, a *npc.Actor, tx, ty int) bool {
	type cand struct {
		p    worldmap.Point
		dist int
	}
	cands := make([]cand, 0, 4)
	for _, d := range axial {
		nx, ny := a.X+d.X, a.Y+d.Y
		if !c.Town.Map.IsWalkTown(nx, ny) {
			continue
		}
		if c.HasPlayer && c.PlayerX == nx && c.PlayerY == ny {
			continue
		}
		if blocked(c, a, nx, ny) {
			continue
		}
		cands = append(cands, cand{worldmap.Point{X: nx, Y: ny}, absInt(nx-tx) + absInt(ny-ty)})
	}
	if len(cands) == 0 {
		return false
	}
	// stable sort by distance, preserving axial scan order for ties
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && cands[j].dist < cands[j-1].dist; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
	for _, cd := range cands {
		if cd.p.X == a.LastX && cd.p.Y == a.LastY {
			continue
		}
		a.InvalidatePlan()
		commitStep(c, a, cd.p.X, cd.p.Y)
		return true
	}
	// last resort: permit stepping onto the previous tile
	a.InvalidatePlan()
	commitStep(c, a, cands[0].p.X, cands[0].p.Y)
	return true
}

func commitStep(c *Context, a *npc.Actor, nx, ny int) {
	c.Occ.Move(a.X, a.Y, nx, ny)
	a.LastX, a.LastY = a.X, a.Y
	a.X, a.Y = nx, ny
	a.Floor = npc.FloorGround
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
