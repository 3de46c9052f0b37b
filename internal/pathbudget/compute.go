package pathbudget

import (
	"github.com/l1jgo/townsim/internal/pathfind"
	"github.com/l1jgo/townsim/internal/worldmap"
)

func groundSearch(t *worldmap.Town, r *Request) ([]worldmap.Point, bool) {
	return pathfind.Ground(t, r.Occ, r.HasPlayer, r.PlayerX, r.PlayerY, r.SX, r.SY, r.TX, r.TY)
}

// Planner bundles the per-tick budget, queue, and the process-lived cache.
// It is owned by the scheduler and passed down by reference to every role
// handler that needs a path solved.
type Planner struct {
	Cache  *Cache
	Queue  *Queue
	Budget *Budget
}

func NewPlanner() *Planner {
	return &Planner{Cache: NewCache(), Queue: NewQueue()}
}

// BeginTick resets the per-turn queue state and installs this tick's budget.
func (p *Planner) BeginTick(turn, budget int) {
	p.Queue.ResetForTurn(turn)
	p.Budget = NewBudget(budget)
}

// ComputePathBudgeted is the entry point every role handler calls for a
// path:
//  1. Return the cached path if valid.
//  2. Otherwise enqueue the request, drain the queue subject to remaining
//     budget, and return the newly cached path if it was solved this turn,
//     or nothing.
// It never blocks and never starves low-priority requests indefinitely —
// priorities decide drain order every turn.
func (p *Planner) ComputePathBudgeted(t *worldmap.Town, req Request) ([]worldmap.Point, bool) {
	if cached, ok := p.Cache.Get(req.Key); ok {
		if ValidatePath(t, cached, req.SX, req.SY, req.TX, req.TY) {
			return cached, true
		}
		p.Cache.Invalidate(req.Key)
	}

	p.Queue.Enqueue(req)
	p.Queue.Drain(t, p.Cache, p.Budget)

	if path, ok := p.Queue.Result(req.Key); ok {
		return path, true
	}
	return nil, false
}
