package pathbudget

import (
	"sort"

	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// Opts are the per-request priority hints.
type Opts struct {
	Urgent    bool
	PrioBoost int
}

// Request is a single pending path computation.
type Request struct {
	Key                string
	SX, SY, TX, TY     int
	Occ                *worldmap.Occupancy
	HasPlayer          bool
	PlayerX, PlayerY   int
	Opts               Opts
	Prio               int
	seq                int // FIFO tie-break for equal priority
}

// Priority scores a path request so the queue can decide drain order:
// +100 when urgent, +40 when the source is within the viewport (2-tile
// margin), +20 within Manhattan 6 of the player or +8 within 10, plus
// opts.PrioBoost.
func Priority(sx, sy int, opts Opts, cam adapters.CameraAdapter, pixelsPerTile int, hasPlayer bool, px, py int) int {
	p := 0
	if opts.Urgent {
		p += 100
	}
	if adapters.InViewport(cam, pixelsPerTile, sx, sy, 2) {
		p += 40
	}
	if hasPlayer {
		d := absInt(sx-px) + absInt(sy-py)
		if d <= 6 {
			p += 20
		} else if d <= 10 {
			p += 8
		}
	}
	p += opts.PrioBoost
	return p
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Queue is the per-tick request queue. It is reset whenever the turn
// counter advances.
type Queue struct {
	q        []*Request
	seen     map[string]*Request
	results  map[string][]worldmap.Point
	lastTurn int
	nextSeq  int
}

func NewQueue() *Queue {
	return &Queue{
		seen:    make(map[string]*Request),
		results: make(map[string][]worldmap.Point),
	}
}

// ResetForTurn clears queue state if turn has advanced, so a request that
// didn't get served this turn doesn't linger and steal budget from next
// turn's requests.
func (q *Queue) ResetForTurn(turn int) {
	if turn == q.lastTurn && q.q != nil {
		return
	}
	q.lastTurn = turn
	q.q = nil
	q.seen = make(map[string]*Request)
	q.results = make(map[string][]worldmap.Point)
	q.nextSeq = 0
}

// Enqueue adds a request, or — if its key was already seen this turn —
// raises the existing request's priority to the max of old and new rather
// than queuing a duplicate.
func (q *Queue) Enqueue(r Request) {
	if existing, ok := q.seen[r.Key]; ok {
		if r.Prio > existing.Prio {
			existing.Prio = r.Prio
		}
		return
	}
	r.seq = q.nextSeq
	q.nextSeq++
	cp := r
	q.q = append(q.q, &cp)
	q.seen[r.Key] = &cp
}

// Result returns the solved path for key, if the queue drained it this
// turn.
func (q *Queue) Result(key string) ([]worldmap.Point, bool) {
	p, ok := q.results[key]
	return p, ok
}

// Drain processes requests sorted descending by priority (stable for equal
// priority, i.e. FIFO by enqueue order), computing a full A* for each,
// storing successes into cache and results, and decrementing budget — until
// the queue is empty or budget is exhausted.
func (q *Queue) Drain(t *worldmap.Town, cache *Cache, budget *Budget) {
	pending := make([]*Request, len(q.q))
	copy(pending, q.q)
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Prio != pending[j].Prio {
			return pending[i].Prio > pending[j].Prio
		}
		return pending[i].seq < pending[j].seq
	})

	for _, r := range pending {
		if !budget.HasBudget() {
			return
		}
		if _, cached := cache.Get(r.Key); cached {
			continue
		}
		path, ok := groundSearch(t, r)
		budget.Spend(1)
		if ok {
			cache.Put(r.Key, path)
			q.results[r.Key] = path
		}
	}
}
