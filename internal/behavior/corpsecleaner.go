package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
)

// handleCorpseCleaner routes a corpse cleaner to the nearest outstanding
// corpse and removes it on arrival, falling back to roaming when none
// remain.
func handleCorpseCleaner(t *Tick, a *npc.Actor) {
	if t.Corpses == nil {
		handleRoamer(t, a)
		return
	}
	idx, ok := nearestCorpse(t, a)
	if !ok {
		handleRoamer(t, a)
		return
	}
	c := (*t.Corpses)[idx]
	if manhattan(a.X, a.Y, c.X, c.Y) == 0 {
		*t.Corpses = append((*t.Corpses)[:idx], (*t.Corpses)[idx+1:]...)
		if a.Home.Building >= 0 {
			stepTowards(t, a, a.Home.Door.X, a.Home.Door.Y, false)
			return
		}
		jx := a.X + adapters.IntN(t.RNG, 3) - 1
		jy := a.Y + adapters.IntN(t.RNG, 3) - 1
		stepTowards(t, a, jx, jy, false)
		return
	}
	stepTowards(t, a, c.X, c.Y, true)
}

func nearestCorpse(t *Tick, from *npc.Actor) (int, bool) {
	if t.Corpses == nil || len(*t.Corpses) == 0 {
		return 0, false
	}
	best := -1
	bestDist := -1
	for i, c := range *t.Corpses {
		d := manhattan(from.X, from.Y, c.X, c.Y)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
