package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
)

// handlePet is mostly idle, occasionally stepping to a random neighbor
// tile.
func handlePet(t *Tick, a *npc.Actor) {
	if adapters.Chance(t.RNG, 0.6) {
		return
	}
	dx := adapters.IntN(t.RNG, 3) - 1
	dy := adapters.IntN(t.RNG, 3) - 1
	if dx == 0 && dy == 0 {
		return
	}
	stepTowards(t, a, a.X+dx, a.Y+dy, false)
}
