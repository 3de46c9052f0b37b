// Package pathbudget implements the per-tick path budget, the priority
// queue of pending path requests, and the LRU path cache.
package pathbudget

import (
	"math"

	"github.com/l1jgo/townsim/internal/simtime"
	"github.com/l1jgo/townsim/internal/worldmap"
)

const (
	minBudget = 6
	maxBudget = 32
)

func clamp(v int) int {
	if v < minBudget {
		return minBudget
	}
	if v > maxBudget {
		return maxBudget
	}
	return v
}

func phaseMultiplier(p simtime.ClockPhase) float64 {
	switch p {
	case simtime.Dusk:
		return 1.1
	case simtime.Dawn:
		return 0.9
	case simtime.Night:
		return 0.8
	default:
		return 1.0
	}
}

// InitPathBudget computes the per-tick path budget. A positive override
// (Town.PathBudget) is clamped to the same [MIN,MAX] bounds instead of the
// computed formula. During the evening return window [18:00,21:00) the
// budget is lifted to at least floor(npcCount*0.35), still clamped.
func InitPathBudget(t *worldmap.Town, npcCount int, phase simtime.ClockPhase, clock simtime.Clock) int {
	var budget int
	if t.PathBudget > 0 {
		budget = clamp(t.PathBudget)
	} else {
		frac := t.BudgetFraction() * phaseMultiplier(phase)
		budget = clamp(int(math.Floor(float64(npcCount) * frac)))
	}
	if clock.InEveningReturnWindow() {
		boosted := clamp(int(math.Floor(float64(npcCount) * 0.35)))
		if boosted > budget {
			budget = boosted
		}
	}
	return budget
}

// Budget is the mutable per-tick spend counter.
type Budget struct {
	remaining int
}

func NewBudget(n int) *Budget { return &Budget{remaining: n} }

func (b *Budget) Remaining() int { return b.remaining }

func (b *Budget) HasBudget() bool { return b.remaining > 0 }

func (b *Budget) Spend(n int) { b.remaining -= n }
