package npc

import "github.com/l1jgo/townsim/internal/adapters"

// Corpse is left behind when a bandit or guard dies in town.
type Corpse struct {
	X, Y   int
	Kind   string // "bandit" or "guard"
	Loot   []adapters.Item
	Looted bool
	Meta   map[string]any
}
