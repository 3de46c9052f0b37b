package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
)

// handleBandit drives raid behavior once a bandit event is active. Outside
// the event window bandits are treated as generic roamers — there's no
// dedicated idle behavior for this role.
func handleBandit(t *Tick, a *npc.Actor) {
	if !t.BanditEventActive {
		handleRoamer(t, a)
		return
	}

	if t.HasPlayer && manhattan(a.X, a.Y, t.PlayerX, t.PlayerY) <= 1 {
		if _, ok := t.Combat.RollDamage(a.Combat.Level, 3, 7); ok {
			t.Log.Log("bandit attacks player", "combat", map[string]any{"actor": a.ID})
		}
		return
	}

	if victim, ok := nearestCivilian(t, a); ok {
		if manhattan(a.X, a.Y, victim.X, victim.Y) <= 1 {
			if roll, ok := t.Combat.RollDamage(a.Combat.Level, 3, 7); ok {
				victim.Combat.HP -= roll.Damage
				if victim.Combat.HP <= 0 {
					victim.Combat.Dead = true
				}
			}
			return
		}
		stepTowards(t, a, victim.X, victim.Y, false)
		return
	}

	if other, ok := nearestOtherBandit(t, a); ok {
		stepTowards(t, a, other.X, other.Y, false)
		return
	}

	jx := a.X + adapters.IntN(t.RNG, 3) - 1
	jy := a.Y + adapters.IntN(t.RNG, 3) - 1
	stepTowards(t, a, jx, jy, false)
}

func nearestCivilian(t *Tick, from *npc.Actor) (*npc.Actor, bool) {
	var best *npc.Actor
	bestDist := -1
	for _, o := range t.Roster.All() {
		if o == from || o.Combat.Dead {
			continue
		}
		if o.Role == npc.RoleBandit || o.Role == npc.RolePet {
			continue
		}
		d := manhattan(from.X, from.Y, o.X, o.Y)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

func nearestOtherBandit(t *Tick, from *npc.Actor) (*npc.Actor, bool) {
	var best *npc.Actor
	bestDist := -1
	for _, o := range t.Roster.All() {
		if o == from || o.Role != npc.RoleBandit || o.Combat.Dead {
			continue
		}
		d := manhattan(from.X, from.Y, o.X, o.Y)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}
