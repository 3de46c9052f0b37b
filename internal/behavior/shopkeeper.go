package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// handleShopkeeper drives a shopkeeper between their shop counter, the
// door, and home, depending on the shop's open hours.
func handleShopkeeper(t *Tick, a *npc.Actor) {
	if a.ShopRef < 0 || a.ShopRef >= len(t.Town.Shops) {
		handleRoamer(t, a)
		return
	}
	shop := t.Town.Shops[a.ShopRef]

	if shop.Type == worldmap.ShopInn {
		handleInnkeeper(t, a, shop)
		return
	}

	minute := t.Clock.MinuteOfDay()
	if shop.InArriveWindow(minute) {
		b := t.Town.Buildings[shop.BuildingID]
		target := worldmap.AdjustInteriorTarget(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, b, worldmap.Point{X: shop.X, Y: shop.Y})
		stepTowards(t, a, target.X, target.Y, true)
		return
	}

	if t.InLateWindow && !atHome(a) {
		routeLateShelter(t, a)
		return
	}

	if !a.DepartAssignedForDay {
		a.HomeDepartMin = 18*60 + adapters.IntN(t.RNG, 3*60)
		a.GoInnToday = adapters.Chance(t.RNG, 0.33)
		a.DepartAssignedForDay = true
		a.InnPreHomeDone = false
	}

	if minute < a.HomeDepartMin {
		if a.GoInnToday && !a.InnPreHomeDone {
			if a.Inn.HasSeat {
				a.Inn.StayTurns++
				if a.Inn.StayTurns >= 4+adapters.IntN(t.RNG, 7) {
					a.Inn.HasSeat = false
					a.Inn.StayTurns = 0
					a.InnPreHomeDone = true
				}
				return
			}
			if innSeatAvailable(t) && routeToInnSeat(t, a, false) {
				return
			}
		}
		return
	}

	followHomePlan(t, a)
}

func followHomePlan(t *Tick, a *npc.Actor) {
	if a.Home.Building < 0 {
		return
	}
	if a.HomePlan.Cooldown > 0 {
		a.HomePlan.Cooldown--
		return
	}
	moved := stepTowards(t, a, a.Home.Door.X, a.Home.Door.Y, false)
	if !moved {
		a.HomePlan.Wait++
		if a.HomePlan.Wait >= 3 {
			a.HomePlan.Wait = 0
			a.HomePlan.Cooldown = 4 + adapters.IntN(t.RNG, 5)
			a.InvalidatePlan()
		}
		return
	}
	a.HomePlan.Wait = 0
	if a.X == a.Home.Door.X && a.Y == a.Home.Door.Y {
		a.Sleeping = true
	}
}

// handleInnkeeper implements "Inn-keepers are bound to the inn and patrol
// interior seats/free tiles, never leaving."
func handleInnkeeper(t *Tick, a *npc.Actor, shop worldmap.Shop) {
	b := t.Town.Buildings[shop.BuildingID]
	if a.Patrol.HasGoal && a.X == a.Patrol.Goal.X && a.Y == a.Patrol.Goal.Y {
		a.Patrol.StayTurns++
		if a.Patrol.StayTurns >= 6+adapters.IntN(t.RNG, 9) {
			a.Patrol.HasGoal = false
			a.Patrol.StayTurns = 0
		}
		return
	}
	if !a.Patrol.HasGoal {
		for i := 0; i < 20; i++ {
			x := b.X + 1 + adapters.IntN(t.RNG, b.W-2)
			y := b.Y + 1 + adapters.IntN(t.RNG, b.H-2)
			if worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, x, y) {
				a.Patrol.Goal = worldmap.Point{X: x, Y: y}
				a.Patrol.HasGoal = true
				break
			}
		}
		if !a.Patrol.HasGoal {
			return
		}
	}
	stepTowards(t, a, a.Patrol.Goal.X, a.Patrol.Goal.Y, false)
}
