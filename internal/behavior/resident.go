package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/simtime"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// defaultRoleWeights are the built-in defaults for daily role selection.
var defaultRoleWeights = []struct {
	role   npc.DailyRole
	weight float64
}{
	{npc.RoleHomebody, 0.30},
	{npc.RolePlazaShop, 0.30},
	{npc.RoleInnGoer, 0.20},
	{npc.RoleWanderer, 0.20},
}

// DrawDailyRole picks a resident's role for the day with the default
// normalized weights. The scheduler does not call it, so Actor.DailyRole is
// only set by whoever constructs or restores the actor.
func DrawDailyRole(r adapters.RNG) npc.DailyRole {
	roll := r.Float64()
	var acc float64
	for _, w := range defaultRoleWeights {
		acc += w.weight
		if roll < acc {
			return w.role
		}
	}
	return defaultRoleWeights[len(defaultRoleWeights)-1].role
}

// handleResident drives a resident through their daily cycle: home at
// dawn, errands and seating through the day, and home again by evening.
func handleResident(t *Tick, a *npc.Actor) {
	minute := t.Clock.MinuteOfDay()

	if t.Phase == simtime.Evening || minute >= 17*60+30 {
		handleResidentEvening(t, a)
		return
	}
	if t.Phase == simtime.Morning {
		routeHome(t, a)
		return
	}
	handleResidentDay(t, a)
}

func handleResidentEvening(t *Tick, a *npc.Actor) {
	if t.InLateWindow && !atHome(a) {
		routeLateShelter(t, a)
		return
	}

	if !a.DepartAssignedForDay {
		a.HomeDepartMin = 18*60 + adapters.IntN(t.RNG, 3*60)
		a.DepartAssignedForDay = true
	}
	if t.Clock.MinuteOfDay() < a.HomeDepartMin {
		if adapters.Chance(t.RNG, 0.95) {
			return
		}
	}

	target := homeSleepTarget(t, a)
	if a.X == target.X && a.Y == target.Y {
		a.Sleeping = true
		return
	}
	moved := stepTowards(t, a, target.X, target.Y, false)
	if !moved {
		routeLateShelter(t, a)
	}
}

func homeSleepTarget(t *Tick, a *npc.Actor) worldmap.Point {
	if a.Home.Bed != nil && worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, a.Home.Bed.X, a.Home.Bed.Y) {
		return *a.Home.Bed
	}
	if a.Home.Building >= 0 {
		b := t.Town.Buildings[a.Home.Building]
		for _, prop := range t.Town.Props {
			if (prop.Type == worldmap.PropChair || prop.Type == worldmap.PropBench) && b.Interior(prop.X, prop.Y) &&
				worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, prop.X, prop.Y) {
				return worldmap.Point{X: prop.X, Y: prop.Y}
			}
		}
	}
	return worldmap.Point{X: a.Home.X, Y: a.Home.Y}
}

func handleResidentDay(t *Tick, a *npc.Actor) {
	if a.Inn.HasSeat {
		a.Inn.StayTurns++
		if a.Inn.StayTurns >= 10+adapters.IntN(t.RNG, 11) {
			a.Inn.HasSeat = false
			a.Inn.StayTurns = 0
		}
		return
	}

	innChance := 0.06
	if a.LikesInn {
		innChance = 0.20
	}
	if t.Weather.IsRainy() {
		innChance *= 1.5
	}
	if t.Weather.IsHeavyRain() {
		innChance *= 1.4
	}
	if innChance > 0.60 {
		innChance = 0.60
	}
	if innSeatAvailable(t) && adapters.Chance(t.RNG, innChance) {
		routeToInnSeat(t, a, adapters.Chance(t.RNG, 0.5))
		return
	}

	if a.Home_.HasSeat {
		if manhattan(a.X, a.Y, a.Home_.Seat.X, a.Home_.Seat.Y) == 0 {
			a.Home_.StayTurns++
			if a.Home_.StayTurns >= 16+adapters.IntN(t.RNG, 17) {
				a.Home_.HasSeat = false
				a.Home_.StayTurns = 0
			}
			return
		}
		stepTowards(t, a, a.Home_.Seat.X, a.Home_.Seat.Y, false)
		return
	}

	if a.Bench.HasSeat {
		if manhattan(a.X, a.Y, a.Bench.Seat.X, a.Bench.Seat.Y) == 0 {
			a.Bench.StayTurns++
			if a.Bench.StayTurns >= 12+adapters.IntN(t.RNG, 13) {
				a.Bench.HasSeat = false
				a.Bench.StayTurns = 0
			}
			return
		}
		stepTowards(t, a, a.Bench.Seat.X, a.Bench.Seat.Y, false)
		return
	}
	if adapters.Chance(t.RNG, 0.15) {
		if seat, ok := homeChairSeat(t, a); ok {
			a.Home_.Seat = seat
			a.Home_.HasSeat = true
			return
		}
	}

	if t.Weather.IsHeavyRain() && adapters.Chance(t.RNG, 0.60) {
		routeHome(t, a)
		return
	}

	if a.ErrandStayTurns > 0 {
		a.ErrandStayTurns--
		if a.ErrandStayTurns == 0 {
			a.ErrandDone = true
		}
		return
	}
	if a.ErrandDone {
		if seat, ok := findPlazaBench(t); ok {
			a.Bench.Seat = seat
			a.Bench.HasSeat = true
			return
		}
		routeRoam(t, a)
		return
	}
	if a.HasWork {
		if a.X == a.Work.X && a.Y == a.Work.Y {
			a.ErrandStayTurns = 12 + adapters.IntN(t.RNG, 9)
			return
		}
		stepTowards(t, a, a.Work.X, a.Work.Y, false)
		return
	}
	routeRoam(t, a)
}

func homeChairSeat(t *Tick, a *npc.Actor) (worldmap.Point, bool) {
	if a.Home.Building < 0 {
		return worldmap.Point{}, false
	}
	b := t.Town.Buildings[a.Home.Building]
	for _, prop := range t.Town.Props {
		if prop.Type == worldmap.PropChair && b.Interior(prop.X, prop.Y) &&
			worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, prop.X, prop.Y) {
			return worldmap.Point{X: prop.X, Y: prop.Y}, true
		}
	}
	return worldmap.Point{}, false
}
