package behavior

import (
	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/simtime"
)

// handleRoamer is the fallback role for actors without a more specific
// handler (and for bandits outside the event window).
func handleRoamer(t *Tick, a *npc.Actor) {
	if a.Combat.Dead {
		return
	}

	if t.InLateWindow && !atHome(a) {
		routeLateShelter(t, a)
		return
	}

	switch t.Phase {
	case simtime.Evening:
		handleRoamerEvening(t, a)
	case simtime.Morning:
		routeHome(t, a)
	default:
		handleRoamerDay(t, a)
	}
}

func atHome(a *npc.Actor) bool {
	return a.Home.Building >= 0 && a.X == a.Home.X && a.Y == a.Home.Y
}

// routeLateShelter tries an upstairs bed, then an inn seat, then just the
// inn door, in that order.
func routeLateShelter(t *Tick, a *npc.Actor) {
	if routeToInnSeat(t, a, true) {
		a.Sleeping = true
		return
	}
	if a.Inn.HasSeat {
		return
	}
	if s, ok := innShop(t); ok {
		b := t.Town.Buildings[s.BuildingID]
		stepTowards(t, a, b.Door.X, b.Door.Y, true)
	}
}

func handleRoamerDay(t *Tick, a *npc.Actor) {
	if adapters.Chance(t.RNG, 0.35) {
		return
	}
	if a.Inn.HasSeat {
		a.Inn.StayTurns++
		if a.Inn.StayTurns >= 12+adapters.IntN(t.RNG, 13) {
			a.Inn.HasSeat = false
			a.Inn.StayTurns = 0
		}
		return
	}
	if (a.LikesInn || a.LikesTavern) && innSeatAvailable(t) && adapters.Chance(t.RNG, 0.20) {
		routeToInnSeat(t, a, adapters.Chance(t.RNG, 0.5))
		return
	}
	routeRoam(t, a)
}

func handleRoamerEvening(t *Tick, a *npc.Actor) {
	if a.Bench.HasSeat {
		if manhattan(a.X, a.Y, a.Bench.Seat.X, a.Bench.Seat.Y) == 0 {
			if t.InLateWindow && adapters.Chance(t.RNG, 0.5) {
				a.Sleeping = true
				return
			}
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

	p := benchChance(t)
	if adapters.Chance(t.RNG, p) {
		if seat, ok := findPlazaBench(t); ok {
			a.Bench.Seat = seat
			a.Bench.HasSeat = true
			return
		}
	}
	routeRoam(t, a)
}

// benchChance dampens bench-seeking probability under rain, applying an
// extra ×0.4 once it turns into heavy rain.
func benchChance(t *Tick) float64 {
	p := 0.5
	if t.Weather.IsRainy() {
		p *= 0.4
	}
	if t.Weather.IsHeavyRain() {
		p *= 0.4
	}
	return p
}

func routeRoam(t *Tick, a *npc.Actor) {
	dest := t.Town.Plaza
	stepTowards(t, a, dest.X, dest.Y, false)
}

func routeHome(t *Tick, a *npc.Actor) {
	if a.Home.Building < 0 {
		routeRoam(t, a)
		return
	}
	stepTowards(t, a, a.Home.Door.X, a.Home.Door.Y, false)
}
