package behavior

import (
	"github.com/l1jgo/townsim/internal/movement"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/worldmap"
)

// innShop returns the inn's Shop record, if the town has one.
func innShop(t *Tick) (worldmap.Shop, bool) {
	if !t.Town.HasInn() {
		return worldmap.Shop{}, false
	}
	for _, s := range t.Town.Shops {
		if s.Type == worldmap.ShopInn {
			return s, true
		}
	}
	return worldmap.Shop{}, false
}

// innSeatAvailable reports whether the shared inn seat cap still has room.
func innSeatAvailable(t *Tick) bool {
	return t.InnSeatCount < t.SeatCap
}

// findInnGroundSeat returns the first free inside tile of the inn shop.
func findInnGroundSeat(t *Tick) (worldmap.Point, bool) {
	s, ok := innShop(t)
	if !ok {
		return worldmap.Point{}, false
	}
	for _, p := range s.InsideTiles {
		if worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, p.X, p.Y) {
			return p, true
		}
	}
	return worldmap.Point{}, false
}

// findInnUpstairsBed returns the first unoccupied upstairs bed prop.
func findInnUpstairsBed(t *Tick) (worldmap.Point, bool) {
	if !t.Town.HasInn() {
		return worldmap.Point{}, false
	}
	u := t.Town.InnUpstairs
	for _, p := range u.Props {
		if p.Type != worldmap.PropBed {
			continue
		}
		if t.OccUp != nil && t.OccUp.Has(p.X, p.Y) {
			continue
		}
		return worldmap.Point{X: p.X, Y: p.Y}, true
	}
	return worldmap.Point{}, false
}

// routeToInnSeat routes an actor toward an inn seat, preferring an upstairs
// bed when available and falling back to a ground-floor seat. Returns true
// once the actor is seated this tick.
func routeToInnSeat(t *Tick, a *npc.Actor, preferUpstairs bool) bool {
	if preferUpstairs && t.Town.HasInn() {
		if bed, ok := findInnUpstairsBed(t); ok {
			if a.Floor == npc.FloorUpstairs && a.X == bed.X && a.Y == bed.Y {
				a.Inn.HasSeat = true
				a.Inn.Seat = bed
				a.Inn.Upstairs = true
				return true
			}
			movement.RouteIntoInnUpstairs(t.MoveCtx(), t.OccUp, a, bed, t.RNG)
			return false
		}
	}
	seat, ok := findInnGroundSeat(t)
	if !ok {
		return false
	}
	if a.X == seat.X && a.Y == seat.Y {
		a.Inn.HasSeat = true
		a.Inn.Seat = seat
		a.Inn.Upstairs = false
		return true
	}
	stepTowards(t, a, seat.X, seat.Y, false)
	return false
}

// findHomeBench / plaza bench helpers: benches are PropBench tiles on the
// town map; we scan a small set near the plaza.
func findPlazaBench(t *Tick) (worldmap.Point, bool) {
	for _, p := range t.Town.Props {
		if p.Type != worldmap.PropBench {
			continue
		}
		if worldmap.IsFreeTile(t.Town, t.Occ, t.PlayerX, t.PlayerY, t.HasPlayer, p.X, p.Y) {
			return worldmap.Point{X: p.X, Y: p.Y}, true
		}
	}
	return worldmap.Point{}, false
}
